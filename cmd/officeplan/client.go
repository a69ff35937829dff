package main

import (
	"errors"
	"fmt"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/officeplan/internal/client"
	"github.com/mmynk/officeplan/internal/identity"
)

var (
	deviceCmd = &cobra.Command{
		Use:   "device",
		Short: "Print this device's id, creating it on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := deviceProvider()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), provider.DeviceID())
			return nil
		},
	}

	clickCmd = &cobra.Command{
		Use:   "click EMPLOYEE_ID [DATE]",
		Short: "Advance one attendance cell: absent, present, present with dog",
		Long: `Advance the attendance cell of an employee on a date (default today).
A new cell can be protected with a password so other devices may change it.
Changing a cell created on another device asks for that password.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runClick,
	}

	weekCmd = &cobra.Command{
		Use:   "week [DATE]",
		Short: "Show attendance and dog counts for the week containing DATE",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWeek,
	}

	serverURL     string
	entryPassword string
	askPassword   bool
)

func init() {
	for _, cmd := range []*cobra.Command{clickCmd, weekCmd} {
		cmd.Flags().StringVar(&serverURL, "server", "", "server URL (default $SERVER_URL)")
	}
	clickCmd.Flags().StringVar(&entryPassword, "password", "", "protect a new entry with this password")
	clickCmd.Flags().BoolVar(&askPassword, "ask-password", false, "prompt for a password when creating an entry")
}

func deviceProvider() (*identity.Provider, error) {
	if cfg.DeviceFile != "" {
		return identity.NewProvider(cfg.DeviceFile), nil
	}
	path, err := identity.DefaultPath()
	if err != nil {
		return nil, err
	}
	return identity.NewProvider(path), nil
}

func newClient(cmd *cobra.Command) (*client.Client, error) {
	provider, err := deviceProvider()
	if err != nil {
		return nil, err
	}
	url := serverURL
	if url == "" {
		url = cfg.ServerURL
	}
	prompter := &terminalPrompter{
		in:          cmd.InOrStdin(),
		out:         cmd.ErrOrStderr(),
		newPassword: entryPassword,
		askNew:      askPassword,
	}
	return client.New(&http.Client{Timeout: 30 * time.Second}, url, provider, prompter), nil
}

func runClick(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	date := time.Now().Format(time.DateOnly)
	if len(args) == 2 {
		date = args[1]
	}

	resp, err := c.Activate(cmd.Context(), args[0], date)
	if errors.Is(err, client.ErrCanceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "canceled, nothing changed")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s: %s\n", resp.Entry.EmployeeID, resp.Entry.Date, resp.Entry.Status)
	if resp.OverCapacity {
		fmt.Fprintf(out, "warning: %d people in the office on %s, more than there are seats\n", resp.ActiveCount, resp.Entry.Date)
	}
	return nil
}

func runWeek(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	var date string
	if len(args) == 1 {
		date = args[0]
	}

	week, err := c.Week(cmd.Context(), date)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DATE\tPRESENT\tDOGS\t\n")
	for _, day := range week.Days {
		var flags string
		if day.DogLimitReached {
			flags += " dogs full"
		}
		if day.OverCapacity {
			flags += " over capacity"
		}
		fmt.Fprintf(w, "%s\t%d/%d\t%d/%d\t%s\n", day.Date, day.ActiveCount, week.MaxActivePerDay, day.DogCount, week.MaxDogsPerDay, flags)
	}
	return w.Flush()
}

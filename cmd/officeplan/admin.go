package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/officeplan/internal/ledger"
	"github.com/mmynk/officeplan/internal/storage"
)

var (
	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired and orphaned attendance entries once",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Delete all employees, departments and attendance",
		Long:  "Delete all data. The next serve seeds the empty store again.",
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}

	clearCmd = &cobra.Command{
		Use:   "clear EMPLOYEE_ID",
		Short: "Delete every attendance entry of one employee",
		Args:  cobra.ExactArgs(1),
		RunE:  runClear,
	}

	resetConfirmed bool
)

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm deleting all data")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := ledger.New(storage.WithTimeout(store, cfg.StoreTimeout)).Sweep(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired and %d orphaned entries\n", report.Expired, report.Orphaned)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetConfirmed {
		return fmt.Errorf("refusing to delete all data without --yes")
	}
	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "all data deleted")
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := ledger.New(storage.WithTimeout(store, cfg.StoreTimeout)).DeleteByEmployee(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries of employee %s\n", n, args[0])
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mmynk/officeplan/internal/client"
)

// terminalPrompter reads passwords from the terminal without echo. When
// stdin is not a terminal it reads one line instead.
type terminalPrompter struct {
	in  io.Reader
	out io.Writer

	newPassword string
	askNew      bool

	lines *bufio.Reader
}

func (p *terminalPrompter) NewEntryPassword(ctx context.Context, employeeID, date string) (string, error) {
	if p.newPassword != "" || !p.askNew {
		return p.newPassword, nil
	}
	return p.read(fmt.Sprintf("Password for %s on %s (empty for none): ", employeeID, date), true)
}

func (p *terminalPrompter) UnlockPassword(ctx context.Context, employeeID, date string) (string, error) {
	return p.read(fmt.Sprintf("Entry of %s on %s was created on another device. Password: ", employeeID, date), false)
}

func (p *terminalPrompter) read(prompt string, allowEmpty bool) (string, error) {
	fmt.Fprint(p.out, prompt)

	var password string
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		password = string(raw)
	} else {
		if p.lines == nil {
			p.lines = bufio.NewReader(p.in)
		}
		line, err := p.lines.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", client.ErrCanceled
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" && !allowEmpty {
		return "", client.ErrCanceled
	}
	return password, nil
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/officeplan/internal/client"
)

func TestTerminalPrompter(t *testing.T) {
	ctx := context.Background()

	t.Run("flag password skips prompt", func(t *testing.T) {
		var out bytes.Buffer
		p := &terminalPrompter{in: strings.NewReader(""), out: &out, newPassword: "secret"}
		pw, err := p.NewEntryPassword(ctx, "1", "2024-03-20")
		require.NoError(t, err)
		assert.Equal(t, "secret", pw)
		assert.Empty(t, out.String())
	})

	t.Run("no password without ask", func(t *testing.T) {
		p := &terminalPrompter{in: strings.NewReader("ignored\n"), out: &bytes.Buffer{}}
		pw, err := p.NewEntryPassword(ctx, "1", "2024-03-20")
		require.NoError(t, err)
		assert.Empty(t, pw)
	})

	t.Run("ask reads a line", func(t *testing.T) {
		var out bytes.Buffer
		p := &terminalPrompter{in: strings.NewReader("1234\n"), out: &out, askNew: true}
		pw, err := p.NewEntryPassword(ctx, "1", "2024-03-20")
		require.NoError(t, err)
		assert.Equal(t, "1234", pw)
		assert.Contains(t, out.String(), "2024-03-20")
	})

	t.Run("unlock", func(t *testing.T) {
		p := &terminalPrompter{in: strings.NewReader("first\r\nsecond"), out: &bytes.Buffer{}}
		pw, err := p.UnlockPassword(ctx, "1", "2024-03-20")
		require.NoError(t, err)
		assert.Equal(t, "first", pw)
		pw, err = p.UnlockPassword(ctx, "1", "2024-03-20")
		require.NoError(t, err)
		assert.Equal(t, "second", pw)
	})

	t.Run("empty unlock cancels", func(t *testing.T) {
		p := &terminalPrompter{in: strings.NewReader("\n"), out: &bytes.Buffer{}}
		_, err := p.UnlockPassword(ctx, "1", "2024-03-20")
		assert.ErrorIs(t, err, client.ErrCanceled)
	})

	t.Run("eof cancels", func(t *testing.T) {
		p := &terminalPrompter{in: strings.NewReader(""), out: &bytes.Buffer{}}
		_, err := p.UnlockPassword(ctx, "1", "2024-03-20")
		assert.ErrorIs(t, err, client.ErrCanceled)
	})
}

// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/security"
	"github.com/buypy/backoffice/internal/session"
)

// errNoInput is returned when stdin closes before credentials were read.
var errNoInput = errors.New("no credentials on standard input")

// terminalPrompter reads credentials from the command's input. Passwords are
// read without echo when the input is a terminal.
type terminalPrompter struct {
	in     *bufio.Reader
	out    io.Writer
	isTerm func() bool
	readPw func() ([]byte, error)
}

func newTerminalPrompter(cmd *cobra.Command) *terminalPrompter {
	fd := int(os.Stdin.Fd())
	p := &terminalPrompter{
		in:     bufio.NewReader(cmd.InOrStdin()),
		out:    cmd.ErrOrStderr(),
		isTerm: func() bool { return cmd.InOrStdin() == os.Stdin && term.IsTerminal(fd) },
		readPw: func() ([]byte, error) { return term.ReadPassword(fd) },
	}
	return p
}

func (p *terminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Credentials implements session.Prompter.
func (p *terminalPrompter) Credentials(ctx context.Context, attempt int, lastErr error) (string, security.Secret, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if lastErr != nil {
		msg := i18n.T("login.error.invalid")
		if errors.Is(lastErr, session.ErrEmptyCredentials) {
			msg = i18n.T("login.error.empty")
		}
		fmt.Fprintln(p.out, msg)
	}
	if attempt > 1 {
		fmt.Fprintln(p.out, i18n.T("cli.login.attempt", attempt, session.DefaultAttempts))
	}

	fmt.Fprint(p.out, i18n.T("login.username")+" ")
	username, err := p.readLine()
	if err != nil {
		return "", nil, err
	}

	fmt.Fprint(p.out, i18n.T("login.password")+" ")
	if p.isTerm() {
		pw, err := p.readPw()
		fmt.Fprintln(p.out)
		if err != nil {
			return "", nil, err
		}
		return strings.TrimSpace(username), security.Secret(pw), nil
	}
	pw, err := p.readLine()
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(username), security.FromString(pw), nil
}

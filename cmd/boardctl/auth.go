package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/taskboard/internal/client"
	"github.com/phrazzld/taskboard/internal/session"
	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.signIn(cmd, args[0], password, true)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when empty)")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.signIn(cmd, args[0], password, false)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := session.Clear(a.cfg.SessionPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (a *app) signIn(cmd *cobra.Command, username, password string, register bool) error {
	if password == "" {
		var err error
		if password, err = readPassword(cmd); err != nil {
			return err
		}
	}

	c, err := a.newClient(false)
	if err != nil {
		return err
	}
	ctx, cancel := a.callContext(cmd)
	defer cancel()

	var resp *client.AuthResponse
	if register {
		resp, err = c.Register(ctx, username, password)
	} else {
		resp, err = c.Authenticate(ctx, username, password)
	}
	if err != nil {
		if register && client.IsConflict(err) {
			return fmt.Errorf("username %q is already taken", username)
		}
		return err
	}

	if err := session.Save(a.cfg.SessionPath, &session.Session{
		Token:    resp.Token,
		Username: resp.Username,
		APIURL:   a.cfg.APIURL,
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", resp.Username)
	return nil
}

// readPassword reads one line from stdin without prompting.
func readPassword(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password required: pass --password or write it to stdin")
	}
	return line, nil
}

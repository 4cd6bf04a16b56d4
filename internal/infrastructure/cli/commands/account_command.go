package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
	"github.com/doeshing/baseconv/internal/application/account"
	"github.com/doeshing/baseconv/internal/domain"
)

// NewAccountCommand creates the account command with all subcommands
func NewAccountCommand(container *app.Container) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Register, log in and log out",
	}

	accountCmd.AddCommand(
		newAccountRegisterCommand(container),
		newAccountLoginCommand(container),
		newAccountLogoutCommand(container),
		newAccountWhoamiCommand(container),
	)

	return accountCmd
}

func newAccountRegisterCommand(container *app.Container) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(cmd, container, password)
			if err != nil {
				return err
			}
			user, err := container.AccountService.Register(cmd.Context(), args[0], pw)
			if errors.Is(err, domain.ErrUserExists) {
				return fmt.Errorf("username %q is taken", strings.TrimSpace(args[0]))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Log in with `baseconv account login %s`.\n", user.Username, user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func newAccountLoginCommand(container *app.Container) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in; later conversions are recorded for this user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(cmd, container, password)
			if err != nil {
				return err
			}
			sess, err := container.AccountService.Login(cmd.Context(), args[0], pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func newAccountLogoutCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.AccountService.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newAccountWhoamiCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := container.AccountService.Current()
			if errors.Is(err, account.ErrNotLoggedIn) {
				fmt.Fprintf(cmd.OutOrStdout(), "Not logged in (conversions are recorded as %s)\n", domain.GuestUser)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (logged in %s)\n", sess.Username, humanize.Time(sess.LoggedInAt))
			return nil
		},
	}
}

// resolvePassword prefers the flag, then the prompter (no echo on a
// terminal), then a line from stdin so scripts can pipe the password in.
func resolvePassword(cmd *cobra.Command, container *app.Container, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if reader, ok := container.Prompter.(interface{ ReadSecret(string) (string, error) }); ok {
		return reader.ReadSecret("Password: ")
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

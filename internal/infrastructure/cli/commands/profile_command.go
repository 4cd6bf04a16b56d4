package commands

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
)

// NewProfileCommand creates the profile command
func NewProfileCommand(container *app.Container) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the logged-in user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, container)
		},
	}

	profileCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the profile",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showProfile(cmd, container)
			},
		},
		newProfileSetCommand(container),
	)

	return profileCmd
}

func newProfileSetCommand(container *app.Container) *cobra.Command {
	var email, firstName string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update email and first name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("email") && !cmd.Flags().Changed("first-name") {
				return errors.New(ErrNothingToUpdate)
			}
			user, err := container.AccountService.Profile(cmd.Context())
			if err != nil {
				return err
			}
			profile := user.Profile
			if cmd.Flags().Changed("email") {
				profile.Email = email
			}
			if cmd.Flags().Changed("first-name") {
				profile.FirstName = firstName
			}
			if err := container.AccountService.UpdateProfile(cmd.Context(), profile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	return cmd
}

func showProfile(cmd *cobra.Command, container *app.Container) error {
	user, err := container.AccountService.Profile(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Username:   %s\n", user.Username)
	fmt.Fprintf(out, "Email:      %s\n", orDash(user.Profile.Email))
	fmt.Fprintf(out, "First name: %s\n", orDash(user.Profile.FirstName))
	fmt.Fprintf(out, "Member since %s\n", humanize.Time(user.CreatedAt))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

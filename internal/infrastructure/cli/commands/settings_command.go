package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/infrastructure/cli/helpers"
)

// NewSettingsCommand creates the settings command
func NewSettingsCommand(container *app.Container) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd, container)
		},
	}

	settingsCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show preferences",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showSettings(cmd, container)
			},
		},
		newSettingsSetCommand(container),
	)

	return settingsCmd
}

func newSettingsSetCommand(container *app.Container) *cobra.Command {
	var (
		darkTheme     bool
		notifications bool
		copyResult    bool
		fontSize      string
		defaultPair   string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.NFlag() == 0 {
				return errors.New(ErrNothingToUpdate)
			}
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			prefs := &cfg.Preferences
			if flags.Changed("dark-theme") {
				prefs.DarkTheme = darkTheme
			}
			if flags.Changed("notifications") {
				prefs.Notifications = notifications
			}
			if flags.Changed("copy-result") {
				prefs.CopyResult = copyResult
			}
			if flags.Changed("font-size") {
				size, ok := domain.NormalizeFontSize(fontSize)
				if !ok {
					return fmt.Errorf("font size must be %s, %s or %s", domain.FontSizeSmall, domain.FontSizeMedium, domain.FontSizeLarge)
				}
				prefs.FontSize = size
			}
			if flags.Changed("default-pair") {
				pair, err := domain.ParseConversionPair(defaultPair)
				if err != nil {
					return err
				}
				prefs.DefaultFrom, prefs.DefaultTo = pair.From, pair.To
			}
			if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&darkTheme, "dark-theme", false, "Use the dark theme")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "Enable notifications")
	cmd.Flags().BoolVar(&copyResult, "copy-result", false, "Copy every conversion result to the clipboard")
	cmd.Flags().StringVar(&fontSize, "font-size", "", "Small, Medium or Large")
	cmd.Flags().StringVar(&defaultPair, "default-pair", "", `Initial conversion, e.g. "Hexadecimal to Binary"`)
	return cmd
}

func showSettings(cmd *cobra.Command, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	printSettings(cmd.OutOrStdout(), cfg)
	return nil
}

func printSettings(out io.Writer, cfg domain.Config) {
	prefs := cfg.Preferences
	fontSize, _ := domain.NormalizeFontSize(prefs.FontSize)
	fmt.Fprintf(out, "Theme:         %s\n", prefs.ThemeName())
	fmt.Fprintf(out, "Notifications: %s\n", onOff(prefs.Notifications))
	fmt.Fprintf(out, "Font size:     %s\n", fontSize)
	fmt.Fprintf(out, "Copy results:  %s\n", onOff(prefs.CopyResult))
	fmt.Fprintf(out, "Default pair:  %s\n", cfg.DefaultPair())
	fmt.Fprintf(out, "History limit: %d\n", cfg.HistoryLimit())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

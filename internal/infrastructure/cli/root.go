package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
	"github.com/doeshing/baseconv/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is initialised in
// PersistentPreRunE, once --config and --log-level have been parsed.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container := &app.Container{}
	var configPath, logLevel string

	root := &cobra.Command{
		Use:   "baseconv",
		Short: "baseconv - number base converter",
		Long: "baseconv converts numbers between binary, octal, decimal and hexadecimal,\n" +
			"with a quick converter for any base from 2 to 36, per-user conversion\n" +
			"history, notes and a small HTTP API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Init(cmd.Context(), app.Options{
				ConfigPath: configPath,
				Verbose:    opts.Verbose,
				LogLevel:   logLevel,
				LogOutput:  cmd.ErrOrStderr(),
			}); err != nil {
				return err
			}
			container.Prompter = NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			container.SetClipboard(NewClipboard())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(ctx)

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.baseconv/config.yaml or $BASECONV_CONFIG)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error (default from config)")

	root.AddCommand(newConvertCommand(container))
	root.AddCommand(newQuickCommand(container))
	root.AddCommand(newValidateCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewAccountCommand(container))
	root.AddCommand(commands.NewProfileCommand(container))
	root.AddCommand(commands.NewNotesCommand(container))
	root.AddCommand(commands.NewSettingsCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewServeCommand(container))
	root.AddCommand(commands.NewAboutCommand())
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/infrastructure/httpapi"
)

// NewServeCommand creates the serve command
func NewServeCommand(container *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter and history over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				cfg, err := container.ConfigProvider.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				addr = cfg.Server.Addr
			}
			if addr == "" {
				addr = domain.DefaultServerAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := httpapi.NewRouter(&httpapi.Server{
				Convert: container.ConvertService,
				Logger:  container.Logger,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			return httpapi.ListenAndServe(ctx, addr, router, container.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr from config)")
	return cmd
}

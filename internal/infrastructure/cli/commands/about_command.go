package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/assets"
	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/version"
)

// NewAboutCommand creates the about command
func NewAboutCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "about",
		Short:             "Describe baseconv and the bases it supports",
		PersistentPreRunE: skipContainer,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "baseconv %s\n\n", version.Version)
			fmt.Fprintln(out, strings.TrimSpace(assets.AboutText))
			fmt.Fprintln(out)

			names := make([]string, 0, 4)
			for _, r := range domain.RadixSetFixed.Radixes() {
				names = append(names, fmt.Sprintf("%s (%d)", r.Name(), int(r)))
			}
			fmt.Fprintf(out, "Converter:       %s\n", strings.Join(names, ", "))
			fmt.Fprintf(out, "Quick converter: any base from %d to %d\n", int(domain.MinRadix), int(domain.MaxRadix))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Conversions:")
			for _, pair := range domain.FixedConversions() {
				fmt.Fprintf(out, "  %s\n", pair)
			}
			return nil
		},
	}
}

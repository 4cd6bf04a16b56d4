package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
	"github.com/doeshing/baseconv/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, storage and the conversion engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}

			// a failed config load still yields a partial report worth printing
			report, runErr := container.DoctorService.Run(cmd.Context())

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeDoctorJSON(out, report); err != nil {
					return err
				}
			} else {
				writeDoctorReport(out, report)
			}

			if runErr != nil {
				return fmt.Errorf("diagnostics aborted: %w", runErr)
			}
			if !report.Healthy() {
				return fmt.Errorf("%d check(s) failed", report.Count(domain.HealthError))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func writeDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n", strings.ToUpper(string(check.Status)), check.Name, check.Details)
	}
	if warnings := report.Count(domain.HealthWarn); warnings > 0 {
		fmt.Fprintf(out, "%d warning(s)\n", warnings)
	}
}

func writeDoctorJSON(out io.Writer, report domain.HealthReport) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Healthy bool `json:"healthy"`
		domain.HealthReport
	}{report.Healthy(), report})
}

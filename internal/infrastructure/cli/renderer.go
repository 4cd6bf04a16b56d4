package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/doeshing/baseconv/internal/application/convert"
	"github.com/doeshing/baseconv/internal/domain"
)

// RenderConversion prints a conversion result in a friendly, ASCII-only format.
func RenderConversion(out io.Writer, resp convert.Response) {
	fmt.Fprintf(out, "%s\n", resp.Pair)
	fmt.Fprintf(out, "  %s (%s)\n", resp.Input, resp.Pair.From.Name())
	fmt.Fprintf(out, "= %s (%s)\n", resp.Result.Rendered, resp.Pair.To.Name())
	if resp.Copied {
		fmt.Fprintln(out, "Result copied!")
	}
}

// RenderPlain prints only the converted value, for scripts.
func RenderPlain(out io.Writer, resp convert.Response) {
	fmt.Fprintln(out, resp.Result.Rendered)
}

// conversionFailure turns an engine error into the message shown next to
// the input field, wrapping the engine error for errors.Is.
func conversionFailure(err error) error {
	var convErr *domain.ConversionError
	if errors.As(err, &convErr) {
		return fmt.Errorf("%s: %w", convErr.Message(), err)
	}
	return err
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
	"github.com/doeshing/baseconv/internal/application/convert"
	"github.com/doeshing/baseconv/internal/domain"
)

func newConvertCommand(container *app.Container) *cobra.Command {
	var (
		from, to string
		pairName string
		swap     bool
		copyOut  bool
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <number>",
		Short: "Convert between binary, octal, decimal and hexadecimal",
		Example: `  baseconv convert FF --from hex --to bin
  baseconv convert 1010 --pair "Binary to Decimal"
  baseconv convert 255 --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := resolvePair(cmd, container, from, to, pairName)
			if err != nil {
				return err
			}
			if swap {
				pair = pair.Swap()
			}
			resp, err := container.ConvertService.Convert(cmd.Context(), convert.Request{
				Username: container.AccountService.CurrentUsername(),
				Text:     args[0],
				From:     pair.From,
				To:       pair.To,
				Copy:     copyOut || container.ConvertService.CopyByDefault(cmd.Context()),
			})
			if err != nil {
				return conversionFailure(err)
			}
			if plain {
				RenderPlain(cmd.OutOrStdout(), resp)
			} else {
				RenderConversion(cmd.OutOrStdout(), resp)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Source base: 2|8|10|16 or bin|oct|dec|hex (default from config)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Target base (default from config)")
	cmd.Flags().StringVar(&pairName, "pair", "", `Named conversion, e.g. "Hexadecimal to Binary"`)
	cmd.Flags().BoolVar(&swap, "swap", false, "Swap the source and target bases")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the result to the clipboard")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print only the converted value")

	cmd.AddCommand(&cobra.Command{
		Use:   "pairs",
		Short: "List the named conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range domain.FixedConversions() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	})
	return cmd
}

// resolvePair combines --pair, --from/--to and the configured default.
func resolvePair(cmd *cobra.Command, container *app.Container, from, to, pairName string) (domain.ConversionPair, error) {
	if pairName != "" {
		if from != "" || to != "" {
			return domain.ConversionPair{}, fmt.Errorf("--pair cannot be combined with --from/--to")
		}
		return domain.ParseConversionPair(pairName)
	}

	cfg, err := container.ConfigProvider.Load(cmd.Context())
	if err != nil {
		return domain.ConversionPair{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	pair := cfg.DefaultPair()
	if from != "" {
		if pair.From, err = domain.ParseRadix(from); err != nil {
			return domain.ConversionPair{}, fmt.Errorf("--from: %w", err)
		}
	}
	if to != "" {
		if pair.To, err = domain.ParseRadix(to); err != nil {
			return domain.ConversionPair{}, fmt.Errorf("--to: %w", err)
		}
	}
	return pair, nil
}

func newQuickCommand(container *app.Container) *cobra.Command {
	var from, to string
	var plain bool

	cmd := &cobra.Command{
		Use:   "quick <number>",
		Short: "Convert between any two bases from 2 to 36",
		Example: `  baseconv quick ZZ --from 36 --to 10
  baseconv quick 777 --from 8 --to 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromRadix, err := domain.ParseRadix(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			toRadix, err := domain.ParseRadix(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			resp, err := container.ConvertService.Quick(convert.Request{
				Text: args[0],
				From: fromRadix,
				To:   toRadix,
				Copy: container.ConvertService.CopyByDefault(cmd.Context()),
			})
			if err != nil {
				return conversionFailure(err)
			}
			if plain {
				RenderPlain(cmd.OutOrStdout(), resp)
			} else {
				RenderConversion(cmd.OutOrStdout(), resp)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "10", "Source base (2-36)")
	cmd.Flags().StringVarP(&to, "to", "t", "2", "Target base (2-36)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print only the converted value")
	return cmd
}

func newValidateCommand(container *app.Container) *cobra.Command {
	var radixFlag string
	var quick bool

	cmd := &cobra.Command{
		Use:   "validate <number>",
		Short: "Check whether a number is valid for a base",
		Long: "Check whether every digit is legal for the base. An empty number is valid,\n" +
			"matching the converter's live input check. Exits non-zero when invalid.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, "")
			radix, err := domain.ParseRadix(radixFlag)
			if err != nil {
				return fmt.Errorf("--radix: %w", err)
			}
			set := domain.RadixSetFixed
			if quick {
				set = domain.RadixSetWide
			}
			if !set.Contains(radix) {
				if quick {
					return fmt.Errorf("base %d is outside 2-36", int(radix))
				}
				return fmt.Errorf("base %d is not supported (use --quick for bases 2-36)", int(radix))
			}
			if !container.ConvertService.Validate(text, radix, set) {
				return fmt.Errorf("Invalid %s number", radix.Name())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}

	cmd.Flags().StringVarP(&radixFlag, "radix", "r", "10", "Base to validate against")
	cmd.Flags().BoolVar(&quick, "quick", false, "Allow any base from 2 to 36")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/owencmcgrath/hrml/internal/logging"
	"github.com/owencmcgrath/hrml/pkg/config"
	"github.com/owencmcgrath/hrml/pkg/convert"
	"github.com/owencmcgrath/hrml/pkg/fsutil"
)

type convertFlags struct {
	output string
	gfm    bool
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [file.md|-]",
		Short: "Convert Markdown to HRML",
		Long: `Convert a Markdown document into HRML. Reads stdin when no file or "-" is
given.

Constructs HRML cannot express degrade to the closest equivalent: nested
lists are flattened, tables become paragraphs and raw HTML becomes text.

Examples:
  hrml convert README.md                 # HRML to stdout
  hrml convert README.md -o README.hrml  # write to a file
  hrml convert --gfm notes.md            # accept GitHub Flavored Markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			return runConvert(cmd, input, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&flags.gfm, "gfm", false, "parse GitHub Flavored Markdown")

	return cmd
}

func runConvert(cmd *cobra.Command, input string, flags *convertFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	if flags.gfm {
		cliCfg.Convert.Flavor = config.FlavorGFM
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	source, name, err := fsutil.ReadInput(ctx, input, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	conv := convert.New(string(cfg.Convert.Flavor))
	out, err := conv.Convert(ctx, source)
	if err != nil {
		return fmt.Errorf("convert %s: %w", name, err)
	}

	if flags.output == "" || flags.output == stdoutPath {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, flags.output, []byte(out), 0); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Debug("converted",
		logging.FieldInput, name,
		logging.FieldOutput, flags.output,
		logging.FieldFlavor, conv.Flavor(),
		logging.FieldBytes, len(out),
	)

	return nil
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/owencmcgrath/hrml/internal/ui/pretty"
	"github.com/owencmcgrath/hrml/pkg/fsutil"
	"github.com/owencmcgrath/hrml/pkg/hrml"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [files...|-]",
		Short: "Show word, character and line counts",
		Long: `Show word, character and line counts for HRML files, the same counters the
editor displays. Reads stdin when no file or "-" is given.

Examples:
  hrml stats notes.hrml
  hrml stats docs/*.hrml
  cat notes.hrml | hrml stats`,
		Args: cobra.ArbitraryArgs,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	if len(args) == 0 {
		args = []string{stdoutPath}
	}

	rows := make([]pretty.StatsRow, 0, len(args))
	for _, arg := range args {
		source, name, err := fsutil.ReadInput(ctx, arg, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		stats := hrml.Count(hrml.Sanitize(string(source)))
		rows = append(rows, pretty.StatsRow{
			File:       name,
			Words:      stats.Words,
			Characters: stats.Characters,
			Lines:      stats.Lines,
			Bytes:      int64(len(source)),
		})
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	table := pretty.NewTableFormatter(styles, terminalWidth(out))

	if _, err := io.WriteString(out, table.FormatStats(rows)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

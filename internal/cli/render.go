package cli

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/owencmcgrath/hrml/internal/logging"
	"github.com/owencmcgrath/hrml/pkg/config"
	"github.com/owencmcgrath/hrml/pkg/export"
	"github.com/owencmcgrath/hrml/pkg/fsutil"
	"github.com/owencmcgrath/hrml/pkg/hrast"
	"github.com/owencmcgrath/hrml/pkg/hrml"
)

// stdoutPath is the output path meaning "write to stdout".
const stdoutPath = "-"

// exportFlags are the output flags render and watch share.
type exportFlags struct {
	output         string
	format         string
	title          string
	lang           string
	stylesheet     string
	width          int
	detectLanguage bool
}

func addExportFlags(cmd *cobra.Command, flags *exportFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout for render)")
	cmd.Flags().StringVar(&flags.format, "format", "html", "output format: html, document, text")
	cmd.Flags().StringVar(&flags.title, "title", "", "document title (default: first heading)")
	cmd.Flags().StringVar(&flags.lang, "lang", "en", "document language")
	cmd.Flags().StringVar(&flags.stylesheet, "stylesheet", "", "stylesheet URL linked from documents")
	cmd.Flags().IntVar(&flags.width, "width", 0, "wrap text output at this width (0 = no wrapping)")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"infer a language class for code fences that name none")
}

// cliConfig maps explicitly set flags onto a config layer.
func (f *exportFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Export.Format = f.format
	}
	if changed("title") {
		cfg.Export.Title = f.title
	}
	if changed("lang") {
		cfg.Export.Lang = f.lang
	}
	if changed("stylesheet") {
		cfg.Export.Stylesheet = f.stylesheet
	}
	if changed("width") {
		cfg.Export.Width = f.width
	}
	cfg.Render.DetectLanguage = f.detectLanguage

	return cfg
}

func newRenderCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render HRML to HTML or plain text",
		Long:  renderLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			return runRender(cmd, input, flags)
		},
	}

	addExportFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render an HRML file to an HTML fragment, a standalone HTML document, or
plain text. Reads stdin when no file or "-" is given.

Examples:
  hrml render notes.hrml                      # HTML fragment to stdout
  hrml render notes.hrml -o notes.html        # write to a file
  hrml render --format document notes.hrml    # full HTML page
  hrml render --format text --width 72 -      # wrapped text from stdin`

func runRender(cmd *cobra.Command, input string, flags *exportFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	source, name, err := fsutil.ReadInput(ctx, input, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	content, res, err := renderOutput(newTranspiler(cfg), string(source), cfg)
	if err != nil {
		return err
	}
	logDiagnostics(logger, name, res.Diagnostics)

	if flags.output == "" || flags.output == stdoutPath {
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, flags.output, content, 0); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Debug("rendered", logging.FieldInput, name, logging.FieldOutput, flags.output, logging.FieldBytes, len(content))

	return nil
}

func newTranspiler(cfg *config.Config) *hrml.Transpiler {
	return hrml.New(hrml.WithLanguageDetection(cfg.Render.DetectLanguage))
}

// renderOutput sanitizes and transpiles source, then serializes it in the
// configured export format.
func renderOutput(tr *hrml.Transpiler, source string, cfg *config.Config) ([]byte, *hrml.Result, error) {
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return nil, nil, err
	}

	res := tr.Transpile(hrml.Sanitize(source))

	opts := export.Options{
		Title:      cfg.Export.Title,
		Lang:       cfg.Export.Lang,
		Stylesheet: cfg.Export.Stylesheet,
		Width:      cfg.Export.Width,
	}
	if opts.Title == "" {
		opts.Title = export.TitleFromDocument(res.Document)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, res.HTML, opts); err != nil {
		return nil, nil, fmt.Errorf("export %s: %w", format, err)
	}

	return buf.Bytes(), res, nil
}

// logDiagnostics surfaces unsafe markup as warnings and everything else at
// debug level.
func logDiagnostics(logger *log.Logger, name string, diags []hrast.Diagnostic) {
	for _, d := range diags {
		fields := []any{
			logging.FieldPath, fmt.Sprintf("%s:%d:%d", name, d.Line, max(d.Column, 1)),
			logging.FieldCode, d.Code,
		}
		if d.Severity == hrast.SeverityError {
			logger.Warn(d.Message, fields...)
		} else {
			logger.Debug(d.Message, fields...)
		}
	}
}

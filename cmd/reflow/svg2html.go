package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/reflow"
	"github.com/tsawler/reflow/htmldoc"
	"github.com/tsawler/reflow/internal/env"
)

type svg2htmlOptions struct {
	rotated bool
	lines   bool
	pretty  bool
	check   bool
	outDir  string

	contentBox      string
	xMargin         float64
	paragraphFactor float64
}

func newSVG2HTMLCmd(a *app) *cobra.Command {
	opts := &svg2htmlOptions{}

	cmd := &cobra.Command{
		Use:   "svg2html FILE|GLOB...",
		Short: "Convert SVG pages to HTML",
		Long: `Convert each SVG page to an HTML file named after it. Output goes next
to the input unless --out is given. A file that fails to convert is reported
and the rest of the batch continues.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.config(cmd, a.logger)
			if err != nil {
				return err
			}
			return runSVG2HTML(a.logger, config, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.rotated, "rotated", false, "Include rotated text")
	cmd.Flags().BoolVar(&opts.lines, "lines", false, "Emit one paragraph per line")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the HTML")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Read each written file back and verify its paragraphs")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Directory for the HTML files")
	cmd.Flags().StringVar(&opts.contentBox, "content-box", "", `Clipping box "x0,x1,y0,y1" or "none" (overrides `+env.ContentBox+")")
	cmd.Flags().Float64Var(&opts.xMargin, "x-margin", 0, "Horizontal line-merge margin (overrides "+env.XMargin+")")
	cmd.Flags().Float64Var(&opts.paragraphFactor, "paragraph-factor", 0, "Paragraph spacing factor (overrides "+env.ParagraphFactor+")")

	return cmd
}

// config layers defaults, environment and flags, in increasing priority
func (o *svg2htmlOptions) config(cmd *cobra.Command, logger logrus.FieldLogger) (reflow.Config, error) {
	config := reflow.DefaultConfig()
	config.Logger = logger
	config.RotatedText = o.rotated

	var err error
	if config.XMargin, err = env.FloatVariable(env.XMargin, config.XMargin); err != nil {
		return config, err
	}
	if config.ParagraphFactor, err = env.FloatVariable(env.ParagraphFactor, config.ParagraphFactor); err != nil {
		return config, err
	}

	box := env.StringVariable(env.ContentBox, "")
	if cmd.Flags().Changed("content-box") {
		box = o.contentBox
	}
	if box != "" {
		if config.ContentBox, err = reflow.ParseContentBox(box); err != nil {
			return config, err
		}
	}

	if cmd.Flags().Changed("x-margin") {
		config.XMargin = o.xMargin
	}
	if cmd.Flags().Changed("paragraph-factor") {
		config.ParagraphFactor = o.paragraphFactor
	}
	if config.ParagraphFactor <= 0 {
		return config, fmt.Errorf("paragraph factor must be positive, got %v", config.ParagraphFactor)
	}
	return config, nil
}

func runSVG2HTML(logger logrus.FieldLogger, config reflow.Config, opts *svg2htmlOptions, args []string) error {
	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	failed := 0
	for _, file := range files {
		out := outputPath(file, opts.outDir)
		if err := convertFile(config, opts, file, out); err != nil {
			logger.Errorf("failed to convert %s because %v", file, err)
			failed++
			continue
		}
		logger.WithFields(logrus.Fields{"file": file, "out": out}).Info("converted")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(files))
	}
	return nil
}

func convertFile(config reflow.Config, opts *svg2htmlOptions, file, out string) error {
	page, err := reflow.CreatePageFromSVG(file, config)
	if err != nil {
		return err
	}
	if err := page.WriteHTML(out, opts.pretty, opts.lines); err != nil {
		return err
	}
	if !opts.check {
		return nil
	}

	want := page.Paragraphs().ParagraphCount()
	if opts.lines {
		want = page.CompositeLines().LineCount()
	}
	r, err := htmldoc.Open(out)
	if err != nil {
		return fmt.Errorf("checking %s: %w", out, err)
	}
	if got := len(r.Paragraphs()); got != want {
		return fmt.Errorf("checking %s: found %d paragraphs, want %d", out, got, want)
	}
	return nil
}

// expandArgs resolves glob patterns. Arguments without glob characters are
// kept as given so that a missing file is reported by the conversion.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", arg)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// outputPath swaps the extension for .html, optionally moving the file into dir
func outputPath(file, dir string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file)) + ".html"
	if dir == "" {
		return base
	}
	return filepath.Join(dir, filepath.Base(base))
}

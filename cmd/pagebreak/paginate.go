package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gompdf/pagebreak/internal/config"
	"github.com/gompdf/pagebreak/internal/layout"
	"github.com/gompdf/pagebreak/internal/pagination"
	"github.com/gompdf/pagebreak/internal/parser/boxtree"
	"github.com/gompdf/pagebreak/internal/state"
	"github.com/gompdf/pagebreak/pkg/api"
)

func paginate(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	src := cmd.Args().Get(0)
	paginator := api.NewWithOptions(optionsFromConfig(env.Cfg, env.Log))

	if cmd.Bool("summary") {
		nodes, err := boxtree.NewParser().ParseFile(src)
		if err != nil {
			return fmt.Errorf("unable to read source: %w", err)
		}
		dp, err := paginator.Paginate(nodes...)
		if err != nil {
			return err
		}
		defer dp.Flush()
		return writeSummary(os.Stdout, dp)
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".pdf"
	}
	if _, err := os.Stat(dst); err == nil && !cmd.Bool("overwrite") {
		return fmt.Errorf("destination '%s' already exists, use --overwrite", dst)
	}

	pages, err := paginator.ConvertFile(src, dst)
	if err != nil {
		return err
	}
	env.Log.Info("Document written", zap.String("source", src), zap.String("destination", dst), zap.Int("pages", pages))
	return nil
}

// optionsFromConfig maps the configuration onto paginator options
func optionsFromConfig(cfg *config.Config, log *zap.Logger) api.Options {
	options := api.DefaultOptions()

	size := cfg.Page.Dimensions()
	options.PageWidth, options.PageHeight = size.Width, size.Height
	options.PageOrientation = api.PageOrientation(cfg.Page.Orientation)

	m := cfg.Page.Margins
	options.MarginTop, options.MarginRight, options.MarginBottom, options.MarginLeft = m.Top, m.Right, m.Bottom, m.Left

	options.Header = api.Band(cfg.Page.Header)
	options.Footer = api.Band(cfg.Page.Footer)
	options.Watermark = api.Watermark(cfg.Page.Watermark)
	options.Background = cfg.Page.Background
	options.BorderColor, options.BorderWidth = cfg.Page.Border.Color, cfg.Page.Border.Width

	options.MaxIterations = cfg.Pagination.MaxIterations

	r := cfg.Render
	options.Title, options.Author, options.Subject, options.Keywords = r.Title, r.Author, r.Subject, r.Keywords
	if r.Producer != "" {
		options.Producer = r.Producer
	}
	options.Compress = r.Compress
	options.MaxImagePixels = r.MaxImagePixels
	options.ResourcePaths = append(options.ResourcePaths, r.ResourcePaths...)

	options.Logger = log
	return options
}

// writeSummary lists the top level content of every page
func writeSummary(w io.Writer, dp *pagination.DynamicPage) (err error) {
	write := func(format string, args ...any) {
		_, e := fmt.Fprintf(w, format, args...)
		err = multierr.Append(err, e)
	}
	for _, page := range dp.Pages() {
		write("page %d/%d [%.2f..%.2f]\n", page.Context().Index, page.Context().PageCount(),
			page.FirstPoint().Y, page.DiagonalPoint().Y)
		for _, n := range page.Children() {
			write("  %s\n", layout.Describe(n))
		}
	}
	return err
}

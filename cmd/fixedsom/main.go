// Command fixedsom reconstructs the reading structure of a JSON fixed
// document and prints it as a flow, a semantic tree, HTML or markdown.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "fixedsom:", err)
		os.Exit(1)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:  "fixedsom",
		Usage: "Reconstruct paragraphs, tables and reading order of fixed documents",
		Commands: []*cli.Command{
			{
				Name:      "flow",
				Usage:     "Print the flow nodes of a document",
				ArgsUsage: "<document.json>",
				Flags:     commonFlags(),
				Action:    printFlow,
			},
			{
				Name:      "tree",
				Usage:     "Print the semantic tree of every page",
				ArgsUsage: "<document.json>",
				Flags:     commonFlags(),
				Action:    printTree,
			},
			{
				Name:      "html",
				Usage:     "Convert a document to HTML",
				ArgsUsage: "<document.json>",
				Flags:     append(commonFlags(), outputFlag()),
				Action:    writeHTML,
			},
			{
				Name:      "markdown",
				Usage:     "Convert a document to markdown",
				ArgsUsage: "<document.json>",
				Flags:     append(commonFlags(), outputFlag()),
				Action:    writeMarkdown,
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log layout decisions to stderr",
		},
		&cli.StringFlag{
			Name:    "pages",
			Aliases: []string{"p"},
			Usage:   "Pages to process, e.g. 1,3,5-7 (default: all)",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "Number of pages analyzed at the same time",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:  "no-tables",
			Usage: "Disable table reconstruction",
		},
		&cli.BoolFlag{
			Name:  "no-columns",
			Usage: "Disable column grouping",
		},
		&cli.BoolFlag{
			Name:  "ignore-structure",
			Usage: "Ignore document-structure hints",
		},
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

// newLogger builds a development logger in verbose mode and a production
// logger that only reports errors otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return cfg.Build()
}

// reconstructor builds the configured chain for a command
func reconstructor(cmd *cli.Command) (*fixedsom.Reconstructor, func(), error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, nil, errors.New("missing document path")
	}

	logger, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating logger")
	}
	done := func() { _ = logger.Sync() }

	pages, err := parsePages(cmd.String("pages"))
	if err != nil {
		done()
		return nil, nil, err
	}

	r := fixedsom.Load(path).
		Logger(logger).
		Concurrency(int(cmd.Int("concurrency"))).
		Pages(pages...)
	if cmd.Bool("no-tables") {
		r = r.WithoutTables()
	}
	if cmd.Bool("no-columns") {
		r = r.WithoutColumns()
	}
	if cmd.Bool("ignore-structure") {
		r = r.IgnoreStructure()
	}
	return r, done, nil
}

// parsePages parses a page list such as "1,3,5-7"
func parsePages(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid page %q", part)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, errors.Wrapf(err, "invalid page range %q", part)
			}
		}
		if end < start {
			return nil, errors.Errorf("invalid page range %q", part)
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// output returns the writer selected by the --output flag
func output(cmd *cli.Command) (io.WriteCloser, error) {
	path := cmd.String("output")
	if path == "" {
		return nopCloser{cmd.Root().Writer}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating output file")
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func printFlow(ctx context.Context, cmd *cli.Command) error {
	r, done, err := reconstructor(cmd)
	if err != nil {
		return err
	}
	defer done()

	zone, err := r.Flow(ctx)
	if err != nil {
		return errors.Wrap(err, "building flow")
	}
	w := cmd.Root().Writer
	for _, n := range zone.Nodes() {
		fmt.Fprintln(w, n)
	}
	return nil
}

func printTree(ctx context.Context, cmd *cli.Command) error {
	r, done, err := reconstructor(cmd)
	if err != nil {
		return err
	}
	defer done()

	pages, err := r.Reconstruct(ctx)
	if err != nil {
		return errors.Wrap(err, "reconstructing pages")
	}
	w := cmd.Root().Writer
	for _, page := range pages {
		if page == nil {
			fmt.Fprintln(w, "(page not loaded)")
			continue
		}
		for _, d := range page.Diagnostics() {
			fmt.Fprintln(w, d)
		}
	}
	return nil
}

func writeHTML(ctx context.Context, cmd *cli.Command) error {
	r, done, err := reconstructor(cmd)
	if err != nil {
		return err
	}
	defer done()

	w, err := output(cmd)
	if err != nil {
		return err
	}
	if err := r.HTML(ctx, w); err != nil {
		w.Close()
		return errors.Wrap(err, "writing html")
	}
	return w.Close()
}

func writeMarkdown(ctx context.Context, cmd *cli.Command) error {
	r, done, err := reconstructor(cmd)
	if err != nil {
		return err
	}
	defer done()

	md, err := r.Markdown(ctx)
	if err != nil {
		return errors.Wrap(err, "building markdown")
	}
	w, err := output(cmd)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, md); err != nil {
		w.Close()
		return errors.Wrap(err, "writing markdown")
	}
	return w.Close()
}

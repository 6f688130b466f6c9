// Package cli implements the slug command line.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/slug/internal/config"
	"github.com/dmitrymomot/slug/pkg/logger"
	"github.com/dmitrymomot/slug/pkg/sanitizer"
	"github.com/dmitrymomot/slug/pkg/slug"
)

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type app struct {
	cfg     config.Config
	streams Streams
	flags   slugFlags
}

type slugFlags struct {
	mode        string
	replacement string
	remove      string
	charmap     string
	files       []string
	workers     int
	noLower     bool
	noTrim      bool
	stripHTML   bool
}

// Execute runs the command line with args and returns the first error.
func Execute(ctx context.Context, cfg config.Config, args []string, streams Streams) error {
	root := NewRootCmd(cfg, streams)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Flag defaults come from cfg.
func NewRootCmd(cfg config.Config, streams Streams) *cobra.Command {
	a := &app{cfg: cfg, streams: streams}

	root := &cobra.Command{
		Use:   "slug [text...]",
		Short: "Convert text into URL-safe slugs",
		Long: "Each argument is printed as one slug per line. Without arguments or\n" +
			"--file, every line of standard input is slugged.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          a.runSlug,
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.mode, "mode", cfg.Slug.Mode, "preset mode (pretty or rfc3986)")
	pf.StringVar(&a.flags.replacement, "replacement", cfg.Slug.Replacement, "string that replaces whitespace")
	pf.StringVar(&a.flags.charmap, "charmap", cfg.Slug.CharMapFile, "YAML file extending the substitution tables")
	pf.IntVar(&a.flags.workers, "workers", cfg.Workers, "concurrent workers")

	f := root.Flags()
	f.BoolVar(&a.flags.noLower, "no-lower", false, "keep the original letter case")
	f.BoolVar(&a.flags.noTrim, "no-trim", false, "keep leading and trailing separators")
	f.StringVar(&a.flags.remove, "remove", "", "regular expression removed from the result")
	f.BoolVar(&a.flags.stripHTML, "strip-html", false, "strip HTML tags before slugging")
	f.StringArrayVarP(&a.flags.files, "file", "f", nil, "slug every line of a file (repeatable)")

	root.AddCommand(
		newServeCmd(a),
		newAnchorsCmd(a),
		newTablesCmd(a),
	)
	return root
}

func (a *app) logger() (*slog.Logger, error) {
	return logger.New(a.streams.Err, a.cfg.Log)
}

// newStore builds a store with the configured default mode, replacement and
// extension table.
func (a *app) newStore(l *slog.Logger) (*slug.Store, error) {
	store := slug.NewStore(
		slug.WithLogger(l),
		slug.WithDefaultMode(slug.Mode(a.flags.mode)),
	)
	for _, p := range store.Defaults().Modes {
		p.Replacement = a.flags.replacement
	}

	if a.flags.charmap != "" {
		f, err := os.Open(a.flags.charmap)
		if err != nil {
			return nil, fmt.Errorf("open charmap: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := store.ExtendYAML(f); err != nil {
			return nil, fmt.Errorf("load charmap %s: %w", a.flags.charmap, err)
		}
	}

	if _, err := store.Resolve(); err != nil {
		return nil, err
	}
	return store, nil
}

func (a *app) slugOptions() ([]slug.Option, error) {
	var opts []slug.Option
	if a.flags.noLower {
		opts = append(opts, slug.Lowercase(false))
	}
	if a.flags.noTrim {
		opts = append(opts, slug.Trim(false))
	}
	if a.flags.remove != "" {
		re, err := regexp.Compile(a.flags.remove)
		if err != nil {
			return nil, fmt.Errorf("invalid --remove: %w", err)
		}
		opts = append(opts, slug.Remove(re))
	}
	return opts, nil
}

func (a *app) runSlug(cmd *cobra.Command, args []string) error {
	l, err := a.logger()
	if err != nil {
		return err
	}
	store, err := a.newStore(l)
	if err != nil {
		return err
	}
	opts, err := a.slugOptions()
	if err != nil {
		return err
	}

	conv := func(text string) (string, error) {
		if a.flags.stripHTML {
			text = sanitizer.StripHTML(text)
		}
		return store.Make(text, opts...)
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() { _ = out.Flush() }()

	for _, arg := range args {
		s, err := conv(arg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, s)
	}

	if len(a.flags.files) > 0 {
		results, err := a.slugFiles(cmd.Context(), conv)
		if err != nil {
			return err
		}
		for _, lines := range results {
			for _, s := range lines {
				_, _ = fmt.Fprintln(out, s)
			}
		}
	}

	if len(args) == 0 && len(a.flags.files) == 0 {
		return slugLines(cmd.InOrStdin(), out, conv)
	}
	return out.Flush()
}

// slugFiles converts the files concurrently. Results keep the order of
// the --file flags.
func (a *app) slugFiles(ctx context.Context, conv func(string) (string, error)) ([][]string, error) {
	workers := a.flags.workers
	if workers < 1 {
		workers = 1
	}

	results := make([][]string, len(a.flags.files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range a.flags.files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := slugFile(name, conv)
			if err != nil {
				return err
			}
			results[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func slugFile(name string, conv func(string) (string, error)) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s, err := conv(sc.Text())
		if err != nil {
			return nil, err
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return lines, nil
}

func slugLines(r io.Reader, w *bufio.Writer, conv func(string) (string, error)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s, err := conv(sc.Text())
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, s)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return w.Flush()
}

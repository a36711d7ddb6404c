package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bjaus/align"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is typically called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

type options struct {
	configPath    string
	statePath     string
	fill          string
	sep           string
	rule          string
	pageSize      int
	noPage        bool
	headers       []string
	headerPrefix  string
	rulePrefix    string
	commentPrefix string
	verbose       bool
}

// Execute runs the align command with the process's standard streams.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the align command. Input comes from cmd.InOrStdin
// when no files are named, output goes to cmd.OutOrStdout, and logs go to
// cmd.ErrOrStderr.
func NewRootCommand() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "align [file...]",
		Short: "Align tab separated input into columns",
		Long: `align reads tab separated lines and writes them as a column-aligned table.

Columns are padded to the widest cell seen so far, so output starts
immediately and memory use does not depend on the input size.

Lines starting with the header prefix (default ";") declare column headers,
lines starting with the rule prefix (default "--") draw a horizontal rule,
and lines starting with the comment prefix (disabled by default) are dropped.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, &opts, args)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("align %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (.yaml, .yml, or .toml)")
	flags.StringVar(&opts.statePath, "state", "", "YAML file to load column widths from and save them to")
	flags.StringVar(&opts.fill, "fill", "", "padding character")
	flags.StringVar(&opts.sep, "sep", "", "column separator character")
	flags.StringVar(&opts.rule, "rule", "", "horizontal rule character")
	flags.IntVar(&opts.pageSize, "page-size", 0, "repeat headers every N lines (0: terminal height)")
	flags.BoolVar(&opts.noPage, "no-page", false, "never repeat headers")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "column header as label[:width] (repeatable)")
	flags.StringVar(&opts.headerPrefix, "header-prefix", "", "prefix of header lines")
	flags.StringVar(&opts.rulePrefix, "rule-prefix", "", "prefix of rule lines")
	flags.StringVar(&opts.commentPrefix, "comment-prefix", "", "prefix of dropped lines")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return root
}

// resolveConfig merges the defaults, the config file, and the flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command, opts *options) (Config, error) {
	cfg := DefaultConfig()
	if opts.configPath != "" {
		if err := LoadConfig(opts.configPath, &cfg); err != nil {
			return Config{}, err
		}
	}

	flags := cmd.Flags()
	for _, f := range []struct {
		name string
		dst  *string
		src  string
	}{
		{"fill", &cfg.Fill, opts.fill},
		{"sep", &cfg.Separator, opts.sep},
		{"rule", &cfg.Rule, opts.rule},
		{"header-prefix", &cfg.HeaderPrefix, opts.headerPrefix},
		{"rule-prefix", &cfg.RulePrefix, opts.rulePrefix},
		{"comment-prefix", &cfg.CommentPrefix, opts.commentPrefix},
	} {
		if flags.Changed(f.name) {
			*f.dst = f.src
		}
	}
	if flags.Changed("page-size") {
		cfg.PageSize = opts.pageSize
	}
	if opts.noPage {
		cfg.PageSize = -1
	}
	if len(opts.headers) > 0 {
		cfg.Headers = cfg.Headers[:0]
		for _, s := range opts.headers {
			h, err := parseHeader(s)
			if err != nil {
				return Config{}, err
			}
			cfg.Headers = append(cfg.Headers, h)
		}
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cmd *cobra.Command, opts *options, args []string) error {
	logger := loggerFromContext(ctx)

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	tbl := align.New()
	if opts.statePath != "" {
		if err := loadState(tbl, opts.statePath, logger); err != nil {
			return err
		}
	}

	stdout := cmd.OutOrStdout()
	out := bufio.NewWriter(stdout)
	p, err := tbl.Attach(out)
	if err != nil {
		return err
	}
	setChars(p, cfg)

	size := pageSize(cfg.PageSize, stdout)
	logger.Debug("starting", "page_size", size, "headers", len(cfg.Headers))

	d := newDriver(p, cfg, size, logger)
	err = d.declare(cfg.Headers)
	if err == nil {
		err = readInputs(ctx, d, args, cmd.InOrStdin(), logger)
	}
	if err == nil {
		err = p.EndRow()
	}
	if derr := p.Detach(); err == nil {
		err = derr
	}
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}
	logger.Debug("done", "rows", d.rows, "columns", tbl.Columns())

	if opts.statePath != "" {
		return saveState(tbl, opts.statePath, logger)
	}
	return nil
}

// setChars applies the configured formatting characters. Validate has
// already checked them.
func setChars(p *align.Proxy, cfg Config) {
	if r, _ := parseChar("fill", cfg.Fill); r != 0 {
		p.SetFill(r)
	}
	if r, _ := parseChar("separator", cfg.Separator); r != 0 {
		p.SetSeparator(r)
	}
	if r, _ := parseChar("rule", cfg.Rule); r != 0 {
		p.SetRule(r)
	}
}

func readInputs(ctx context.Context, d *driver, args []string, stdin io.Reader, logger *charmlog.Logger) error {
	if len(args) == 0 {
		return d.run(ctx, stdin)
	}
	for _, name := range args {
		if name == "-" {
			if err := d.run(ctx, stdin); err != nil {
				return err
			}
			continue
		}
		logger.Debug("reading", "file", name)
		if err := readFile(ctx, d, name); err != nil {
			return err
		}
	}
	return nil
}

func readFile(ctx context.Context, d *driver, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := d.run(ctx, f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func loadState(tbl *align.Table, path string, logger *charmlog.Logger) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no saved state", "path", path)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if err := tbl.LoadState(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("state loaded", "path", path, "widths", tbl.Widths())
	return nil
}

func saveState(tbl *align.Table, path string, logger *charmlog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tbl.SaveState(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Debug("state saved", "path", path)
	return nil
}

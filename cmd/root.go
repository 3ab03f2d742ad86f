// Package cmd implements the shelf command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/config"
	"github.com/oakwood-commons/shelf/internal/suggest"
	"github.com/oakwood-commons/shelf/internal/ui"
	"github.com/oakwood-commons/shelf/pkg/logger"
	"github.com/oakwood-commons/shelf/pkg/settings"
)

// rootOptions holds the persistent flags. Flags that were set override
// the merged config.
type rootOptions struct {
	apiURL     string
	assetURL   string
	configFile string
	theme      string
	noColor    bool
	logFile    string
	logLevel   string

	snapshot bool
	query    string
	width    int
	height   int
}

// runEnv is what every subcommand works with once flags and config are
// merged.
type runEnv struct {
	cfg    config.Config
	params *settings.Run
	log    logr.Logger
	client *catalog.Client
	closer func() error
}

func (r *runEnv) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer()
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Browse the bookstore catalog from the terminal",
		Long: `shelf is a terminal storefront for the bookstore catalog API.

Start it without arguments for the interactive storefront: type three or more
letters into the search box to get up to five live suggestions, pick one with
the arrow keys, or press enter to see every result.`,
		Example: `  shelf
  shelf --api-url http://localhost:8000
  shelf search tolkien --where 'price < 1000.0' -o yaml
  shelf suggest "rat i mir"
  shelf --snapshot --query hob --width 80 --height 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			interactive := !opts.snapshot
			rt, err := opts.load(cmd, interactive)
			if err != nil {
				return err
			}
			defer rt.Close()
			return runStorefront(cmd, opts, rt)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.apiURL, "api-url", "", "bookstore API base URL (default from config)")
	pf.StringVar(&opts.assetURL, "asset-url", "", "base URL for cover images (default from config)")
	pf.StringVar(&opts.configFile, "config-file", "", "path to a YAML config file")
	pf.StringVar(&opts.theme, "theme", "", "theme name (default from config; see 'shelf config themes')")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable color output")
	pf.StringVar(&opts.logFile, "log-file", "", "append JSON logs to this file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error (default from config)")

	f := rootCmd.Flags()
	f.BoolVar(&opts.snapshot, "snapshot", false, "render a single storefront frame and exit; honors --query/--width/--height")
	f.StringVar(&opts.query, "query", "", "text to type into the search box on startup")
	f.IntVar(&opts.width, "width", 0, "screen width in columns (default: terminal width)")
	f.IntVar(&opts.height, "height", 0, "screen height in rows (default: terminal height)")

	rootCmd.AddCommand(
		newSearchCmd(opts),
		newSuggestCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// load merges config and flags, sets up logging and builds the API client.
// Interactive runs never log to the terminal.
func (o *rootOptions) load(cmd *cobra.Command, interactive bool) (*runEnv, error) {
	path, err := config.ResolvePath(o.configFile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := o.applyFlags(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	params := settings.NewCliParams()
	params.Interactive = interactive
	params.APIBaseURL = cfg.API.BaseURL
	params.AssetBaseURL = cfg.API.AssetBaseURL
	params.NoColor = cfg.UI.NoColor
	params.LogFile = cfg.Log.File
	if params.MinLogLevel, err = logger.ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	var fallback io.Writer
	if params.LogToTerminal() {
		fallback = cmd.ErrOrStderr()
	}
	sink, closer, err := logger.OpenSink(params.LogFile, fallback)
	if err != nil {
		return nil, err
	}
	lgr := logger.Setup(logger.Options{Level: params.MinLogLevel, Sink: sink})
	lgr = logger.WithValues(lgr, "command", cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = settings.IntoContext(ctx, params)
	ctx = logger.WithLogger(ctx, lgr)
	cmd.SetContext(ctx)

	client := catalog.NewClient(cfg.API.BaseURL,
		catalog.WithTimeout(cfg.API.Timeout.Std()),
		catalog.WithRateLimit(cfg.API.RateLimit),
		catalog.WithLogger(lgr.WithName("catalog")),
	)
	return &runEnv{cfg: cfg, params: params, log: *lgr, client: client, closer: closer}, nil
}

// applyFlags copies the persistent flags that were set onto cfg and
// re-validates it.
func (o *rootOptions) applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("api-url") {
		cfg.API.BaseURL = strings.TrimSpace(o.apiURL)
	}
	if flags.Changed("asset-url") {
		cfg.API.AssetBaseURL = strings.TrimSpace(o.assetURL)
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = strings.TrimSpace(o.theme)
	}
	if flags.Changed("no-color") {
		cfg.UI.NoColor = o.noColor
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	return nil
}

// styles builds the page styles for the selected theme.
func (r *runEnv) styles() ui.Styles {
	th, err := r.cfg.SelectedTheme()
	if err != nil {
		return ui.NewStyles(ui.Theme{}, true)
	}
	return ui.NewStyles(ui.ThemeFromConfig(th), r.params.NoColor)
}

func (r *runEnv) labels() suggest.Labels {
	labels := suggest.DefaultLabels()
	s := r.cfg.Search
	if s.NoResultsLabel != "" {
		labels.NoResults = s.NoResultsLabel
	}
	if s.ViewAllLabel != "" {
		labels.ViewAll = s.ViewAllLabel
	}
	if s.Currency != "" {
		labels.Currency = s.Currency
	}
	return labels
}

// runStorefront starts the TUI, or prints one frame with --snapshot.
func runStorefront(cmd *cobra.Command, opts *rootOptions, rt *runEnv) error {
	app := ui.NewApp(ui.AppOptions{
		Name:        settings.CliBinaryName,
		Searcher:    rt.client,
		Index:       catalog.NewIndex(catalog.DefaultIndexSize),
		AssetBase:   rt.cfg.API.AssetBaseURL,
		Timeout:     rt.cfg.API.Timeout.Std(),
		Placeholder: rt.cfg.Search.Placeholder,
		PanelMargin: rt.cfg.Search.PanelMargin,
		Labels:      rt.labels(),
		Styles:      rt.styles(),
		Log:         rt.log,
	})

	if opts.snapshot {
		w, h := ui.ResolveSize(opts.width, opts.height)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), ui.Snapshot(app, opts.query, w, h))
		return err
	}

	if q := strings.TrimSpace(opts.query); q != "" {
		if home, ok := app.Current().(*ui.HomePage); ok {
			app.OnStart(home.SetQuery(q))
		}
	}
	return ui.Run(cmd.Context(), app, opts.width, opts.height)
}

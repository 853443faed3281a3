package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tvdb-episodes/config"
	"github.com/s0up4200/tvdb-episodes/credentials"
	"github.com/s0up4200/tvdb-episodes/episode"
	"github.com/s0up4200/tvdb-episodes/filter"
	"github.com/s0up4200/tvdb-episodes/listing"
	"github.com/s0up4200/tvdb-episodes/prompt"
	"github.com/s0up4200/tvdb-episodes/tvdb"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	fs      afero.Fs = afero.NewOsFs()

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	ordering   string
	seriesName string
	seriesID   uint64
	language   string
	apiKey     string
	filterExpr string
	preset     string
	timeout    time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tvdb-episodes",
	Short: "Print an episode listing for the specified series",
	Long: `tvdb-episodes looks up a series on TheTVDB by name or ID and prints every
episode as a file-name-safe line such as "Firefly - s01e01 - Serenity".

When a name search matches several series, the matches are listed and you are
asked for the numeric ID to use.`,
	Example: `  tvdb-episodes --key YOUR_API_KEY
  tvdb-episodes --name "Firefly"
  tvdb-episodes --id 78874 --ordering dvd --filter "Season > 0"`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
	RunE:              runList,
}

// SetVersion records the build version used in the user agent and by update
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or "+config.DefaultFile()+")")

	rootCmd.Flags().StringVarP(&ordering, "ordering", "o", "aired", "the episode ordering to use (aired, dvd)")
	rootCmd.Flags().StringVarP(&seriesName, "name", "n", "", "name of a series to search for")
	rootCmd.Flags().Uint64VarP(&seriesID, "id", "i", 0, "series ID")
	rootCmd.Flags().StringVarP(&language, "lang", "l", "en", "language code for API results")
	rootCmd.Flags().StringVarP(&apiKey, "key", "k", "", "update the configured API key")
	rootCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "only print episodes matching this expression")
	rootCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "timeout for each API request (default from config)")
	rootCmd.MarkFlagsMutuallyExclusive("name", "id")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(fs, cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func runList(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("id") && seriesID == 0 {
		return fmt.Errorf("--id must be at least 1")
	}

	store, err := credentials.New(cfg, fs)
	if err != nil {
		return err
	}

	if apiKey != "" {
		if err := store.Set(apiKey); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
		logger.Info().Str("store", cfg.Credentials.Store).Msg("Stored API key")

		if seriesName == "" && seriesID == 0 {
			return nil
		}
	}

	if seriesName == "" && seriesID == 0 {
		return fmt.Errorf("one of --name or --id is required")
	}

	key, err := store.Get()
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	requestTimeout := cfg.TVDB.Timeout
	if cmd.Flags().Changed("timeout") {
		requestTimeout = timeout
	}

	ctx := cmd.Context()
	client, err := tvdb.NewClient(ctx, key, logger,
		tvdb.WithBaseURL(cfg.TVDB.URL),
		tvdb.WithTimeout(requestTimeout),
		tvdb.WithMaxPages(cfg.TVDB.MaxPages),
		tvdb.WithUserAgent(config.AppName+"/"+version),
	)
	if err != nil {
		return err
	}

	service := listing.NewService(client, logger)
	chooser := prompt.New(cmd.OutOrStdout()).Chooser()

	lines, err := service.Lines(ctx, req, chooser)
	if errors.Is(err, listing.ErrAborted) {
		logger.Info().Msg("No series selected")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	return nil
}

// buildRequest merges command line flags over the configured defaults
func buildRequest(cmd *cobra.Command) (listing.Request, error) {
	req := listing.Request{
		SeriesID: seriesID,
		Name:     seriesName,
		Language: cfg.TVDB.Language,
	}
	if cmd.Flags().Changed("lang") {
		req.Language = language
	}

	orderingValue := cfg.TVDB.Ordering
	if cmd.Flags().Changed("ordering") {
		orderingValue = ordering
	}
	parsed, err := episode.ParseOrdering(orderingValue)
	if err != nil {
		return req, err
	}
	req.Ordering = parsed

	expression, err := filter.Resolve(filterExpr, preset, cfg.Filter.Presets)
	if err != nil {
		return req, err
	}
	if expression != "" {
		req.Filter, err = filter.Compile(expression)
		if err != nil {
			return req, fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	return req, nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/matheuskafuri/newsai/internal/api"
	"github.com/matheuskafuri/newsai/internal/config"
	"github.com/matheuskafuri/newsai/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	configPath string
	apiURL     string
	logFile    string
	debug      bool
}

// session is everything a command needs once flags are parsed.
type session struct {
	cfg    *config.Config
	client *api.Client
	logger *zap.Logger
}

func (s *session) close() {
	_ = s.logger.Sync()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "newsai",
		Short: "Terminal reader for the News AI article feed",
		Long: `newsai browses AI-summarized news articles served by a News AI API.

Run without a subcommand to open the interactive reader.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()
			return runTUI(cmd.Context(), s)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to config file")
	pf.StringVar(&opts.apiURL, "api-url", "", "News AI API base URL (overrides config and NEWSAI_API_URL)")
	pf.StringVar(&opts.logFile, "log-file", "", "log file path (default $XDG_STATE_HOME/newsai/newsai.log)")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug level")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newHealthCmd(opts),
		newVersionCmd(),
	)
	return root
}

// open loads .env and the config, applies flag overrides and builds the
// logger and API client.
func (o *rootOptions) open() (*session, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.apiURL != "" {
		cfg.APIURL = o.apiURL
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("--api-url: %w", err)
		}
	}

	logPath := o.logFile
	if logPath == "" {
		logPath = logging.DefaultPath()
	}
	logger := logging.NewOrNop(logPath, o.debug)

	client, err := api.New(cfg.APIURL, api.WithLogger(logger.Named("api")))
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Info("session started",
		zap.String("version", version),
		zap.String("api_url", client.BaseURL()),
		zap.Int("page_size", cfg.GetPageSize()))

	return &session{cfg: cfg, client: client, logger: logger}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "newsai %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

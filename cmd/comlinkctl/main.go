package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samvad-hq/swgoh-comlink-go/internal/app"
	"github.com/samvad-hq/swgoh-comlink-go/internal/config"
	"github.com/samvad-hq/swgoh-comlink-go/internal/logger"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/comlink"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cli carries flag values and the client built from them for one invocation.
type cli struct {
	url           string
	statsURL      string
	accessKey     string
	secretKey     string
	noCompression bool
	timeout       time.Duration
	verbose       bool

	in     io.Reader
	out    io.Writer
	client *comlink.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdin, os.Stdout)
	err := root.ExecuteContext(ctx)
	_ = logger.Close()
	if err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{in: in, out: out}

	rootCmd := &cobra.Command{
		Use:           "comlinkctl",
		Short:         "One-shot calls against a swgoh-comlink service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.connect(cmd.Flags())
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.url, "url", comlink.DefaultURL, "comlink base URL (overrides COMLINK_URL)")
	pf.StringVar(&c.statsURL, "stats-url", comlink.DefaultStatsURL, "stats service base URL (overrides COMLINK_STATS_URL)")
	pf.StringVar(&c.accessKey, "access-key", "", "HMAC access key (overrides COMLINK_ACCESS_KEY)")
	pf.StringVar(&c.secretKey, "secret-key", "", "HMAC secret key (overrides COMLINK_SECRET_KEY)")
	pf.BoolVar(&c.noCompression, "no-compression", false, "request identity encoding")
	pf.DurationVar(&c.timeout, "timeout", comlink.DefaultTimeout, "per-request timeout")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "log requests to stderr")

	addCommands(rootCmd, c)
	return rootCmd
}

// connect loads config, lets explicitly set flags win, and builds the client.
func (c *cli) connect(flags *pflag.FlagSet) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.Changed("url") {
		cfg.ComlinkURL = c.url
	}
	if flags.Changed("stats-url") {
		cfg.StatsURL = c.statsURL
	}
	if flags.Changed("access-key") {
		cfg.AccessKey = c.accessKey
	}
	if flags.Changed("secret-key") {
		cfg.SecretKey = c.secretKey
	}
	if flags.Changed("no-compression") {
		cfg.Compression = !c.noCompression
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = c.timeout
	}

	var log logger.Logger = logger.NopLogger{}
	if c.verbose {
		cfg.LogLevel = "debug"
		if _, err := logger.Init(cfg); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log = logger.Zap{}
	}

	client, err := comlink.New(app.ComlinkOptions(cfg, log)...)
	if err != nil {
		return fmt.Errorf("init comlink client: %w", err)
	}
	c.client = client
	return nil
}

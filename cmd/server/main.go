package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/sports-page-service/internal/config"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
	"github.com/preston-bernstein/sports-page-service/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "sports-page-service"
)

// options are the command-line flags. Flags that were not passed leave the config untouched.
type options struct {
	configPath string
	leagues    string
	favorites  string
	headless   bool
	out        string
	set        map[string]bool
}

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(opts.configPathOr(os.Getenv("CONFIG_FILE")))
	if err != nil {
		return err
	}
	cfg = opts.apply(cfg)

	// Headless output may go to stdout, so logs stay on stderr there.
	logOut := io.Writer(os.Stdout)
	if cfg.Headless {
		logOut = stderr
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
		Version: appVersion,
		Output:  logOut,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx, cfg, logger)
	if cfg.Headless {
		return srv.RunHeadless(ctx)
	}
	srv.Run(ctx, stop)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fset := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fset.StringVar(&opts.leagues, "leagues", "", "comma-separated active league ids")
	fset.StringVar(&opts.favorites, "favs", "", "comma-separated favorite team keys (league:teamId)")
	fset.BoolVar(&opts.headless, "headless", false, "build the page once, export it and exit")
	fset.StringVar(&opts.out, "out", "", "headless export path; - writes to stdout")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}
	opts.set = map[string]bool{}
	fset.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

func (o options) configPathOr(fallback string) string {
	if o.set["config"] {
		return o.configPath
	}
	return fallback
}

// apply overlays explicitly passed flags. An empty -leagues or -favs clears the list.
func (o options) apply(cfg config.Config) config.Config {
	if o.set["leagues"] {
		cfg.Leagues = config.SplitList(o.leagues)
	}
	if o.set["favs"] {
		cfg.Favorites = config.SplitList(o.favorites)
	}
	if o.set["headless"] {
		cfg.Headless = o.headless
	}
	if o.set["out"] {
		cfg.ExportPath = o.out
	}
	return cfg
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// handled here are passed to the FlagSet (see flagx.FilterArgs), so -c and
// any unrelated arguments do not cause parse errors.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-s", "-l", "-i", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the listings API")
	fs.IntVar(&cfg.MaxAttempts, "r", cfg.MaxAttempts, "maximum attempts for retried reads")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "path to the session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}

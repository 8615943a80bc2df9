package config

import (
	"flag"
	"os"
	"time"

	"github.com/itradeops/itradectl/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend API (default from Config)
//	-i int      activation poll interval in seconds (default from Config)
//	-d string   path to the local credential database
//
// Only the flags handled here are parsed; the remainder of os.Args is left for
// other components via flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	pollInterval := fs.Int("i", int(cfg.ActivationPollInterval.Seconds()), "activation poll interval (in seconds)")
	fs.StringVar(&cfg.CredentialDBPath, "d", cfg.CredentialDBPath, "path to the credential database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ActivationPollInterval = time.Duration(*pollInterval) * time.Second
}

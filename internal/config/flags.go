package config

import (
	"flag"
	"os"

	"github.com/avoronov/blogkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the remote post endpoint
//	-d string   path of the local database file
//	-j string   path of the cookie jar file
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-j"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIEndpoint, "a", cfg.APIEndpoint, "base URL of the remote post endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local database file")
	fs.StringVar(&cfg.CookieJarPath, "j", cfg.CookieJarPath, "path of the cookie jar file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

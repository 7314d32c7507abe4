package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// filterArgs keeps only the flags this package owns (and their values), so
// our flag set never trips over flags registered by other components.
// Both "-f value" and "-f=value" spellings are recognized.
func filterArgs(args []string, allowed ...string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := known[name]; ok {
				kept = append(kept, arg)
			}
			continue
		}
		if _, ok := known[arg]; ok {
			kept = append(kept, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				kept = append(kept, args[i+1])
				i++
			}
		}
	}
	return kept
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the marketplace API
//	-t int      request timeout in seconds
//	-d string   path to the local state database
func parseFlags(cfg *Config) {
	args := filterArgs(os.Args[1:], "-a", "-t", "-d")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the marketplace API")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StatePath, "d", cfg.StatePath, "path to the local state database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}

// jsonConfigPath extracts the config file path from the -c/-config flags,
// ignoring every other argument. Empty when not given.
func jsonConfigPath() string {
	var path string

	args := filterArgs(os.Args[1:], "-c", "-config")

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return path
}

// Package cmdutil holds the bootstrap shared by every subcommand: effective
// config, logger, and the API client built from both.
package cmdutil

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"loopa-cli/internal/app/api"
	"loopa-cli/internal/app/logger"
	"loopa-cli/internal/config"
)

// Verbose is bound to the root --verbose flag.
var Verbose bool

// Deps is what a subcommand needs to run.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger
	Client *api.Client
}

// Bootstrap loads config and builds the client. Exits on configuration
// errors; a CLI with a broken config has nothing useful to do.
func Bootstrap() *Deps {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.MustNew(Verbose)
	client := api.NewClient(api.Config{
		BaseURL: cfg.APIURL,
		Session: cfg.Session,
		Timeout: cfg.Timeout,
	}, log)
	return &Deps{Config: cfg, Logger: log, Client: client}
}

// Fail prints a user-facing error and exits non-zero.
func Fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

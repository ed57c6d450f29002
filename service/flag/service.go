// Package flag parses the command-line arguments.
package flag

import (
	"errors"
	"fmt"

	"github.com/KijinKims/verstamp/model"
	"github.com/spf13/pflag"
)

// ErrUsage marks a fatal misuse of the command line.
var ErrUsage = errors.New("usage: verstamp <module-name> <version-file-path> [flags]")

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags. The module
// name and output path are required positional arguments.
func (s *service) GetParsedFlags() (model.Flags, error) {
	utilityModule := pflag.String("utility-module", model.DefaultUtilityModule, "Module whose version macro other modules alias")
	major := pflag.String("major", "", "Override the default major version")
	minor := pflag.String("minor", "", "Override the default minor version")
	strict := pflag.Bool("strict", false, "Treat describe/status/branch/submodule query failures as fatal")
	show := pflag.Bool("show", false, "Render the resolved descriptor as a table on stderr")
	store := pflag.Bool("store", false, "Persist this stamp run in the local SQLite history database")
	dbPath := pflag.String("db-path", "", "Custom SQLite database path (default ~/.verstamp/history.db)")
	configPath := pflag.String("config-path", "", "Path to verstamp config file")
	quiet := pflag.BoolP("quiet", "q", false, "Suppress the $(info ...) summary lines")
	version := pflag.BoolP("version", "v", false, "Show version information")

	pflag.Parse()

	flags := model.Flags{
		UtilityModule: *utilityModule,
		Major:         *major,
		Minor:         *minor,
		Strict:        *strict,
		Show:          *show,
		Store:         *store,
		DBPath:        *dbPath,
		ConfigPath:    *configPath,
		Quiet:         *quiet,
		Version:       *version,
	}

	if flags.Version {
		return flags, nil
	}

	args := pflag.Args()
	if len(args) < 1 || args[0] == "" {
		return flags, fmt.Errorf("%w: missing module name", ErrUsage)
	}
	if len(args) < 2 || args[1] == "" {
		return flags, fmt.Errorf("%w: missing version file path", ErrUsage)
	}
	flags.ModuleName = args[0]
	flags.OutputPath = args[1]

	return flags, nil
}

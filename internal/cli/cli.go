package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/powerupgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Parse processes command-line arguments. It returns a populated AppConfig,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.AppConfig, bool, error) {
	flagSet := flag.NewFlagSet("powerupgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
PowerUpGo - A board extension runtime for project-management hosts.

Usage:
  powerupgo [options] [POWERUP_PATH]

Arguments:
  POWERUP_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	powerupFlag := flagSet.String("powerup", "", "Path to the power-up file or directory.")
	pFlag := flagSet.String("p", "", "Path to the power-up file or directory (shorthand).")
	listenFlag := flagSet.String("listen", "", "Address for the static asset server, e.g. ':8080'. Empty is disabled.")
	hostURLFlag := flagSet.String("host-url", "", "Socket.io endpoint of the host runtime. Empty skips the host session.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	modulesPathFlag := flagSet.String("modules-path", "modules", "Path to the directory containing module definitions.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	// The power-up path may arrive via either flag spelling or as the
	// first positional argument.
	path := *powerupFlag
	if path == "" {
		path = *pFlag
	}
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}
	slog.Debug("Power-up path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	if !validLogLevels[logLevel] {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config := &app.AppConfig{
		PowerUpPath: path,
		ModulesPath: *modulesPathFlag,
		ListenAddr:  *listenFlag,
		HostURL:     *hostURLFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	}

	slog.Debug("CLI arguments parsed.", "config", config)
	return config, false, nil
}

// Package main provides the ndarray command, a tool for inspecting and
// converting .npy arrays and .npz archives.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/born-ml/ndarray/internal/config"
)

const version = "v0.1.0-dev"

// errUsage reports a command line that could not be understood.
var errUsage = errors.New("usage error")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// env carries what every subcommand needs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
}

// command is one subcommand of the tool.
type command struct {
	name    string
	args    string
	summary string
	flags   func(fs *pflag.FlagSet) func(e *env, args []string) error
}

var commands = []command{
	{"info", "FILE...", "Show header, layout and checksum of .npy files and .npz entries", infoCommand},
	{"convert", "IN.npy OUT.npy", "Rewrite an array with another element type, byte order or element order", convertCommand},
	{"pack", "OUT.npz IN.npy...", "Bundle .npy files into an .npz archive", packCommand},
	{"list", "FILE.npz", "List the arrays in an .npz archive", listCommand},
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return fmt.Errorf("%w: missing command", errUsage)
	}

	name, args := args[0], args[1:]
	switch name {
	case "version", "--version":
		fmt.Fprintf(stdout, "ndarray %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == name {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		printUsage(stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	var configPath, logLevel string
	flagSet := pflag.NewFlagSet("ndarray "+cmd.name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&logLevel, "log-level", "", "override log.level from the config (debug, info, warn, error)")
	action := cmd.flags(flagSet)
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ndarray %s [flags] %s\n\n%s\n\nFlags:\n", cmd.name, cmd.args, cmd.summary)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		return fmt.Errorf("%w: --log-level: %v", errUsage, err)
	}

	return action(&env{cfg: cfg, logger: logger, stdout: stdout}, flagSet.Args())
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "ndarray %s - inspect and convert NumPy .npy arrays and .npz archives\n\n", version)
	fmt.Fprintln(w, "Usage: ndarray <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %-18s %s\n", c.name, c.args, c.summary)
	}
	fmt.Fprintf(w, "  %-9s %-18s %s\n", "version", "", "Show version")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Configuration is read from --config or $%s (YAML).\n", config.EnvVar)
}

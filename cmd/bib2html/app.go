package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-bibhtml"
	"github.com/alnah/go-bibhtml/internal/hints"
	"github.com/alnah/go-bibhtml/internal/yamlutil"
)

// runMain dispatches the command in args (args[0] is the program name)
// and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, rest, env)
	case "styles":
		runStyles(env)
	case "config":
		err = runConfig(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "bib2html %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitSuccess
	case errors.Is(err, ErrRenderFailed):
		// Each failure was already reported by printResults.
		fmt.Fprintf(env.Stderr, "%s %v\n", errorLabel("error:"), err)
		return ExitGeneral
	}
	fmt.Fprintf(env.Stderr, "%s %v%s\n", errorLabel("error:"), err, hintFor(err))
	return exitCodeFor(err)
}

// runStyles lists the embedded citation styles and page themes.
func runStyles(env *Environment) {
	fmt.Fprintln(env.Stdout, "Styles:")
	for _, name := range bibhtml.BuiltinStyles() {
		marker := ""
		if name == bibhtml.DefaultStyle {
			marker = " (default)"
		}
		fmt.Fprintf(env.Stdout, "  %s%s\n", name, marker)
	}
	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, "Themes:")
	for _, name := range bibhtml.BuiltinThemes() {
		fmt.Fprintf(env.Stdout, "  %s\n", name)
	}
	fmt.Fprintf(env.Stdout, "  %s\n", bibhtml.ThemeNone)
}

// runConfig prints the effective configuration as YAML, after applying
// BIB2HTML_* environment variables.
func runConfig(args []string, env *Environment) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	var name string
	fs.StringVarP(&name, "config", "c", "", "config file name or path")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printConfigUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(cmp.Or(name, envCfg.ConfigPath))
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := yamlutil.Encode(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}

// hintFor adds the CLI-only output directory hint to hints.For.
func hintFor(err error) string {
	if errors.Is(err, ErrWriteOutput) && strings.Contains(err.Error(), "creating output directory") {
		return hints.ForOutputDirectory()
	}
	return hints.For(err)
}

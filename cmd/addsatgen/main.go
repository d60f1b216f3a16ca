// Command addsatgen writes the clspv add_sat lowering tests: one LLVM IR
// fixture per integer width, signedness and vector size, each checked with
// FileCheck after running the builtin replacement pass.
//
// Usage:
//
//	addsatgen                      # write every fixture into the current directory
//	addsatgen generate -o test/IntegerBuiltins/add_sat
//	addsatgen check -o test/IntegerBuiltins/add_sat
//	addsatgen lint test/IntegerBuiltins/add_sat
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"addsatgen/internal/config"
	"addsatgen/internal/diag"
	"addsatgen/internal/fixture"
	"addsatgen/internal/validate"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runGenerate(args)
	}

	switch args[0] {
	case "generate":
		return runGenerate(args[1:])
	case "check":
		return runCheck(args[1:])
	case "lint":
		return runLint(args[1:])
	case "list":
		return runList(args[1:])
	case "help":
		printGlobalUsage()
		return nil
	default:
		printGlobalUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printGlobalUsage() {
	fmt.Fprintf(stderr, "addsatgen: add_sat lowering test generator\n\n")
	fmt.Fprintf(stderr, "Usage:\n")
	fmt.Fprintf(stderr, "  addsatgen [command] [options]\n\n")
	fmt.Fprintf(stderr, "Commands:\n")
	fmt.Fprintf(stderr, "  generate   Write every fixture (default when no command is given)\n")
	fmt.Fprintf(stderr, "  check      Report fixtures on disk that differ from a fresh generation\n")
	fmt.Fprintf(stderr, "  lint       Validate RUN/CHECK structure of existing fixtures\n")
	fmt.Fprintf(stderr, "  list       Print the fixture file names that would be generated\n")
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	output := fs.String("o", "", "output directory (defaults to output_dir from -config, else the current directory)")
	cfgPath := fs.String("config", "", "YAML configuration file (optional)")
	jobs := fs.Int("j", 0, "fixtures written concurrently (defaults to jobs from -config, else 1)")
	archive := fs.String("archive", "", "write one txtar archive to this path instead of individual files (- for stdout)")
	diagFormat := fs.String("diag-format", "text", "diagnostic output format (text|json)")
	strict := fs.Bool("strict", false, "exit non-zero when a fixture cannot be written")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("generate takes no positional arguments (got %s)", strings.Join(fs.Args(), " "))
	}

	cfg, err := loadConfig(*cfgPath, *output, *jobs)
	if err != nil {
		return err
	}
	reporter := diag.NewReporter(stderr, *diagFormat)
	gen, err := fixture.New(cfg, reporter)
	if err != nil {
		return err
	}

	if *archive != "" {
		return withOutputWriter(*archive, gen.WriteArchive)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := gen.WriteAll(ctx, cfg.OutputDir)
	if err != nil {
		return err
	}
	if *strict && len(res.Failed) > 0 {
		return fmt.Errorf("%d of %d fixtures could not be written", len(res.Failed), len(res.Failed)+len(res.Written))
	}
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)

	output := fs.String("o", "", "fixture directory (defaults to output_dir from -config, else the current directory)")
	cfgPath := fs.String("config", "", "YAML configuration file (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath, *output, 0)
	if err != nil {
		return err
	}
	gen, err := fixture.New(cfg, nil)
	if err != nil {
		return err
	}
	stale, err := gen.Stale(cfg.OutputDir)
	if err != nil {
		return err
	}
	for _, s := range stale {
		fmt.Fprintf(stdout, "%s: %s\n", filepath.Join(cfg.OutputDir, s.Name), s.Reason)
	}
	if len(stale) > 0 {
		return fmt.Errorf("%d fixture(s) out of date; rerun addsatgen generate", len(stale))
	}
	return nil
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(stderr)

	diagFormat := fs.String("diag-format", "text", "diagnostic output format (text|json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("lint requires at least one fixture file or directory")
	}

	paths, err := expandFixturePaths(fs.Args())
	if err != nil {
		return err
	}
	reporter := diag.NewReporter(stderr, *diagFormat)
	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			reporter.FileErrorf(path, 0, "%v", err)
			failed++
			continue
		}
		if err := validate.CheckFixture(path, data, reporter); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("lint failed for %d of %d file(s)", failed, len(paths))
	}
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfgPath := fs.String("config", "", "YAML configuration file (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath, "", 0)
	if err != nil {
		return err
	}
	for _, v := range fixture.Variants(cfg.Widths, cfg.Lanes) {
		fmt.Fprintln(stdout, v.FileName())
	}
	return nil
}

// loadConfig applies command-line overrides on top of the config file.
func loadConfig(path, outputDir string, jobs int) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if jobs != 0 {
		cfg.Jobs = jobs
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// expandFixturePaths replaces directories with the .ll files they contain.
func expandFixturePaths(inputs []string) ([]string, error) {
	var paths []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, in)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(in, "*.ll"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no .ll files in %s", in)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func withOutputWriter(path string, fn func(io.Writer) error) error {
	w, cleanup, err := outputWriter(path)
	if err != nil {
		return err
	}
	if cleanup == nil {
		return fn(w)
	}
	err = fn(w)
	if closeErr := cleanup(); err == nil && closeErr != nil {
		err = closeErr
	}
	return err
}

func outputWriter(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

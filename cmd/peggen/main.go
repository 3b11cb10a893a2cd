/*
Peggen generates a packrat parser from a grammar definition.

It reads a grammar (by default "grammar.json", in the data-model shape
internal/gramfile expects), runs the nullability and left-recursion
analyses, plans and expands every rule, and writes the generated Go source
to a file or to stdout.

Usage:

	peggen [flags]

The flags are:

	-v, --version
		Give the current version of peggen and then exit.

	-c, --config FILE
		Load settings from the given peggen.toml configuration file. Flags
		given on the command line override the corresponding config values.

	-g, --grammar FILE
		The grammar JSON file to generate from. Overrides grammar_file from
		config.

	-o, --output FILE
		Write generated source to FILE instead of stdout.

	-p, --package NAME
		The package name the generated source declares itself a member of.

	-i, --inspect
		After generation, open an interactive REPL over the grammar's
		analysis results instead of writing source.

	--dump-ir FILE
		Additionally write a binary snapshot of the expanded grammar's
		rule-level analysis results to FILE.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/peggen"
	"github.com/dekarrin/peggen/internal/config"
	"github.com/dekarrin/peggen/internal/genrun"
	"github.com/dekarrin/peggen/internal/gramfile"
	"github.com/dekarrin/peggen/internal/irsnapshot"
	"github.com/dekarrin/peggen/internal/version"
	"github.com/dekarrin/peggen/ir"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitConfigError indicates a problem loading or validating configuration.
	ExitConfigError

	// ExitGrammarError indicates a problem loading or analyzing the grammar.
	ExitGrammarError

	// ExitIOError indicates a problem reading input or writing output.
	ExitIOError
)

var (
	returnCode int = ExitSuccess

	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagConfig  = pflag.StringP("config", "c", "", "Load settings from the given peggen.toml configuration file")
	flagGrammar = pflag.StringP("grammar", "g", "", "The grammar JSON file to generate from")
	flagOutput  = pflag.StringP("output", "o", "", "Write generated source to FILE instead of stdout")
	flagPackage = pflag.StringP("package", "p", "", "The package name the generated source declares itself a member of")
	flagInspect = pflag.BoolP("inspect", "i", false, "Open an interactive REPL over the grammar's analysis results")
	flagDumpIR  = pflag.String("dump-ir", "", "Additionally write a binary IR snapshot to FILE")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}

	grammarData, err := os.ReadFile(cfg.GrammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading grammar: %s\n", err.Error())
		returnCode = ExitIOError
		return
	}

	g, err := gramfile.Load(grammarData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}

	run, err := genrun.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: starting generation run: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}
	run.Stage("analyze+plan+emit")

	result, err := peggen.Generate(g, cfg.GrammarFile, run.String(), cfg.PackageName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}

	if *flagInspect {
		runInspect(g, result)
		return
	}

	if err := writeOutput(cfg, result); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitIOError
		return
	}

	if cfg.DumpIR != "" {
		if err := dumpIR(g, cfg.DumpIR); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: dumping IR: %s\n", err.Error())
			returnCode = ExitIOError
			return
		}
	}
}

func dumpIR(g *ir.Grammar, path string) error {
	snap := irsnapshot.Build(g)
	data, err := irsnapshot.Encode(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func loadConfig() (config.Config, error) {
	var cfg config.Config
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if *flagGrammar != "" {
		cfg.GrammarFile = *flagGrammar
	}
	if *flagOutput != "" {
		cfg.OutputFile = *flagOutput
	}
	if *flagPackage != "" {
		cfg.PackageName = *flagPackage
	}
	if *flagDumpIR != "" {
		cfg.DumpIR = *flagDumpIR
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func writeOutput(cfg config.Config, result peggen.Result) error {
	if cfg.OutputFile == "" {
		_, err := fmt.Print(result.Source)
		return err
	}
	return os.WriteFile(cfg.OutputFile, []byte(result.Source), 0644)
}

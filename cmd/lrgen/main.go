/*
Lrgen loads a grammar from a text file, builds one of the three LR parse
table variants, and drives the shift/reduce stack automaton interactively
against strings the user types in.

Usage:

	lrgen [flags] <grammar-file>

The flags are:

	-c, --config FILE
		Path to an optional lrgen.toml config file (default variant, REPL
		prompt, automaton echo). Defaults to "lrgen.toml" in the current
		directory; a missing file is not an error.

	-v, --variant N
		Pre-select the table variant (1=LR(0), 2=SLR(1), 3=LR(1)) instead of
		prompting interactively.

	-d, --direct
		Read REPL input directly from stdin instead of through GNU readline.

	-s, --cache FILE
		Save the built table to FILE (REZI-encoded). The file is only
		written; every run rebuilds the automaton and table.

This is the out-of-scope CLI driver named in spec.md §6: it owns variant
selection, grammar loading, and the REPL, and delegates all parsing to the
grammar/automaton/table/driver packages.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/driver"
	"github.com/dekarrin/lrforge/grammar"
	"github.com/dekarrin/lrforge/loader"
	"github.com/dekarrin/lrforge/persist"
	"github.com/dekarrin/lrforge/table"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a clean REPL exit (spec.md §6: "Exit code 0 on
	// clean exit").
	ExitSuccess = iota
	// ExitLoadError indicates the grammar file failed to load or parse.
	ExitLoadError
	// ExitSetupError indicates graph/table construction failed.
	ExitSetupError
)

var (
	flagConfig  = pflag.StringP("config", "c", "lrgen.toml", "path to an optional config file")
	flagVariant = pflag.IntP("variant", "v", 0, "table variant to build without prompting: 1=LR(0), 2=SLR(1), 3=LR(1)")
	flagDirect  = pflag.BoolP("direct", "d", false, "read REPL input directly from stdin instead of via readline")
	flagCache   = pflag.StringP("cache", "s", "", "cache file for the built table (REZI-encoded)")
)

func main() {
	pflag.Parse()
	os.Exit(run())
}

func run() int {
	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lrgen [flags] <grammar-file>")
		return ExitLoadError
	}
	grammarFile := pflag.Arg(0)

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		pterm.Error.Printfln("load config: %v", err)
		return ExitLoadError
	}

	g, err := loader.LoadFile(grammarFile)
	if err != nil {
		pterm.Error.Printfln("load grammar: %v", err)
		return ExitLoadError
	}

	variant := *flagVariant
	if variant == 0 {
		variant, err = chooseVariant(cfg)
		if err != nil {
			pterm.Error.Printfln("read variant choice: %v", err)
			return ExitLoadError
		}
	}

	gr, tbl, err := buildTable(g, variant, *flagCache)
	if err != nil {
		pterm.Error.Printfln("build table: %v", err)
		return ExitSetupError
	}

	if cfg.EchoAutomaton {
		printAutomaton(gr)
	}
	fmt.Println(tbl.String())

	if err := repl(g, gr, tbl, cfg, *flagDirect); err != nil {
		pterm.Error.Printfln("%v", err)
		return ExitSetupError
	}
	return ExitSuccess
}

// chooseVariant prints the §6 variant menu and reads one digit, unless the
// config file names a default (in which case that default wins without a
// prompt, matching how the teacher's tqi lets a flag preempt a prompt).
func chooseVariant(cfg config) (int, error) {
	if n, ok := variantFromName(cfg.DefaultVariant); ok {
		return n, nil
	}

	fmt.Println("1. LR0")
	fmt.Println("2. SLR(1)")
	fmt.Println("3. LR(1)")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || n < 1 || n > 3 {
		return 0, fmt.Errorf("expected a digit 1-3, got %q", strings.TrimSpace(line))
	}
	return n, nil
}

func variantFromName(name string) (int, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LR0", "LR(0)":
		return 1, true
	case "SLR1", "SLR(1)":
		return 2, true
	case "LR1", "LR(1)", "CLR1":
		return 3, true
	default:
		return 0, false
	}
}

// buildTable constructs the graph and table for the chosen variant. If
// cachePath is set, the built table is also saved there (REZI-encoded); a
// failed save is reported as a warning. An existing cache file is not read.
func buildTable(g *grammar.Grammar, variant int, cachePath string) (*automaton.Graph, *table.Table, error) {
	var v automaton.Variant
	var build func(*automaton.Graph) (*table.Table, error)

	switch variant {
	case 1:
		v = automaton.LR0{}
		build = table.BuildLR0
	case 2:
		v = automaton.LR0{}
		build = table.BuildSLR1
	case 3:
		v = automaton.CLR1{}
		build = table.BuildCLR1
	default:
		return nil, nil, fmt.Errorf("unknown variant %d", variant)
	}

	gr := automaton.NewGraph(g, v)
	if err := gr.Construct(); err != nil {
		return nil, nil, err
	}
	tbl, err := build(gr)
	if err != nil {
		return nil, nil, err
	}

	if cachePath != "" {
		if err := persist.Save(cachePath, persist.FromTable(tbl)); err != nil {
			pterm.Warning.Printfln("cache table: %v", err)
		}
	}

	return gr, tbl, nil
}

func printAutomaton(gr *automaton.Graph) {
	g := gr.Grammar()
	for _, s := range gr.States() {
		pterm.DefaultSection.Printfln("state %d", s.ID)
		for _, it := range s.AllItems() {
			fmt.Println("  " + it.String(g))
		}
	}
}

// repl implements the §6 REPL contract: a "Write string :" prompt loop that
// parses each line with the chosen table and prints either ACCEPTED with the
// reduction trace or REJECTED with the error, until "quit" or EOF.
func repl(g *grammar.Grammar, gr *automaton.Graph, tbl *table.Table, cfg config, direct bool) error {
	var lr lineReader
	var err error
	if direct {
		lr = newDirectReader(os.Stdin)
	} else {
		lr, err = newInteractiveReader(cfg.Prompt + " ")
		if err != nil {
			lr = newDirectReader(os.Stdin)
		}
	}
	defer lr.Close()
	lr.SetPrompt(cfg.Prompt + " ")

	for {
		line, err := lr.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			return nil
		}

		input := make([]grammar.Symbol, 0, len(line))
		for _, r := range line {
			input = append(input, grammar.Symbol(r))
		}

		d := driver.New(tbl, gr, g, input)
		trace, runErr := d.Run()

		if runErr != nil {
			pterm.Error.Printfln("REJECTED: %v", runErr)
			continue
		}
		pterm.Success.Printfln("ACCEPTED; trace = %v", trace)
	}
}

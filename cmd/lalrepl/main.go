/*
Lalrepl starts an interactive REPL over the bundled calculator grammar.

It loads a compiled parser table (TOML or rezi binary, selected by file
extension) and reads expressions either from a readline-backed prompt
or, when not attached to a TTY, directly from stdin, printing the accepted
result or the formatted syntax error for each one.

Usage:

	lalrepl [flags]

The flags are:

	-v, --version
		Give the current version of lalrrun and then exit.

	-t, --table FILE
		Load the parser table from FILE instead of the bundled calculator
		table. Must end in ".toml" or ".bin".

	-d, --debug
		Enable SHIFT/REDUCE/error trace output for every expression parsed.

	-r, --recovery MODE
		Select the post-recovery lookahead policy, "consume" or "pop".
		Defaults to "consume".

	-c, --expr EXPRESSION
		Evaluate the given expression and exit instead of starting the
		REPL.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dekarrin/lalrrun/calc"
	"github.com/dekarrin/lalrrun/errpolicy"
	"github.com/dekarrin/lalrrun/internal/version"
	"github.com/dekarrin/lalrrun/parser"
	"github.com/dekarrin/lalrrun/runtimecfg"
	"github.com/dekarrin/lalrrun/tablefmt"
)

const (
	ExitSuccess = iota
	ExitParseError
	ExitInitError
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of lalrrun and then exit.")
	flagTable    = pflag.StringP("table", "t", "", "Load the parser table from the given TOML or .bin file instead of the bundled calculator table.")
	flagDebug    = pflag.BoolP("debug", "d", false, "Enable SHIFT/REDUCE/error trace output.")
	flagRecovery = pflag.StringP("recovery", "r", "consume", "Post-recovery lookahead policy: \"consume\" or \"pop\".")
	flagExpr     = pflag.StringP("expr", "c", "", "Evaluate the given expression and exit instead of starting the REPL.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	recovery := runtimecfg.RecoveryPolicy(*flagRecovery)
	if err := recovery.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(ExitInitError)
	}

	sm, err := loadTable(*flagTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(ExitInitError)
	}

	policy := errpolicy.NewStdPolicy()

	if *flagExpr != "" {
		if !evalLine(sm, *flagExpr, recovery, policy) {
			os.Exit(ExitParseError)
		}
		return
	}

	if err := runREPL(sm, recovery, policy); err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(ExitInitError)
	}
}

// loadTable loads a StateMachine from path by its extension, or returns the
// bundled calculator table if path is empty.
func loadTable(path string) (*parser.StateMachine, error) {
	if path == "" {
		return calc.NewStateMachine(), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tablefmt.LoadTOML(path)
	case ".bin":
		return tablefmt.LoadBinary(path)
	default:
		return nil, fmt.Errorf("table file %q must end in \".toml\" or \".bin\"", path)
	}
}

// evalLine parses one expression against sm and prints the result or the
// formatted error, reporting whether the parse was accepted.
func evalLine(sm *parser.StateMachine, line string, recovery runtimecfg.RecoveryPolicy, policy errpolicy.Policy) bool {
	p := calc.NewParserWithTable(line, sm, policy)
	p.SetDebugEnabled(*flagDebug)
	p.SetRecoveryMode(recovery.Mode())

	if !p.Parse(0, 0) {
		return false
	}
	if !p.Full() {
		fmt.Fprintf(os.Stderr, "ERROR: trailing input not consumed\n")
		return false
	}

	fmt.Printf("%v\n", p.UserData())
	return true
}

// runREPL reads expressions until end of input, using readline when
// attached to an interactive terminal and a direct line scanner otherwise,
// matching the donor interpreter's --direct fallback.
func runREPL(sm *parser.StateMachine, recovery runtimecfg.RecoveryPolicy, policy errpolicy.Policy) error {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return runReadlineREPL(sm, recovery, policy)
	}
	return runDirectREPL(sm, recovery, policy)
}

func runReadlineREPL(sm *parser.StateMachine, recovery runtimecfg.RecoveryPolicy, policy errpolicy.Policy) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "lalrepl> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		evalLine(sm, line, recovery, policy)
	}
}

func runDirectREPL(sm *parser.StateMachine, recovery runtimecfg.RecoveryPolicy, policy errpolicy.Policy) error {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		evalLine(sm, line, recovery, policy)
	}
	return sc.Err()
}

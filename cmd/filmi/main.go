// Command filmi is the native CLI entry point for the language.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rverma/filmi/internal/config"
	"github.com/rverma/filmi/pkg/formatter"
	"github.com/rverma/filmi/pkg/parser"
	"github.com/rverma/filmi/pkg/runtime"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: filmi <command> [options]")
		fmt.Fprintln(os.Stderr, "commands: run, check, fmt")
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "help", "--help", "-h":
		fmt.Println("usage: filmi <command> [options]")
		fmt.Println("commands:")
		fmt.Println("  run <file>    run a program, printing its output")
		fmt.Println("  check <file>  parse and validate without executing")
		fmt.Println("  fmt <file>    pretty-print a program to stdout (--write to rewrite in place)")
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		os.Exit(1)
	}
}

func cmdRun(args []string) int {
	file := fileArg(args)
	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: filmi run <file>")
		return 1
	}
	source, exitCode := readSource(file)
	if exitCode != 0 {
		return exitCode
	}

	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %s\n", err)
		return 1
	}

	rt := runtime.New(runtime.WithMaxIterations(cfg.MaxIterations))
	result, diag := rt.Run(source)
	if diag != nil {
		fmt.Fprintln(os.Stderr, diag.Error())
		return 2
	}

	for _, line := range result.Output {
		fmt.Println(line)
	}
	return 0
}

func cmdCheck(args []string) int {
	file := fileArg(args)
	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: filmi check <file>")
		return 1
	}
	source, exitCode := readSource(file)
	if exitCode != 0 {
		return exitCode
	}

	rt := runtime.New()
	if diag := rt.Check(source); diag != nil {
		fmt.Fprintln(os.Stderr, diag.Error())
		return 2
	}
	fmt.Println("No errors found.")
	return 0
}

func cmdFmt(args []string) int {
	var file string
	write := false
	for _, a := range args {
		switch a {
		case "--write":
			write = true
		default:
			if !strings.HasPrefix(a, "-") {
				file = a
			}
		}
	}
	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: filmi fmt <file> [--write]")
		return 1
	}
	source, exitCode := readSource(file)
	if exitCode != 0 {
		return exitCode
	}

	program, diag := parser.Parse(source)
	if diag != nil {
		fmt.Fprintln(os.Stderr, diag.Error())
		return 2
	}
	formatted := formatter.Format(program)

	if write {
		if err := os.WriteFile(file, []byte(formatted), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing file: %s\n", err)
			return 1
		}
		return 0
	}
	fmt.Print(formatted)
	return 0
}

func fileArg(args []string) string {
	for _, a := range args {
		if a == "-" || !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

func readSource(file string) (string, int) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading stdin: %s\n", err)
			return "", 1
		}
		return string(data), 0
	}
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read file: %s\n", file)
		return "", 1
	}
	return string(data), 0
}

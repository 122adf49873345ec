package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/zephyrtronium/stackcalc"
)

func main() {
	var (
		inname, cfgname, outname, loadname string
		c                                  config
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "TOML config file")
	flag.StringVar(&outname, "o", "", "write compiled bytecode to this file instead of running")
	flag.StringVar(&loadname, "load", "", "run a compiled bytecode file")
	flag.BoolVar(&c.Echo, "echo", false, "print syntax trees")
	flag.BoolVar(&c.Bytecode, "bytecode", false, "print instruction listings")
	flag.BoolVar(&c.Trace, "trace", false, "log every executed instruction")
	flag.IntVar(&c.Verbosity, "v", 0, "log verbosity")
	flag.IntVar(&c.StackLimit, "stack", 0, "maximum stack depth (0 for no limit)")
	flag.Parse()

	cfg := c
	if cfgname != "" {
		var err error
		cfg, err = loadConfig(cfgname)
		if err != nil {
			commonlog.Configure(0, nil)
			commonlog.GetLogger("stackcalc").Criticalf("%v", err)
			os.Exit(1)
		}
		// Explicit flags win over the file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "echo":
				cfg.Echo = c.Echo
			case "bytecode":
				cfg.Bytecode = c.Bytecode
			case "trace":
				cfg.Trace = c.Trace
			case "v":
				cfg.Verbosity = c.Verbosity
			case "stack":
				cfg.StackLimit = c.StackLimit
			}
		})
	}
	commonlog.Configure(cfg.verbosity(), nil)
	log := commonlog.GetLogger("stackcalc")

	var err error
	switch {
	case loadname != "":
		err = runFile(cfg, loadname, os.Stdout, log)
	default:
		var ins []namedInput
		ins, err = inputs(inname, flag.Args())
		if err == nil {
			err = run(cfg, ins, outname, os.Stdout, log)
		}
	}
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// namedInput is a program source with a name for error messages.
type namedInput struct {
	name string
	src  io.RuneScanner
}

func inputs(inname string, args []string) ([]namedInput, error) {
	var ins []namedInput
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		ins = append(ins, namedInput{inname, bufio.NewReader(f)})
	case inname == "-", len(args) == 0:
		ins = append(ins, namedInput{"<stdin>", bufio.NewReader(os.Stdin)})
	}
	for i, arg := range args {
		ins = append(ins, namedInput{fmt.Sprintf("<arg %d>", i+1), strings.NewReader(arg)})
	}
	return ins, nil
}

// run compiles every input, then either writes the bytecode to outname or
// executes it, printing each statement result to stdout.
func run(cfg config, ins []namedInput, outname string, stdout io.Writer, log commonlog.Logger) error {
	var code stackcalc.Bytecode
	for _, in := range ins {
		prog, err := stackcalc.Parse(in.src)
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		if cfg.Echo {
			if err := stackcalc.Fprint(stdout, prog); err != nil {
				return err
			}
		}
		c := stackcalc.Compile(prog)
		if cfg.Bytecode {
			fmt.Fprint(stdout, c)
		}
		log.Debugf("compiled %s: %d statements, %d instructions", in.name, len(prog.Statements), len(c))
		code = append(code, c...)
	}
	if outname != "" {
		b, err := code.MarshalBinary()
		if err != nil {
			return err
		}
		if err := os.WriteFile(outname, b, 0o644); err != nil {
			return err
		}
		log.Infof("wrote %d instructions to %s", len(code), outname)
		return nil
	}
	return execute(cfg, code, stdout, log)
}

// runFile executes a bytecode file written with -o.
func runFile(cfg config, name string, stdout io.Writer, log commonlog.Logger) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	code, err := stackcalc.UnmarshalBytecode(b)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if cfg.Bytecode {
		fmt.Fprint(stdout, code)
	}
	return execute(cfg, code, stdout, log)
}

func execute(cfg config, code stackcalc.Bytecode, stdout io.Writer, log commonlog.Logger) error {
	opts := []stackcalc.MachineOption{
		stackcalc.StackLimit(cfg.StackLimit),
		stackcalc.OnResult(func(v stackcalc.Value) { fmt.Fprintln(stdout, v) }),
	}
	if cfg.Trace {
		opts = append(opts, stackcalc.WithLogf(log.Debugf))
	}
	m, err := stackcalc.Interpret(code, opts...)
	if err != nil {
		return err
	}
	if s := m.Stack(); len(s) != 0 {
		log.Warningf("%d values left on the stack", len(s))
	}
	return nil
}

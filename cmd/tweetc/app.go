package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"tweetlang/pkg/compiler"
	"tweetlang/pkg/config"
	"tweetlang/pkg/instruction"
	"tweetlang/pkg/policy"
	"tweetlang/pkg/script"
	"tweetlang/pkg/trace"
	"tweetlang/pkg/utils"
)

// runner carries state resolved in Before into the command actions.
type runner struct {
	cfg    config.Config
	policy *policy.Policy
	format trace.Format
	logger *slog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	r := &runner{}

	inputFlags := []cli.Flag{
		&cli.StringFlag{Name: "expr", Aliases: []string{"e"}, Usage: "program text to compile instead of a file"},
	}
	simplifyFlag := &cli.BoolFlag{Name: "simplify", Usage: "simplify the instruction tree before use"}

	return &cli.App{
		Name:      "tweetc",
		Usage:     "compile action instructions into an ordered action trace",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"TWEETLANG_CONFIG"}},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "trace format: text, compact, json, yaml"},
			&cli.StringFlag{Name: "policy", Usage: "admission expression over Actions, Overflow, Depth, Nodes (empty admits all)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Before: func(c *cli.Context) error {
			return r.setup(c, stderr)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "compile a program (text or .lua script) and write its action trace",
				ArgsUsage: "[file|-]",
				Flags:     append(inputFlags, simplifyFlag),
				Action:    r.run,
			},
			{
				Name:      "tokens",
				Usage:     "dump the tokens of a text program",
				ArgsUsage: "[file|-]",
				Flags:     inputFlags,
				Action:    r.tokens,
			},
			{
				Name:      "ast",
				Usage:     "print the instruction tree",
				ArgsUsage: "[file|-]",
				Flags:     append(inputFlags, simplifyFlag),
				Action:    r.ast,
			},
			{
				Name:      "stats",
				Usage:     "print expansion size, depth and node count without lowering",
				ArgsUsage: "[file|-]",
				Flags:     inputFlags,
				Action:    r.stats,
			},
		},
	}
}

// setup resolves configuration with flag overrides and installs the logger.
func (r *runner) setup(c *cli.Context, stderr io.Writer) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("policy") {
		cfg.Policy = c.String("policy")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	r.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(r.logger)

	r.cfg = cfg
	r.format, _ = trace.ParseFormat(cfg.Format)
	r.policy, _ = policy.New(cfg.Policy)
	return nil
}

// load reads the command's input: -e text, a .lua script, a text file, or stdin.
func (r *runner) load(c *cli.Context) (instruction.Instruction, string, error) {
	if text := c.String("expr"); text != "" {
		program, err := compiler.Parse(text)
		if err != nil {
			return nil, "<expr>", fmt.Errorf("<expr>: %w", err)
		}
		return program, "<expr>", nil
	}

	path := c.Args().First()
	if utils.IsScript(path) {
		fullPath, _, err := utils.GetPathInfo(path)
		if err != nil {
			return nil, path, err
		}
		instr, err := script.LoadFile(fullPath)
		if err != nil {
			return nil, fullPath, fmt.Errorf("%s: %w", fullPath, err)
		}
		return instr, fullPath, nil
	}

	src, name, err := utils.ReadSource(path, c.App.Reader)
	if err != nil {
		return nil, name, err
	}
	program, err := compiler.Parse(src)
	if err != nil {
		return nil, name, fmt.Errorf("%s: %w", name, err)
	}
	return program, name, nil
}

func (r *runner) loadSimplified(c *cli.Context) (instruction.Instruction, string, error) {
	instr, name, err := r.load(c)
	if err != nil {
		return nil, name, err
	}
	if r.cfg.Simplify || c.Bool("simplify") {
		instr = instruction.Simplify(instr)
	}
	return instr, name, nil
}

func (r *runner) run(c *cli.Context) error {
	instr, name, err := r.loadSimplified(c)
	if err != nil {
		return err
	}

	env := policy.EnvFor(instr)
	if err := r.policy.Check(env); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	r.logger.Debug("compiling", "source", name, "actions", env.Actions, "depth", env.Depth, "nodes", env.Nodes)

	if err := trace.Write(c.App.Writer, r.format, instruction.Stream(instr)); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

func (r *runner) tokens(c *cli.Context) error {
	src, name := c.String("expr"), "<expr>"
	if src == "" {
		path := c.Args().First()
		if utils.IsScript(path) {
			return errors.New("tokens only applies to text programs")
		}
		var err error
		if src, name, err = utils.ReadSource(path, c.App.Reader); err != nil {
			return err
		}
	}

	toks, err := compiler.Lex(src)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	fmt.Fprintf(c.App.Writer, "Tokens (%d)\n", len(toks))
	for _, tok := range toks {
		fmt.Fprintln(c.App.Writer, " ", tok)
	}
	return nil
}

func (r *runner) ast(c *cli.Context) error {
	instr, _, err := r.loadSimplified(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, instr)
	return nil
}

func (r *runner) stats(c *cli.Context) error {
	instr, _, err := r.load(c)
	if err != nil {
		return err
	}
	s := instruction.Measure(instr)
	fmt.Fprintf(c.App.Writer, "actions:  %d\noverflow: %t\ndepth:    %d\nnodes:    %d\n", s.Actions, s.Overflow, s.Depth, s.Nodes)
	if err := r.policy.Check(policy.EnvFor(instr)); err != nil {
		fmt.Fprintf(c.App.Writer, "admitted: false (%s)\n", r.policy)
	} else {
		fmt.Fprintln(c.App.Writer, "admitted: true")
	}
	return nil
}

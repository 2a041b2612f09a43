package main

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/minilang/ast"
	"github.com/pontaoski/minilang/interpreter"
	"github.com/pontaoski/minilang/lexer"
	"github.com/pontaoski/minilang/parser"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minilang", "main")

// readSource loads the file named by the first argument, stdin for "-",
// or the project entry when no argument is given.
func readSource(c *cli.Context, proj *project) (string, error) {
	file := c.Args().First()
	if file == "" && proj != nil {
		file = proj.entryPath()
	}

	switch file {
	case "":
		return "", fmt.Errorf("no file given and no Entry in %s", c.String("project"))
	case "-":
		data, err := ioutil.ReadAll(os.Stdin)
		return string(data), err
	}

	plog.Debugf("reading %s", file)
	data, err := ioutil.ReadFile(file)
	return string(data), err
}

func parseSource(source string) ([]ast.Stmt, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}

func setLogLevel(level string, trace bool) error {
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, trace))
	if level == "" {
		return nil
	}

	l, err := capnslog.ParseLevel(strings.ToUpper(level))
	if err != nil {
		return err
	}
	capnslog.SetGlobalLogLevel(l)
	return nil
}

func main() {
	var proj *project

	app := &cli.App{
		Name:  "minilang",
		Usage: "minilang interpreter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "project",
				Value: projectFile,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print a stack trace with errors",
				Value: false,
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			proj, err = loadProject(c.String("project"))
			if err != nil {
				return err
			}

			level := c.String("log-level")
			if level == "" && proj != nil {
				level = proj.LogLevel
			}
			return setLogLevel(level, c.Bool("trace"))
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if c.Bool("trace") {
				tracerr.PrintSourceColor(err)
			} else {
				fmt.Fprintln(os.Stderr, tracerr.Unwrap(err))
			}
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a project file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "entry",
						Value: "main.ml",
					},
				},
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return fmt.Errorf("no package name provided")
					}

					return writeProject(c.String("project"), project{
						Package:  name,
						Entry:    c.String("entry"),
						LogLevel: "INFO",
					})
				},
			},
			{
				Name:      "run",
				Usage:     "run a program",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					source, err := readSource(c, proj)
					if err != nil {
						return err
					}

					out := bufio.NewWriter(os.Stdout)
					defer out.Flush()

					return interpreter.Run(source, out)
				},
			},
			{
				Name:      "check",
				Usage:     "lex and parse a program without running it",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					source, err := readSource(c, proj)
					if err != nil {
						return err
					}

					_, err = parseSource(source)
					return err
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the token stream",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					source, err := readSource(c, proj)
					if err != nil {
						return err
					}

					tokens, err := lexer.Lex(source)
					if err != nil {
						return err
					}
					for _, tok := range tokens {
						fmt.Println(tok)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					source, err := readSource(c, proj)
					if err != nil {
						return err
					}

					program, err := parseSource(source)
					if err != nil {
						return err
					}
					repr.Println(program)
					return nil
				},
			},
			{
				Name:      "fmt",
				Usage:     "print a program in canonical form",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					source, err := readSource(c, proj)
					if err != nil {
						return err
					}

					program, err := parseSource(source)
					if err != nil {
						return err
					}
					fmt.Print(ast.Format(program))
					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/repr"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/melbi/diag"
	"github.com/pontaoski/melbi/lexer"
	"github.com/pontaoski/melbi/parser"
)

func readSource(c *cli.Context) (string, string, error) {
	name := c.Args().First()
	if name == "" || name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", err
	}
	return string(data), name, nil
}

var stopProfile func()

func main() {
	logger := diag.NewLogger(os.Stderr, slog.LevelWarn)

	app := &cli.App{
		Name:  "melbi",
		Usage: "melbi expression parser",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "debug logging and stack traces on errors",
			},
			&cli.BoolFlag{
				Name:  "profile",
				Usage: "write a CPU profile for the run",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger = diag.NewLogger(os.Stderr, slog.LevelDebug)
			}
			if c.Bool("profile") {
				stopProfile = profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop
			}
			return nil
		},
		After: func(*cli.Context) error {
			if stopProfile != nil {
				stopProfile()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse one expression and dump its AST",
				ArgsUsage: "FILE|-",
				Action: func(c *cli.Context) error {
					src, name, err := readSource(c)
					if err != nil {
						return err
					}

					start := time.Now()
					expr, err := parser.Parse(src, parser.WithFilename(name))
					logger.Debug("parse finished",
						"file", name,
						"took", time.Since(start),
					)
					if err != nil {
						return fail(c, src, err)
					}
					repr.Println(expr)
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the token stream",
				ArgsUsage: "FILE|-",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "comments",
						Usage: "keep comment tokens",
					},
				},
				Action: func(c *cli.Context) error {
					src, name, err := readSource(c)
					if err != nil {
						return err
					}

					opts := []lexer.Option{lexer.WithFilename(name)}
					if c.Bool("comments") {
						opts = append(opts, lexer.WithComments())
					}
					tokens, err := lexer.Tokenize(src, opts...)
					if err != nil {
						return fail(c, src, err)
					}
					for _, tok := range tokens {
						fmt.Printf("%-14s %q %d..%d\n",
							tok.Kind, tok.Lexeme,
							tok.Location.From.Offset, tok.Location.To.Offset)
					}
					return nil
				},
			},
			{
				Name:      "check",
				Usage:     "parse and report ok or an error",
				ArgsUsage: "FILE|-",
				Action: func(c *cli.Context) error {
					src, name, err := readSource(c)
					if err != nil {
						return err
					}

					if _, err := parser.Parse(src, parser.WithFilename(name)); err != nil {
						return fail(c, src, err)
					}
					fmt.Println("ok")
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// fail prints a rendered diagnostic and returns a silent non-nil error so
// the app exits non-zero without double printing.
func fail(c *cli.Context, src string, err error) error {
	fmt.Fprintln(os.Stderr, diag.Render(src, err))
	if c.Bool("verbose") {
		tracerr.PrintSourceColor(err)
	}
	return cli.Exit("", 1)
}

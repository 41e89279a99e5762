package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/reoring/osver"
	"github.com/reoring/osver/internal/config"
)

func (a *app) parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse versions and print them in the selected shape",
		ArgsUsage: "VERSION...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "reject non-numeric patch components and more than three components",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return errors.New("parse: at least one VERSION is required")
			}
			parse := osver.Parse
			if cmd.Bool("strict") {
				parse = osver.ParseStrict
			}
			for _, s := range args {
				v, err := parse(s)
				if err != nil {
					return fmt.Errorf("parse: %w", err)
				}
				a.log.WithField("input", s).Debugf("parsed %s", v)
				if err := a.render(v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) encodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Encode a version as JSON or YAML in the selected shape",
		ArgsUsage: "VERSION",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("encode: exactly one VERSION is required")
			}
			v, err := osver.Parse(cmd.Args().First())
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			out := a.cfg.Output
			if out == config.OutputText {
				out = config.OutputJSON
			}
			return a.renderAs(v, out)
		},
	}
}

func (a *app) decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode versions from a JSON, YAML or TOML document",
		ArgsUsage: "[FILE|-]",
		Description: `JSON input may hold several whitespace-separated documents and YAML input
several "---" separated documents. TOML input reads the "version" key and
the "versions" array.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "input syntax: json, yaml or toml (default: from the file extension, else json)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			r, closeFn, err := a.open(path)
			if err != nil {
				return err
			}
			defer closeFn()

			syntax := cmd.String("input")
			if syntax == "" {
				syntax = syntaxFromExt(path)
			}
			vs, err := decodeAll(ctx, r, syntax)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			a.log.WithFields(logrus.Fields{"input": syntax, "count": len(vs)}).Debug("decoded")
			for _, v := range vs {
				if err := a.render(v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) compareCmd() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Print -1, 0 or 1 as A sorts before, equal to or after B",
		ArgsUsage: "A B",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errors.New("compare: exactly two versions are required")
			}
			x, err := osver.Parse(cmd.Args().Get(0))
			if err != nil {
				return fmt.Errorf("compare: %w", err)
			}
			y, err := osver.Parse(cmd.Args().Get(1))
			if err != nil {
				return fmt.Errorf("compare: %w", err)
			}
			_, err = fmt.Fprintln(a.out, osver.Compare(x, y))
			return err
		},
	}
}

func (a *app) sortCmd() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "Sort versions (one per line on stdin when no arguments are given)",
		ArgsUsage: "[VERSION...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "reverse",
				Aliases: []string{"r"},
				Usage:   "sort in descending order",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				lines, err := readLines(a.in)
				if err != nil {
					return fmt.Errorf("sort: %w", err)
				}
				args = lines
			}
			vs := make([]osver.Version, 0, len(args))
			for _, s := range args {
				v, err := osver.Parse(s)
				if err != nil {
					return fmt.Errorf("sort: %w", err)
				}
				vs = append(vs, v)
			}
			osver.Sort(vs)
			if cmd.Bool("reverse") {
				slices.Reverse(vs)
			}
			for _, v := range vs {
				if err := a.render(v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) hostCmd() *cli.Command {
	return &cli.Command{
		Name:  "host",
		Usage: "Print the operating system version of this host",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "minimum",
				Usage: "fail unless the host version is at least this version (overrides config)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			v, err := a.host()
			if err != nil {
				return fmt.Errorf("host: %w", err)
			}
			minimum := a.cfg.Minimum
			if s := cmd.String("minimum"); s != "" {
				m, err := osver.Parse(s)
				if err != nil {
					return fmt.Errorf("host: minimum: %w", err)
				}
				minimum = &m
			}
			if err := a.render(v); err != nil {
				return err
			}
			if minimum != nil && v.Less(*minimum) {
				a.log.WithFields(logrus.Fields{"host": v.String(), "minimum": minimum.String()}).Warn("host version below minimum")
				return fmt.Errorf("host: version %s is below minimum %s", v, minimum)
			}
			return nil
		},
	}
}

func (a *app) schemaCmd() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON Schema of the accepted wire shapes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "encode",
				Usage: "describe only the shape produced for --format",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Bool("encode") {
				s, err := osver.JSONSchema(a.cfg.Format)
				if err != nil {
					return err
				}
				return a.writeJSON(s)
			}
			return a.writeJSON(osver.DecodeJSONSchema())
		},
	}
}

func (a *app) open(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return a.in, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() {
		if err := f.Close(); err != nil {
			a.log.WithError(err).Warn("failed to close input")
		}
	}, nil
}

func syntaxFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// tomlDocument is the TOML layout accepted by decode.
type tomlDocument struct {
	Version  *osver.Version  `toml:"version"`
	Versions []osver.Version `toml:"versions"`
}

func decodeAll(ctx context.Context, r io.Reader, syntax string) ([]osver.Version, error) {
	switch syntax {
	case "json":
		return osver.StreamDecodeAll(ctx, r)
	case "yaml":
		return osver.ReadYAML(r)
	case "toml":
		var doc tomlDocument
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
		var out []osver.Version
		if doc.Version != nil {
			out = append(out, *doc.Version)
		}
		return append(out, doc.Versions...), nil
	default:
		return nil, fmt.Errorf("unsupported input %q (json, yaml, toml)", syntax)
	}
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

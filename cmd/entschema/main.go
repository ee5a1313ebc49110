package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
	js "github.com/reoring/entschema/jsonschema"
	"github.com/reoring/entschema/node"
	"github.com/reoring/entschema/source"
)

// errViolations reports that validate finished but some rows did not conform.
var errViolations = errors.New("records do not conform")

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	os.Exit(run(context.Background(), os.Args[1], os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "entschema CLI\n\nUsage:\n  entschema infer [-in records.json] [-yaml] [-settings s.yaml] [-compact] [-o schema.json]\n  entschema validate -schema-from reference.json [-in records.json] [-yaml] [-settings s.yaml] [-remove-extra] [-o out.json]\n\nNotes:\n  - Records are read from stdin when -in is omitted or \"-\".\n  - Files ending in .yaml or .yml are read as YAML.")
}

// run executes one subcommand and returns the process exit code: 0 on
// success, 1 when validation reported violations or the command failed, and 2
// on usage errors.
func run(ctx context.Context, sub string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cmd func(context.Context, []string, io.Reader, io.Writer, io.Writer) error
	switch sub {
	case "infer":
		cmd = inferCmd
	case "validate":
		cmd = validateCmd
	default:
		usage(stderr)
		return 2
	}
	err := cmd(ctx, args, stdin, stdout, stderr)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
		return 2
	case errors.Is(err, errViolations):
		return 1
	}
	logger := newLogger(stderr, false)
	logger.Error().Err(err).Str("command", sub).Msg("failed")
	return 1
}

var errUsage = errors.New("usage")

type commonFlags struct {
	in       string
	yaml     bool
	settings string
	out      string
	verbose  bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.in, "in", "-", "records file (JSON or YAML); - reads stdin")
	fs.BoolVar(&c.yaml, "yaml", false, "read records as YAML regardless of extension")
	fs.StringVar(&c.settings, "settings", "", "YAML transform settings file")
	fs.StringVar(&c.out, "o", "", "output filename (default stdout)")
	fs.BoolVar(&c.verbose, "v", false, "enable debug logs")
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

func inferCmd(_ context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("infer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c commonFlags
	var compact bool
	c.register(fs)
	fs.BoolVar(&compact, "compact", false, "write the schema without indentation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := newLogger(stderr, c.verbose).With().Str("command", "infer").Logger()

	settings, err := loadSettings(c.settings)
	if err != nil {
		return err
	}
	records, err := readRecords(c.in, c.yaml, stdin)
	if err != nil {
		return err
	}
	logger.Debug().Str("in", c.in).Int("records", len(records)).Msg("records read")

	schema, err := node.ExportJSONSchema(node.InferSchema(records, settings))
	if err != nil {
		return fmt.Errorf("export schema: %w", err)
	}
	b, err := js.Marshal(schema, !compact)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := writeOutput(c.out, append(b, '\n'), stdout); err != nil {
		return err
	}
	logger.Info().Int("records", len(records)).Msg("schema inferred")
	return nil
}

func validateCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c commonFlags
	var schemaFrom string
	var removeExtra bool
	c.register(fs)
	fs.StringVar(&schemaFrom, "schema-from", "", "reference records the schema is inferred from")
	fs.BoolVar(&removeExtra, "remove-extra", false, "drop properties the schema does not accept instead of reporting them")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if schemaFrom == "" {
		fs.Usage()
		return errUsage
	}
	logger := newLogger(stderr, c.verbose).With().Str("command", "validate").Logger()

	settings, err := loadSettings(c.settings)
	if err != nil {
		return err
	}
	if removeExtra {
		settings = settings.WithRemoveExtra(true)
	}
	reference, err := readRecords(schemaFrom, c.yaml, stdin)
	if err != nil {
		return err
	}
	schema := node.InferSchema(reference, settings)
	logger.Debug().Str("schemaFrom", schemaFrom).Int("records", len(reference)).Msg("schema inferred")

	records, err := readRecords(c.in, c.yaml, stdin)
	if err != nil {
		return err
	}
	out, err := node.TransformAll(ctx, schema, records, settings)
	vs, failed := entschema.AsViolations(err)
	if err != nil && !failed {
		return err
	}
	for _, v := range vs {
		logger.Warn().Str("path", v.Path).Int("row", v.Row).Str("code", v.Code).Msg(v.Message)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := writeOutput(c.out, append(b, '\n'), stdout); err != nil {
		return err
	}
	if failed {
		logger.Info().Int("records", len(records)).Int("violations", len(vs)).Msg("validation failed")
		return errViolations
	}
	logger.Info().Int("records", len(records)).Msg("records valid")
	return nil
}

func loadSettings(path string) (*format.TransformSettings, error) {
	if path == "" {
		return format.DefaultSettings(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()
	return format.LoadSettings(f)
}

func readRecords(path string, asYAML bool, stdin io.Reader) ([]entity.Entity, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open records: %w", err)
		}
		defer f.Close()
		r = f
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			asYAML = true
		}
	}
	var (
		records []entity.Entity
		err     error
	)
	if asYAML {
		records, err = source.ReadYAML(r)
	} else {
		records, err = source.ReadJSON(r)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func writeOutput(path string, b []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(b)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

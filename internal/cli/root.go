package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/gofetch/errors"
	"github.com/kbukum/gofetch/fetch"
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
	"github.com/kbukum/gofetch/version"
)

// Streams are the standard streams of a command invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type requestFlags struct {
	method     string
	headers    []string
	data       string
	jsonData   string
	dataFile   string
	user       string
	timeout    time.Duration
	details    bool
	selectPath string
	output     string
	configFile string
	noColor    bool
}

// NewRootCmd builds the gofetch command bound to streams.
func NewRootCmd(streams Streams) *cobra.Command {
	var f requestFlags

	cmd := &cobra.Command{
		Use:   "gofetch [flags] URL",
		Short: "Issue a single HTTP request and print the decoded response",
		Long: `gofetch sends one HTTP request and prints the response body. Text
responses are printed as text, JSON responses are parsed, and anything else
is printed as received.

URLs starting with http:// use a plain connection; everything else is sent
over TLS. Redirects are not followed.`,
		Example: `  gofetch http://localhost:8080/json/a?b=c
  gofetch -X POST --json '{"name":"gofetch"}' https://api.example.com/items
  gofetch -i -o yaml --select data.items https://api.example.com/items`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return apperrors.InvalidInput("url", fmt.Sprintf("expected exactly one URL, got %d arguments", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, streams, f, args[0])
		},
	}
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.InvalidInput("flags", err.Error())
	})

	flags := cmd.Flags()
	flags.StringVarP(&f.method, "method", "X", "", "Request method (default GET, or POST when a body is given)")
	flags.StringArrayVarP(&f.headers, "header", "H", []string{}, "Request header as 'Name: value' (repeatable)")
	flags.StringVarP(&f.data, "data", "d", "", "Raw request body")
	flags.StringVar(&f.jsonData, "json", "", "JSON request body, sent with Content-Type: application/json")
	flags.StringVar(&f.dataFile, "data-file", "", "Stream the request body from a file, '-' for stdin")
	flags.StringVarP(&f.user, "user", "u", "", "Basic auth credentials as user:password")
	flags.DurationVarP(&f.timeout, "timeout", "t", 0, "Request timeout (default from config, 60s)")
	flags.BoolVarP(&f.details, "details", "i", false, "Include status and headers in the output")
	flags.StringVar(&f.selectPath, "select", "", "Print only the value at this path of a JSON response")
	flags.StringVarP(&f.output, "output", "o", "", "Output format: raw, json or yaml (default from config, raw)")
	flags.StringVar(&f.configFile, "config", "", "Config file (default ./gofetch.yml)")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	cmd.MarkFlagsMutuallyExclusive("data", "json", "data-file")

	return cmd
}

// Execute runs the command with the process streams and arguments. Failures
// are printed to stderr as an error document.
func Execute() error {
	streams := Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	cmd := NewRootCmd(streams)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		writeError(streams.Err, err)
		return err
	}
	return nil
}

func run(ctx context.Context, cmd *cobra.Command, streams Streams, f requestFlags, url string) error {
	cfg, err := loadConfig(f.configFile)
	if err != nil {
		return err
	}
	if f.output != "" {
		cfg.Output.Format = f.output
	}
	if f.noColor {
		cfg.Output.NoColor = true
	}
	if err := validateFormat(cfg.Output.Format); err != nil {
		return err
	}

	cfg.Logging.NoColor = cfg.Logging.NoColor || cfg.Output.NoColor || !isTerminal(streams.Err)
	log := logger.NewWithWriter(&cfg.Logging, streams.Err, cfg.Name)

	metrics, shutdown, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("observability shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	exec, err := fetch.New(cfg.Fetch, fetch.WithLogger(log), fetch.WithMetrics(metrics))
	if err != nil {
		return err
	}
	defer exec.Close()

	opts, closeBody, err := buildOptions(cmd, streams, f)
	if err != nil {
		return err
	}
	defer closeBody()

	env, err := exec.Do(ctx, url, opts)
	if err != nil {
		return err
	}

	sel, err := selectPath(env, f.selectPath)
	if err != nil {
		return err
	}
	p := &printer{
		out:     streams.Out,
		format:  cfg.Output.Format,
		details: f.details,
		colors:  newColorScheme(!cfg.Output.NoColor && isTerminal(streams.Out)),
	}
	return p.print(env, sel)
}

func validateFormat(format string) error {
	switch format {
	case FormatRaw, FormatJSON, FormatYAML:
		return nil
	default:
		return apperrors.InvalidInput("output", fmt.Sprintf("unknown format %q, expected raw, json or yaml", format))
	}
}

// buildOptions turns flags into request options. The returned func closes
// a body file opened for --data-file.
func buildOptions(cmd *cobra.Command, streams Streams, f requestFlags) (fetch.Options, func(), error) {
	noop := func() {}
	opts := fetch.Options{
		Method:  strings.ToUpper(f.method),
		Auth:    f.user,
		Timeout: f.timeout,
	}

	headers, err := parseHeaders(f.headers)
	if err != nil {
		return opts, noop, err
	}
	opts.Headers = headers

	closeBody := noop
	switch {
	case cmd.Flags().Changed("json"):
		var v any
		if err := json.Unmarshal([]byte(f.jsonData), &v); err != nil {
			return opts, noop, apperrors.InvalidInput("json", err.Error())
		}
		opts.Body = fetch.JSON(v)
	case cmd.Flags().Changed("data"):
		opts.Body = fetch.Text(f.data)
	case f.dataFile == "-":
		opts.Body = fetch.Stream(streams.In)
	case f.dataFile != "":
		file, err := os.Open(f.dataFile)
		if err != nil {
			return opts, noop, apperrors.InvalidInput("data-file", err.Error())
		}
		opts.Body = fetch.Stream(file)
		closeBody = func() { _ = file.Close() }
	}

	if opts.Method == "" && opts.Body.Kind() != fetch.BodyAbsent {
		opts.Method = fetch.MethodPost
	}
	return opts, closeBody, nil
}

// parseHeaders parses "Name: value" pairs. A later header with the same
// name replaces an earlier one.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, apperrors.InvalidInput("header", fmt.Sprintf("expected 'Name: value', got %q", h))
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

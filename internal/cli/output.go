package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	apperrors "github.com/kbukum/gofetch/errors"
	"github.com/kbukum/gofetch/fetch"
)

// ColorScheme holds the colors of the status line and headers.
type ColorScheme struct {
	StatusOK    *color.Color
	StatusWarn  *color.Color
	StatusError *color.Color
	HeaderKey   *color.Color
}

func newColorScheme(enabled bool) *ColorScheme {
	s := &ColorScheme{
		StatusOK:    color.New(color.FgGreen, color.Bold),
		StatusWarn:  color.New(color.FgYellow, color.Bold),
		StatusError: color.New(color.FgRed, color.Bold),
		HeaderKey:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{s.StatusOK, s.StatusWarn, s.StatusError, s.HeaderKey} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *ColorScheme) status(code int) *color.Color {
	switch {
	case code >= 500:
		return s.StatusError
	case code >= 400:
		return s.StatusWarn
	default:
		return s.StatusOK
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// detailsView is the envelope printed by -i with json or yaml output. Data
// holds the selected value when --select is used.
type detailsView struct {
	StatusCode    int               `json:"status_code" yaml:"status_code"`
	StatusMessage string            `json:"status_message" yaml:"status_message"`
	Headers       map[string]string `json:"headers" yaml:"headers"`
	Data          any               `json:"data" yaml:"data"`
}

// printer renders responses to an output stream.
type printer struct {
	out     io.Writer
	format  string
	details bool
	colors  *ColorScheme
}

// selection is the part of the response that gets printed.
type selection struct {
	raw   []byte
	value any
}

// selectPath narrows env to the value at a gjson path.
func selectPath(env *fetch.ResponseEnvelope, path string) (selection, error) {
	if path == "" {
		return selection{raw: env.RawData, value: env.Data}, nil
	}
	if !gjson.ValidBytes(env.RawData) {
		return selection{}, apperrors.InvalidInput("select", "response is not JSON")
	}
	res := gjson.GetBytes(env.RawData, path)
	if !res.Exists() {
		return selection{}, apperrors.InvalidInput("select", fmt.Sprintf("path not found: %s", path))
	}
	raw := []byte(res.Raw)
	if res.Type == gjson.String {
		raw = []byte(res.String())
	}
	return selection{raw: raw, value: res.Value()}, nil
}

func (p *printer) print(env *fetch.ResponseEnvelope, sel selection) error {
	switch p.format {
	case FormatJSON, FormatYAML:
		var v any = sel.value
		if p.details {
			v = detailsView{
				StatusCode:    env.StatusCode,
				StatusMessage: env.StatusMessage,
				Headers:       env.Headers,
				Data:          sel.value,
			}
		}
		return p.encode(v)
	default:
		if p.details {
			p.printHead(env)
		}
		if _, err := p.out.Write(sel.raw); err != nil {
			return err
		}
		if len(sel.raw) > 0 && !bytes.HasSuffix(sel.raw, []byte("\n")) && isTerminal(p.out) {
			_, err := fmt.Fprintln(p.out)
			return err
		}
		return nil
	}
}

func (p *printer) encode(v any) error {
	if p.format == FormatYAML {
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.out, "%s\n", data)
	return err
}

// printHead writes the status line and the sorted headers followed by a
// blank line.
func (p *printer) printHead(env *fetch.ResponseEnvelope) {
	p.colors.status(env.StatusCode).Fprintf(p.out, "HTTP %d %s\n", env.StatusCode, env.StatusMessage)
	keys := make([]string, 0, len(env.Headers))
	for k := range env.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.colors.HeaderKey.Fprint(p.out, k)
		fmt.Fprintf(p.out, ": %s\n", env.Headers[k])
	}
	fmt.Fprintln(p.out)
}

// writeError prints err as an error response document.
func writeError(w io.Writer, err error) {
	data, mErr := json.MarshalIndent(fetch.ToAppError(err).ToResponse(), "", "  ")
	if mErr != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintf(w, "%s\n", data)
}

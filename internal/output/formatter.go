// Package output renders requests, outcomes and errors for the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/wesleyorama2/parry/response"
)

// Formatter renders requests and classified outcomes in text format
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter. Color is disabled when noColor is
// set or stdout is not a terminal.
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor || !isTerminal(os.Stdout) {
		scheme = NoColorScheme()
	}
	return &Formatter{Verbose: verbose, scheme: scheme}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatRequest formats an outgoing request for display
func (f *Formatter) FormatRequest(method, url string, headers http.Header) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n", f.scheme.Method.Sprint(method), f.scheme.URL.Sprint(url)))

	if f.Verbose && len(headers) > 0 {
		buf.WriteString("  Headers:\n")
		keys := make([]string, 0, len(headers))
		for key := range headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), f.scheme.HeaderValue.Sprint(headers.Get(key))))
		}
	}

	return buf.String()
}

// FormatExchange formats a completed exchange for display
func (f *Formatter) FormatExchange(ex response.Exchange) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s", f.statusColor(ex.StatusCode).Sprintf("%d", ex.StatusCode)))
	if ex.Timing.Total > 0 {
		buf.WriteString(fmt.Sprintf(" (%v)", ex.Timing.Total))
	}
	buf.WriteString("\n")

	if f.Verbose && len(ex.Header) > 0 {
		buf.WriteString("  Headers:\n")
		keys := make([]string, 0, len(ex.Header))
		for key := range ex.Header {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), f.scheme.HeaderValue.Sprint(ex.Header.Get(key))))
		}
	}

	if ex.HasBody() {
		buf.WriteString(formatJSONString(string(ex.Body)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatError formats a terminal error for display
func (f *Formatter) FormatError(err error) string {
	return fmt.Sprintf("%s %v\n", f.scheme.Error.Sprint("✗"), err)
}

// FormatSuccess formats a success note for display
func (f *Formatter) FormatSuccess(msg string) string {
	return fmt.Sprintf("%s %s\n", f.scheme.Success.Sprint("✓"), msg)
}

func (f *Formatter) statusColor(code int) *color.Color {
	switch {
	case code >= 200 && code < 300:
		return f.scheme.StatusOK
	case code >= 300 && code < 400:
		return f.scheme.StatusWarn
	default:
		return f.scheme.StatusError
	}
}

// formatJSONString pretty-prints s when it is valid JSON, otherwise returns
// it unchanged.
func formatJSONString(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

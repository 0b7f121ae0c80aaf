package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wesleyorama2/reru/internal/stats"
)

// Formatter is responsible for formatting HTTP requests and responses in text format
type Formatter struct {
	Verbose bool
	NoColor bool
	colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	colors := DefaultColorScheme()
	if noColor {
		colors = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		colors:  colors,
	}
}

// FormatRequest formats an HTTP request for display
func (f *Formatter) FormatRequest(req RequestData) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n", f.colors.Method.Sprint(req.Method), f.colors.URL.Sprint(req.URL)))

	if f.Verbose || len(req.Headers) > 0 {
		f.writeHeaders(&buf, req.Headers)
	}

	if req.Body != "" {
		buf.WriteString(fmt.Sprintf("  Body (%s): ", req.BodyKind))
		buf.WriteString(formatJSONString(req.Body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats an HTTP response for display
func (f *Formatter) FormatResponse(resp ResponseData) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s %s (%.0fms)\n",
		resp.Version,
		f.colors.Status(resp.Status).Sprint(resp.StatusText),
		resp.Timing.Total))

	if f.Verbose {
		buf.WriteString(fmt.Sprintf("  URL: %s\n", resp.URL))
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %.1fms\n", resp.Timing.DNSLookup))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %.1fms\n", resp.Timing.TCPConnect))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %.1fms\n", resp.Timing.TLSHandshake))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %.1fms\n", resp.Timing.FirstByte))
		buf.WriteString(fmt.Sprintf("    Total:              %.1fms\n", resp.Timing.Total))
		f.writeHeaders(&buf, resp.Headers)
	}

	if resp.Extracted != nil {
		buf.WriteString(fmt.Sprintf("  %s %s\n", f.colors.Label.Sprint("Extracted:"), *resp.Extracted))
	} else if resp.Body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(resp.Body))
		buf.WriteString("\n")
	}

	if len(resp.SchemaErrors) > 0 {
		buf.WriteString(fmt.Sprintf("  %s Schema validation failed:\n", ErrorIcon(f.NoColor)))
		for _, msg := range resp.SchemaErrors {
			buf.WriteString(fmt.Sprintf("    - %s\n", msg))
		}
	}

	return buf.String()
}

// FormatSummary formats the latency statistics of repeated requests
func (f *Formatter) FormatSummary(s stats.Summary) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("%s %d requests: %s ok, %s failed, %s errors\n",
		f.colors.Label.Sprint("Σ SUMMARY:"),
		s.Count+s.Errors,
		f.colors.Success.Sprint(s.Successes),
		f.colors.Error.Sprint(s.Failures),
		f.colors.Error.Sprint(s.Errors)))

	if s.Count > 0 {
		buf.WriteString(fmt.Sprintf("  Latency: min %v, mean %v, max %v\n", s.Min, s.Mean, s.Max))
		buf.WriteString(fmt.Sprintf("  Percentiles: p50 %v, p90 %v, p95 %v, p99 %v\n", s.P50, s.P90, s.P95, s.P99))
	}

	return buf.String()
}

func (f *Formatter) writeHeaders(buf *strings.Builder, headers map[string][]string) {
	buf.WriteString("  Headers:\n")
	for _, key := range sortedHeaderKeys(headers) {
		for _, value := range headers[key] {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.colors.HeaderKey.Sprint(key), value))
		}
	}
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return prettyJSON.String()
}

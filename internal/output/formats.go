package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/reru/http"
	"github.com/wesleyorama2/reru/internal/stats"
)

// OutputFormat represents the format of the output
type OutputFormat string

const (
	// FormatText is the default human-readable format
	FormatText OutputFormat = "text"
	// FormatJSON prints one JSON document per request
	FormatJSON OutputFormat = "json"
	// FormatYAML prints one YAML document per request
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// FormatProvider renders requests, responses and latency summaries.
type FormatProvider interface {
	FormatRequest(req RequestData) string
	FormatResponse(resp ResponseData) string
	FormatSummary(summary stats.Summary) string
}

// RequestData is the printable view of a request before it is sent.
type RequestData struct {
	Method   string              `json:"method" yaml:"method"`
	URL      string              `json:"url" yaml:"url"`
	Headers  map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	BodyKind string              `json:"bodyKind" yaml:"bodyKind"`
	Body     string              `json:"body,omitempty" yaml:"body,omitempty"`
}

// TimingData holds the phase timings of a response in milliseconds.
type TimingData struct {
	DNSLookup    float64 `json:"dnsLookup" yaml:"dnsLookup"`
	TCPConnect   float64 `json:"tcpConnect" yaml:"tcpConnect"`
	TLSHandshake float64 `json:"tlsHandshake" yaml:"tlsHandshake"`
	FirstByte    float64 `json:"timeToFirstByte" yaml:"timeToFirstByte"`
	Total        float64 `json:"total" yaml:"total"`
}

// ResponseData is the printable view of a response whose body was read.
type ResponseData struct {
	Status       int                 `json:"status" yaml:"status"`
	StatusText   string              `json:"statusText" yaml:"statusText"`
	Version      string              `json:"version" yaml:"version"`
	URL          string              `json:"url" yaml:"url"`
	Headers      map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body         string              `json:"body,omitempty" yaml:"body,omitempty"`
	Timing       TimingData          `json:"timing" yaml:"timing"`
	Extracted    *string             `json:"extracted,omitempty" yaml:"extracted,omitempty"`
	SchemaErrors []string            `json:"schemaErrors,omitempty" yaml:"schemaErrors,omitempty"`
}

// NewRequestData captures a request builder's current state.
func NewRequestData(req *http.Request) RequestData {
	return RequestData{
		Method:   req.Method(),
		URL:      req.URL().Redacted(),
		Headers:  req.Headers(),
		BodyKind: req.Body().Kind().String(),
		Body:     string(req.Body().Encode()),
	}
}

// NewResponseData captures a response together with the body already read from it.
func NewResponseData(resp *http.Response, body []byte) ResponseData {
	timing := resp.Timing()
	return ResponseData{
		Status:     resp.Status(),
		StatusText: resp.StatusText(),
		Version:    resp.Version(),
		URL:        resp.URL().Redacted(),
		Headers:    resp.Headers(),
		Body:       string(body),
		Timing: TimingData{
			DNSLookup:    millis(timing.DNSLookupTime.Seconds()),
			TCPConnect:   millis(timing.TCPConnectTime.Seconds()),
			TLSHandshake: millis(timing.TLSHandshakeTime.Seconds()),
			FirstByte:    millis(timing.TimeToFirstByte.Seconds()),
			Total:        millis(timing.TotalTime.Seconds()),
		},
	}
}

func millis(seconds float64) float64 {
	return seconds * 1000
}

// summaryData is the serialized form of stats.Summary.
type summaryData struct {
	Count     int64   `json:"count" yaml:"count"`
	Successes int64   `json:"successes" yaml:"successes"`
	Failures  int64   `json:"failures" yaml:"failures"`
	Errors    int64   `json:"errors" yaml:"errors"`
	MinMs     float64 `json:"minMs" yaml:"minMs"`
	MeanMs    float64 `json:"meanMs" yaml:"meanMs"`
	P50Ms     float64 `json:"p50Ms" yaml:"p50Ms"`
	P90Ms     float64 `json:"p90Ms" yaml:"p90Ms"`
	P95Ms     float64 `json:"p95Ms" yaml:"p95Ms"`
	P99Ms     float64 `json:"p99Ms" yaml:"p99Ms"`
	MaxMs     float64 `json:"maxMs" yaml:"maxMs"`
}

func newSummaryData(s stats.Summary) summaryData {
	return summaryData{
		Count:     s.Count,
		Successes: s.Successes,
		Failures:  s.Failures,
		Errors:    s.Errors,
		MinMs:     millis(s.Min.Seconds()),
		MeanMs:    millis(s.Mean.Seconds()),
		P50Ms:     millis(s.P50.Seconds()),
		P90Ms:     millis(s.P90.Seconds()),
		P95Ms:     millis(s.P95.Seconds()),
		P99Ms:     millis(s.P99.Seconds()),
		MaxMs:     millis(s.Max.Seconds()),
	}
}

// JSONFormatter formats output as JSON documents
type JSONFormatter struct {
	Verbose bool
}

// FormatRequest prints the request only in verbose mode.
func (f *JSONFormatter) FormatRequest(req RequestData) string {
	if !f.Verbose {
		return ""
	}
	return marshalJSON(map[string]interface{}{"request": req})
}

// FormatResponse formats a response as JSON. A JSON body is embedded as a value.
func (f *JSONFormatter) FormatResponse(resp ResponseData) string {
	doc := map[string]interface{}{"response": resp}
	if json.Valid([]byte(resp.Body)) {
		body := resp.Body
		resp.Body = ""
		doc = map[string]interface{}{"response": resp, "json": json.RawMessage(body)}
	}
	return marshalJSON(doc)
}

// FormatSummary formats latency statistics as JSON.
func (f *JSONFormatter) FormatSummary(summary stats.Summary) string {
	return marshalJSON(map[string]interface{}{"summary": newSummaryData(summary)})
}

func marshalJSON(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`+"\n", err.Error())
	}
	return string(out) + "\n"
}

// YAMLFormatter formats output as YAML documents
type YAMLFormatter struct {
	Verbose bool
}

// FormatRequest prints the request only in verbose mode.
func (f *YAMLFormatter) FormatRequest(req RequestData) string {
	if !f.Verbose {
		return ""
	}
	return marshalYAML(map[string]interface{}{"request": req})
}

// FormatResponse formats a response as a YAML document.
func (f *YAMLFormatter) FormatResponse(resp ResponseData) string {
	return marshalYAML(map[string]interface{}{"response": resp})
}

// FormatSummary formats latency statistics as YAML.
func (f *YAMLFormatter) FormatSummary(summary stats.Summary) string {
	return marshalYAML(map[string]interface{}{"summary": newSummaryData(summary)})
}

func marshalYAML(v interface{}) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %q\n", err.Error())
	}
	return "---\n" + string(out)
}

// GetFormatter returns the formatter for format.
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Verbose: verbose}
	case FormatYAML:
		return &YAMLFormatter{Verbose: verbose}
	default:
		return NewFormatter(verbose, noColor)
	}
}

func sortedHeaderKeys(h map[string][]string) []string {
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

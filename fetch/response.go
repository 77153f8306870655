package fetch

import (
	"net/http"
	"strconv"
	"strings"
)

// ResponseEnvelope carries response metadata alongside the decoded payload.
type ResponseEnvelope struct {
	StatusCode int `json:"status_code" yaml:"status_code"`
	// StatusMessage is the reason phrase of the status line, e.g. "OK".
	StatusMessage string `json:"status_message" yaml:"status_message"`
	// Headers uses canonical header names; repeated headers are joined
	// with ", ".
	Headers map[string]string `json:"headers" yaml:"headers"`
	// Data is the decoded payload: a string for text responses, the parsed
	// JSON value, or RawData when the body is not JSON.
	Data any `json:"data" yaml:"data"`
	// RawData holds the exact bytes received.
	RawData []byte `json:"raw_data" yaml:"raw_data"`
}

// IsSuccess returns true if the status code is 2xx.
func (r *ResponseEnvelope) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the Content-Type response header.
func (r *ResponseEnvelope) ContentType() string {
	return r.Headers[headerContentType]
}

func newEnvelope(resp *http.Response, raw []byte) *ResponseEnvelope {
	headers := flattenHeaders(resp.Header)
	return &ResponseEnvelope{
		StatusCode:    resp.StatusCode,
		StatusMessage: statusMessage(resp),
		Headers:       headers,
		Data:          decodePayload(ClassifyContentType(resp.Header.Get(headerContentType)), raw),
		RawData:       raw,
	}
}

// statusMessage extracts the reason phrase from resp.Status ("200 OK").
func statusMessage(resp *http.Response) string {
	if resp.Status == "" {
		return http.StatusText(resp.StatusCode)
	}
	if msg, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)); ok {
		return strings.TrimSpace(msg)
	}
	return resp.Status
}

// flattenHeaders joins multi-value headers into single values.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = strings.Join(v, ", ")
		}
	}
	return result
}

package fetch

import (
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/encoding/unicode"
)

// ContentClass is the decoding strategy chosen from a Content-Type value.
type ContentClass int

const (
	// ContentJSONOrBinary is parsed as JSON, falling back to raw bytes.
	ContentJSONOrBinary ContentClass = iota
	// ContentText is decoded as UTF-8 text.
	ContentText
)

// String returns the class name.
func (c ContentClass) String() string {
	if c == ContentText {
		return "text"
	}
	return "json_or_binary"
}

// ClassifyContentType returns ContentText when the header value starts with
// "text" (case-sensitive) and ContentJSONOrBinary otherwise.
func ClassifyContentType(value string) ContentClass {
	if strings.HasPrefix(value, "text") {
		return ContentText
	}
	return ContentJSONOrBinary
}

// decodePayload decodes a fully buffered response body. Text is returned as
// a string with ill-formed sequences replaced by U+FFFD. Anything else is
// parsed as JSON; when that fails the raw bytes are returned unchanged.
func decodePayload(class ContentClass, raw []byte) any {
	if class == ContentText {
		return decodeText(raw)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	return v
}

func decodeText(raw []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

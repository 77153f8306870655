package fetch

import (
	"bytes"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// BodyKind discriminates request bodies.
type BodyKind int

const (
	// BodyAbsent sends no body.
	BodyAbsent BodyKind = iota
	// BodyRaw sends bytes or text as is.
	BodyRaw
	// BodyStream copies a reader into the request without buffering.
	BodyStream
	// BodyStructured sends a value encoded as JSON.
	BodyStructured
)

// String returns the kind name.
func (k BodyKind) String() string {
	switch k {
	case BodyRaw:
		return "raw"
	case BodyStream:
		return "stream"
	case BodyStructured:
		return "structured"
	default:
		return "absent"
	}
}

// Body is a request body. The zero value is an absent body.
type Body struct {
	kind   BodyKind
	raw    []byte
	stream io.Reader
	value  any
}

// Bytes returns a raw body sending b unchanged.
func Bytes(b []byte) Body {
	return Body{kind: BodyRaw, raw: b}
}

// Text returns a raw body sending s unchanged.
func Text(s string) Body {
	return Body{kind: BodyRaw, raw: []byte(s)}
}

// Stream returns a body copied from r while the request is sent. The
// content length is unknown, so the request is chunked. If r is an
// io.Closer it is closed by the transport.
func Stream(r io.Reader) Body {
	return Body{kind: BodyStream, stream: r}
}

// JSON returns a body sending v encoded as JSON with
// Content-Type: application/json. A nil v is an absent body.
func JSON(v any) Body {
	return Body{kind: BodyStructured, value: v}
}

// Kind returns the body kind.
func (b Body) Kind() BodyKind {
	return b.kind
}

const headerContentType = "Content-Type"

// prepareBody turns b into a request body reader and returns a copy of
// headers with the content type of structured bodies applied. A nil reader
// means no body.
func prepareBody(b Body, headers map[string]string) (io.Reader, map[string]string, error) {
	out := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		out[k] = v
	}

	switch b.kind {
	case BodyStream:
		if b.stream == nil {
			return nil, out, nil
		}
		return b.stream, out, nil
	case BodyStructured:
		if b.value == nil {
			return nil, out, nil
		}
		data, err := json.Marshal(b.value)
		if err != nil {
			return nil, nil, newSerializationError(err)
		}
		for k := range out {
			if strings.EqualFold(k, headerContentType) {
				delete(out, k)
			}
		}
		out[headerContentType] = "application/json"
		return bytes.NewReader(data), out, nil
	case BodyRaw:
		if len(b.raw) == 0 {
			return nil, out, nil
		}
		return bytes.NewReader(b.raw), out, nil
	default:
		return nil, out, nil
	}
}

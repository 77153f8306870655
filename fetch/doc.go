// Package fetch performs single HTTP requests and decodes their responses.
//
// A request goes through three stages. The body is prepared first:
// structured values are encoded as JSON and get Content-Type:
// application/json, raw bytes and streams are sent unchanged. The request
// is then dispatched on the plain transport for http:// URLs and on the
// TLS transport for everything else, with a timer enforcing the timeout.
// Finally the full response body is buffered and decoded: text/* content
// becomes a string, anything else is parsed as JSON and falls back to the
// raw bytes.
//
//	exec, err := fetch.New(fetch.Config{Timeout: 5 * time.Second})
//	if err != nil {
//		return err
//	}
//	data, err := exec.Fetch(ctx, "http://localhost:8080/patch/json", fetch.Options{
//		Method: fetch.MethodPatch,
//		Body:   fetch.JSON(map[string]string{"a": "A"}),
//	})
//
// Redirects are not followed, proxies and cookies are not used, and
// nothing is retried. Failures are *Error values of kind serialization,
// transport or timeout.
package fetch

package fetch

import (
	"crypto/tls"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/kbukum/gofetch/security"
)

const (
	schemePlain  = "http://"
	schemeSecure = "https://"
)

// isPlain reports whether url selects the plain transport. The check is a
// case-sensitive prefix match; everything else goes over TLS.
func isPlain(url string) bool {
	return strings.HasPrefix(url, schemePlain)
}

// targetURL gives bare hosts ("example.com/path") the https scheme.
func targetURL(url string) string {
	if strings.Contains(url, "://") {
		return url
	}
	return schemeSecure + url
}

// newPlainTransport returns an HTTP/1.1 transport without proxying.
func newPlainTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = nil
	t.ForceAttemptHTTP2 = false
	t.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)
	return t
}

// newSecureTransport returns an HTTP/1.1 transport using the TLS settings.
func newSecureTransport(cfg *security.TLSConfig) (*http.Transport, error) {
	tlsCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}
	t := newPlainTransport()
	t.TLSClientConfig = tlsCfg
	return t, nil
}

// newClient wraps rt in a client that returns redirects as is and keeps
// no cookies. Timeouts are enforced per request by the executor.
func newClient(rt http.RoundTripper) *http.Client {
	return &http.Client{
		Transport: rt,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// applyHeaders copies headers onto req. A Host header sets req.Host, and
// User-Agent defaults to ua.
func applyHeaders(req *http.Request, headers map[string]string, ua string) {
	for k, v := range headers {
		if strings.EqualFold(k, "Host") {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" && ua != "" {
		req.Header.Set("User-Agent", ua)
	}
}

// applyAuth sends auth as HTTP Basic credentials without reinterpreting it.
func applyAuth(req *http.Request, auth string) {
	if auth == "" {
		return
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth)))
}

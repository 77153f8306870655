package fetchtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/kbukum/gofetch/security/tlstest"
)

// Binary is the payload served by /binary.
var Binary = []byte{1, 2, 3, 4, 5}

// Text is the payload served by /text.
const Text = "héllo wörld\n"

// Server is a running test server.
type Server struct {
	*httptest.Server
	closing chan struct{}
	once    sync.Once
}

// NewServer starts a plain http server with the test routes. It is closed
// when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{closing: make(chan struct{})}
	s.Server = httptest.NewServer(NewHandler(s.closing))
	t.Cleanup(s.Close)
	return s
}

// NewTLSServer starts an https server with the test routes presenting the
// certificate from certs.
func NewTLSServer(t testing.TB, certs *tlstest.TLSCerts) *Server {
	t.Helper()
	s := &Server{closing: make(chan struct{})}
	s.Server = tlstest.NewServer(t, certs, NewHandler(s.closing))
	// Runs before the server close registered by tlstest.
	t.Cleanup(s.release)
	return s
}

// Close releases hanging handlers and shuts the server down.
func (s *Server) Close() {
	s.release()
	s.Server.Close()
}

func (s *Server) release() {
	s.once.Do(func() { close(s.closing) })
}

// NewHandler returns the gin engine serving the test routes. Handlers of
// /never return once closing is closed or the client goes away.
//
//	GET    /json/:param       {"param": ..., "query": {...}}
//	GET    /binary            5 bytes as image/jpeg
//	PATCH  /patch/json        {"body": ..., "bodyKeys": [...]} in document order
//	POST   /post/binary       {"data": "<request body as text>"}
//	GET    /never             no response
//	GET    /text              Text as text/plain
//	GET    /text/invalid      ill-formed UTF-8 as text/plain
//	GET    /malformed         "{not json" as application/json
//	GET    /empty             204 without body
//	GET    /status/:code      {"status": code} with that status
//	GET    /redirect          302 to /json/redirected
//	GET    /slow?delay=50ms   {"slow": true} after the delay
//	GET    /multi             two X-Multi headers
//	ANY    /echo              method, headers, body and framing of the request
func NewHandler(closing <-chan struct{}) http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery(), func(c *gin.Context) {
		c.Header("Connection", "close")
		c.Next()
	})

	r.GET("/json/:param", func(c *gin.Context) {
		query := make(map[string]string)
		for k, v := range c.Request.URL.Query() {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}
		c.JSON(http.StatusOK, gin.H{"param": c.Param("param"), "query": query})
	})

	r.GET("/binary", func(c *gin.Context) {
		c.Data(http.StatusOK, "image/jpeg", Binary)
	})

	r.PATCH("/patch/json", func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil || !gjson.ValidBytes(raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		keys := []string{}
		gjson.ParseBytes(raw).ForEach(func(key, _ gjson.Result) bool {
			keys = append(keys, key.String())
			return true
		})
		c.JSON(http.StatusOK, gin.H{"body": json.RawMessage(raw), "bodyKeys": keys})
	})

	r.POST("/post/binary", func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			_ = c.Error(err)
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": string(data)})
	})

	r.GET("/never", func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
		case <-closing:
		}
	})

	r.GET("/text", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(Text))
	})

	r.GET("/text/invalid", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain", []byte{'a', 0xff, 'b'})
	})

	r.GET("/malformed", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte("{not json"))
	})

	r.GET("/empty", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.GET("/status/:code", func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("code"))
		if err != nil || code < 200 || code > 599 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		c.JSON(code, gin.H{"status": code})
	})

	r.GET("/redirect", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/json/redirected")
	})

	r.GET("/slow", func(c *gin.Context) {
		delay, err := time.ParseDuration(c.DefaultQuery("delay", "50ms"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		select {
		case <-time.After(delay):
			c.JSON(http.StatusOK, gin.H{"slow": true})
		case <-c.Request.Context().Done():
		case <-closing:
		}
	})

	r.GET("/multi", func(c *gin.Context) {
		c.Writer.Header().Add("X-Multi", "one")
		c.Writer.Header().Add("X-Multi", "two")
		c.JSON(http.StatusOK, gin.H{"multi": true})
	})

	r.Any("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		headers := make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			headers[strings.ToLower(k)] = strings.Join(v, ", ")
		}
		c.JSON(http.StatusOK, gin.H{
			"method":            c.Request.Method,
			"host":              c.Request.Host,
			"headers":           headers,
			"body":              string(body),
			"content_length":    c.Request.ContentLength,
			"transfer_encoding": c.Request.TransferEncoding,
		})
	})

	return r
}

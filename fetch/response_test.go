package fetch

import (
	"net/http"
	"testing"
)

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
		want string
	}{
		{"ok", &http.Response{StatusCode: 200, Status: "200 OK"}, "OK"},
		{"custom phrase", &http.Response{StatusCode: 418, Status: "418 Short And Stout"}, "Short And Stout"},
		{"no phrase", &http.Response{StatusCode: 299, Status: "299"}, ""},
		{"empty status", &http.Response{StatusCode: 404}, "Not Found"},
		{"mismatched", &http.Response{StatusCode: 200, Status: "OK"}, "OK"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusMessage(tc.resp); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFlattenHeaders(t *testing.T) {
	h := http.Header{
		"Content-Type": {"application/json"},
		"Set-Cookie":   {"a=1", "b=2"},
		"X-Empty":      {},
	}
	got := flattenHeaders(h)

	if got["Content-Type"] != "application/json" {
		t.Errorf("expected application/json, got %q", got["Content-Type"])
	}
	if got["Set-Cookie"] != "a=1, b=2" {
		t.Errorf("expected joined values, got %q", got["Set-Cookie"])
	}
	if _, ok := got["X-Empty"]; ok {
		t.Error("expected headers without values to be dropped")
	}
}

func TestResponseEnvelope_Helpers(t *testing.T) {
	env := &ResponseEnvelope{StatusCode: 201, Headers: map[string]string{"Content-Type": "text/plain"}}
	if !env.IsSuccess() {
		t.Error("expected 201 to be success")
	}
	if env.ContentType() != "text/plain" {
		t.Errorf("expected text/plain, got %q", env.ContentType())
	}

	env.StatusCode = 404
	if env.IsSuccess() {
		t.Error("expected 404 not to be success")
	}
}

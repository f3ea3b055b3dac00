// Package responsetest decodes envelope responses in handler tests.
package responsetest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// Body is a decoded envelope with the data left raw.
type Body struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// Decode reads and decodes the envelope of resp.
func Decode(t testing.TB, resp *http.Response) Body {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var body Body
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body
}

// Data decodes the data of the envelope of resp into dst.
func Data(t testing.TB, resp *http.Response, dst any) Body {
	t.Helper()

	body := Decode(t, resp)
	require.NoError(t, json.Unmarshal(body.Data, dst), string(body.Data))
	return body
}

// JSON builds a request with body encoded as JSON.
func JSON(t testing.TB, method, target string, body any) *http.Request {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Raw builds a JSON request with a literal body, e.g. to send malformed JSON.
func Raw(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

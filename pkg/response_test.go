package pkg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestHttpResponseWriter struct {
	HeaderMap  http.Header
	Body       []byte
	StatusCode int
}

func (w *TestHttpResponseWriter) Header() http.Header {
	return w.HeaderMap
}

func (w *TestHttpResponseWriter) Write(bytes []byte) (int, error) {
	w.Body = bytes
	return len(bytes), nil
}

func (w *TestHttpResponseWriter) WriteHeader(statusCode int) {
	w.StatusCode = statusCode
}

func newTestWriter() *TestHttpResponseWriter {
	return &TestHttpResponseWriter{
		HeaderMap: make(http.Header),
	}
}

func TestWriteResponseBytes(t *testing.T) {
	w := newTestWriter()

	testJson := `{"key":"val"}`
	WriteResponseBytes(w, ContentType.JSON, []byte(testJson), http.StatusCreated)

	assert.Equal(t, http.StatusCreated, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, testJson, string(w.Body))
}

func TestWriteResponse(t *testing.T) {
	w := newTestWriter()

	WriteResponse(w, "", "conflict", http.StatusConflict)

	assert.Equal(t, http.StatusConflict, w.StatusCode)
	assert.Empty(t, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, "conflict", string(w.Body))
}

func TestWriteTextResponseOK(t *testing.T) {
	w := newTestWriter()

	WriteTextResponseOK(w, "logged out")

	assert.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, ContentType.Text, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, "logged out", string(w.Body))
}

func TestWriteJSON(t *testing.T) {
	w := newTestWriter()

	WriteJSON(w, map[string]int{"deletedId": 3}, http.StatusOK)
	require.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.JSONEq(t, `{"deletedId":3}`, string(w.Body))

	WriteJSONResponseOK(w, `[]`)
	assert.Equal(t, `[]`, string(w.Body))
}

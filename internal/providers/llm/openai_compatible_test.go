package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/mnemo/internal/core"
)

func newTestServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
}

func TestGenerate_ReturnsCompletion(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": "hello there"}},
		},
	})
	defer srv.Close()

	p := NewCustomOpenAI(srv.URL, "", "test-model")
	got, err := p.Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello there", got)
}

func TestGenerate_ServerErrorIsTransient(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, nil)
	defer srv.Close()

	p := NewCustomOpenAI(srv.URL, "", "test-model")
	_, err := p.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, core.IsTransient(err))
}

func TestGenerate_AuthErrorIsFatal(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, nil)
	defer srv.Close()

	p := NewCustomOpenAI(srv.URL, "bad-key", "test-model")
	_, err := p.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, core.IsTransient(err))
}

func TestGenerate_EmptyChoicesIsTransient(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, map[string]any{"choices": []any{}})
	defer srv.Close()

	p := NewCustomOpenAI(srv.URL, "", "test-model")
	_, err := p.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, core.IsTransient(err))
}

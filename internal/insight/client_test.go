package insight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func geminiStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, ":generateContent")
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateReturnsFirstCandidate(t *testing.T) {
	srv := geminiStub(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  Sell more fries.  "}]}}]}`)
	client := NewGeminiClient(srv.URL, "gemini-2.0-flash", "test-key", time.Second)

	text, err := client.Generate(context.Background(), "what should we do?")
	require.NoError(t, err)
	require.Equal(t, "Sell more fries.", text)
}

func TestGenerateFailuresCollapseToUnavailable(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"upstream error":   {http.StatusInternalServerError, `{}`},
		"rate limited":     {http.StatusTooManyRequests, `{}`},
		"malformed json":   {http.StatusOK, `{"candidates":`},
		"no candidates":    {http.StatusOK, `{"candidates":[]}`},
		"empty parts":      {http.StatusOK, `{"candidates":[{"content":{"parts":[]}}]}`},
		"whitespace reply": {http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := geminiStub(t, tc.status, tc.body)
			client := NewGeminiClient(srv.URL, "gemini-2.0-flash", "test-key", time.Second)

			_, err := client.Generate(context.Background(), "q")
			require.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	client := NewGeminiClient("http://unused", "gemini-2.0-flash", "", time.Second)

	_, err := client.Generate(context.Background(), "q")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateUnreachableHost(t *testing.T) {
	client := NewGeminiClient("http://127.0.0.1:1", "gemini-2.0-flash", "test-key", 100*time.Millisecond)

	_, err := client.Generate(context.Background(), "q")
	require.ErrorIs(t, err, ErrUnavailable)
}

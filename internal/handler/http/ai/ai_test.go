package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain/entity"
	aihttp "newsroom/internal/handler/http/ai"
	"newsroom/internal/handler/http/auth"
	aiUC "newsroom/internal/usecase/ai"
)

type stubCompleter struct {
	out   string
	err   error
	calls int
}

func (s *stubCompleter) Complete(context.Context, aiUC.CompletionRequest) (string, error) {
	s.calls++
	return s.out, s.err
}

func (s *stubCompleter) Name() string { return "stub" }

func newMux(c aiUC.Completer) *http.ServeMux {
	mux := http.NewServeMux()
	aihttp.Register(mux, aiUC.NewService(c, nil))
	return mux
}

func post(mux http.Handler, signedIn bool, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if signedIn {
		req = req.WithContext(auth.WithUser(req.Context(), &entity.User{ID: "u1"}))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

var longText = strings.Repeat("Go makes concurrency approachable. ", 3)

func TestGenerateTitles(t *testing.T) {
	c := &stubCompleter{out: "One\nTwo\nThree\nFour"}
	mux := newMux(c)

	rec := post(mux, true, "/api/ai/generate-titles", `{"content":"`+longText+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"titles":["One","Two","Three"]}`, rec.Body.String())

	rec = post(mux, true, "/api/ai/generate-titles", `{"content":"too short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Content must be at least 50 characters")
	assert.Equal(t, 1, c.calls, "short input must not reach the provider")

	rec = post(mux, false, "/api/ai/generate-titles", `{"content":"`+longText+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateTitles_ProviderFailure(t *testing.T) {
	rec := post(newMux(&stubCompleter{err: errors.New("boom")}), true, "/api/ai/generate-titles", `{"content":"`+longText+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"titles":[]}`, rec.Body.String())
}

func TestImproveText(t *testing.T) {
	rec := post(newMux(&stubCompleter{out: "Polished."}), true, "/api/ai/improve-text", `{"text":"`+longText+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"improvedText":"Polished."}`, rec.Body.String())

	rec = post(newMux(&stubCompleter{err: errors.New("boom")}), true, "/api/ai/improve-text", `{"text":"`+longText+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, longText, resp["improvedText"])

	rec = post(newMux(&stubCompleter{}), true, "/api/ai/improve-text", `{"text":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Text must be at least 50 characters")
}

func TestGenerate(t *testing.T) {
	t.Run("provider output", func(t *testing.T) {
		rec := post(newMux(&stubCompleter{out: "A Fine Title"}), true, "/api/ai/generate", `{"prompt":"gardening","type":"title"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"content":"A Fine Title"}`, rec.Body.String())
	})

	t.Run("fallback", func(t *testing.T) {
		rec := post(newMux(&stubCompleter{err: errors.New("quota")}), true, "/api/ai/generate", `{"prompt":"gardening","type":"title"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Content    string `json:"content"`
			IsFallback bool   `json:"isFallback"`
			Message    string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.IsFallback)
		assert.Equal(t, "Newsletter: gardening", resp.Content)
		assert.Equal(t, aiUC.FallbackMessage, resp.Message)
	})

	t.Run("invalid type", func(t *testing.T) {
		rec := post(newMux(&stubCompleter{}), true, "/api/ai/generate", `{"prompt":"x","type":"poem"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid type")
	})

	t.Run("missing prompt", func(t *testing.T) {
		rec := post(newMux(&stubCompleter{}), true, "/api/ai/generate", `{"type":"title"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

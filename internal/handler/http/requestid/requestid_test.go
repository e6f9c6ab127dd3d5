package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "test-id-123", FromContext(WithRequestID(context.Background(), "test-id-123")))
	assert.Equal(t, "", FromContext(context.Background()))
	assert.Equal(t, "", FromContext(context.WithValue(context.Background(), RequestIDKey, 12345)))
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"3f0c6a9e-1b2d-4c5e-8f90-123456789abc", true},
		{"trace:abc.def_1", true},
		{"", false},
		{strings.Repeat("a", 129), false},
		{"has space", false},
		{"inject\nline", false},
		{"<script>", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.id), "Valid(%q)", tt.id)
	}
}

func run(header string) (*httptest.ResponseRecorder, string) {
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, seen
}

func TestMiddleware_ReusesValidHeader(t *testing.T) {
	rr, seen := run("client-req-1")
	assert.Equal(t, "client-req-1", seen)
	assert.Equal(t, "client-req-1", rr.Header().Get(RequestIDHeader))
}

func TestMiddleware_GeneratesWhenMissingOrInvalid(t *testing.T) {
	for _, header := range []string{"", "bad id with spaces"} {
		rr, seen := run(header)
		_, err := uuid.Parse(seen)
		require.NoError(t, err, "generated id must be a uuid, got %q", seen)
		assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	_, a := run("")
	_, b := run("")
	assert.NotEqual(t, a, b)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/pkg/jwt"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEditorRouter() *gin.Engine {
	r := gin.New()
	r.GET("/profiles/:handle", Auth(), OwnerOnly("handle"), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return r
}

func TestAuthOwnerOnly(t *testing.T) {
	jwt.SetSecret("middleware-test")
	tok, err := jwt.Sign("alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"owner", "/profiles/alice", "Bearer " + tok, http.StatusOK},
		{"owner via query", "/profiles/alice?token=" + tok, "", http.StatusOK},
		{"other profile", "/profiles/bob", "Bearer " + tok, http.StatusForbidden},
		{"no token", "/profiles/alice", "", http.StatusUnauthorized},
		{"garbage token", "/profiles/alice", "Bearer nope", http.StatusUnauthorized},
	}

	r := newEditorRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "alice", w.Body.String())
			}
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("  Bearer abc "))
	assert.Equal(t, "abc", NormalizeToken("bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Empty(t, NormalizeToken("  "))
}

func TestRequestIDAndLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(requestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(requestIDHeader))
}

func TestResolveIdempotenceKey(t *testing.T) {
	key := func(body, header string) string {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(body))
		if header != "" {
			c.Request.Header.Set(idempotenceHeader, header)
		}
		return resolveIdempotenceKey(c)
	}

	assert.Equal(t, "explicit", key(`{"title":"a"}`, " explicit "))
	assert.Empty(t, key(`{"title":"a"}`, ""))
	assert.Empty(t, key("", ""))
}

func TestIdempotenceIgnoresRepeatsWithoutKey(t *testing.T) {
	// Without a key the store is never consulted, so a nil client is safe.
	r := gin.New()
	applied := 0
	r.POST("/appearance/theme", Idempotence(nil, "t"), func(c *gin.Context) {
		applied++
		c.Status(http.StatusOK)
	})

	for _, body := range []string{`{"themeId":"a"}`, `{"themeId":"b"}`, `{"themeId":"a"}`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/appearance/theme", strings.NewReader(body)))
		assert.Equal(t, http.StatusOK, w.Code, body)
	}
	assert.Equal(t, 3, applied)
}

// fakeCounter shares one count across windows so second boundaries do not
// reset it mid-test.
type fakeCounter struct {
	n int64
}

func (f *fakeCounter) Incr(context.Context, string) *redis.IntCmd {
	f.n++
	return redis.NewIntResult(f.n, nil)
}

func (f *fakeCounter) PExpire(context.Context, string, time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func TestRateLimitCountsEveryCaller(t *testing.T) {
	jwt.SetSecret("test-secret")
	token, err := jwt.Sign("alice", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/pages/:handle", RateLimit(&fakeCounter{}, "t", 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var last *httptest.ResponseRecorder
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/pages/alice", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}
	// A bearer token buys no exemption.
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "1", last.Header().Get("Retry-After"))
}

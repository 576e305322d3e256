package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/middleware"
	"github.com/mx-space/linkpage/internal/models"
	"github.com/mx-space/linkpage/internal/pkg/jwt"
	"github.com/mx-space/linkpage/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newTestServer(t *testing.T, accounts PlanSource) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.SetSecret("test-secret")
	token, err := jwt.Sign("alice", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1")
	editor := api.Group("/profiles/:handle", middleware.Auth(), middleware.OwnerOnly("handle"))
	NewHandler(NewService(store.NewMemoryStore(), accounts, "linkpage", nil)).RegisterRoutes(api, editor)
	return &testServer{t: t, engine: r, token: token}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestEditorRequiresOwner(t *testing.T) {
	srv := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/profiles/alice", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodGet, "/api/v1/profiles/bob", "").Code)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/api/v1/profiles/alice", "").Code)
}

func TestLinkLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(http.MethodPost, "/api/v1/profiles/alice/links", `{"title":"Blog","url":"https://blog.example"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var first models.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.NotEmpty(t, first.ID)
	assert.True(t, first.Active)
	assert.Equal(t, models.LinkStandard, first.Type)

	w = srv.do(http.MethodPost, "/api/v1/profiles/alice/links", `{"title":"Tee","type":"commerce","commerce":{"price":25,"currency":"USD","provider":"shopify","buttonText":"Buy"}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var second models.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	assert.Equal(t, http.StatusBadRequest,
		srv.do(http.MethodPost, "/api/v1/profiles/alice/links", `{"title":"x","type":"banner"}`).Code)

	w = srv.do(http.MethodPut, "/api/v1/profiles/alice/links/order", `{"ids":["`+second.ID+`","`+first.ID+`"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data"`)

	assert.Equal(t, http.StatusUnprocessableEntity,
		srv.do(http.MethodPut, "/api/v1/profiles/alice/links/order", `{"ids":["`+first.ID+`"]}`).Code)

	assert.Equal(t, http.StatusOK,
		srv.do(http.MethodPatch, "/api/v1/profiles/alice/links/"+first.ID, `{"featured":true}`).Code)
	assert.Equal(t, http.StatusNotFound,
		srv.do(http.MethodPatch, "/api/v1/profiles/alice/links/nope", `{"featured":true}`).Code)

	w = httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/pages/alice", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Links []struct {
			Title    string `json:"title"`
			Commerce *struct {
				PriceLabel string `json:"priceLabel"`
			} `json:"commerce"`
		} `json:"links"`
		ShowBranding bool `json:"showBranding"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Links, 2)
	assert.Equal(t, "Tee", page.Links[0].Title)
	require.NotNil(t, page.Links[0].Commerce)
	assert.Equal(t, "$25.00", page.Links[0].Commerce.PriceLabel)
	assert.True(t, page.ShowBranding)

	assert.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, "/api/v1/profiles/alice/links/"+first.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodDelete, "/api/v1/profiles/alice/links/"+first.ID, "").Code)
}

func TestAppearanceErrorsOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"patch ok", http.MethodPatch, "/appearance", `{"buttonShape":"pill"}`, http.StatusOK},
		{"unknown enum", http.MethodPatch, "/appearance", `{"bgPattern":"plaid"}`, http.StatusUnprocessableEntity},
		{"malformed body", http.MethodPatch, "/appearance", `{"buttonShape":`, http.StatusBadRequest},
		{"unknown theme", http.MethodPost, "/appearance/theme", `{"themeId":"nope"}`, http.StatusNotFound},
		{"missing theme id", http.MethodPost, "/appearance/theme", `{}`, http.StatusBadRequest},
		{"pro theme on free plan", http.MethodPost, "/appearance/theme", `{"themeId":"editorial"}`, http.StatusPaymentRequired},
		{"free theme", http.MethodPost, "/appearance/theme", `{"themeId":"paper"}`, http.StatusOK},
		{"colors", http.MethodPut, "/appearance/colors", `{"accent":"#ff0000","btnFill":"#000000","btnText":"#ffffff","btnBorder":"#000000","profileText":"#111111"}`, http.StatusOK},
		{"gradient", http.MethodPut, "/appearance/gradient", `{"angle":90,"stops":[{"color":"#000","offsetPercent":0},{"color":"#fff","offsetPercent":100}]}`, http.StatusOK},
		{"reset", http.MethodPost, "/appearance/reset", ``, http.StatusOK},
		{"socials", http.MethodPut, "/socials", `{"github":"alice","position":"bottom"}`, http.StatusOK},
		{"details", http.MethodPatch, "", `{"displayName":"Alice"}`, http.StatusOK},
		{"preview bad time", http.MethodGet, "/preview?at=yesterday", ``, http.StatusBadRequest},
		{"preview", http.MethodGet, "/preview?at=2024-05-01T10:00:00Z", ``, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := srv.do(tc.method, "/api/v1/profiles/alice"+tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			if tc.status >= 400 {
				var env map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
				assert.EqualValues(t, 0, env["ok"])
				assert.EqualValues(t, tc.status, env["code"])
			}
		})
	}
}

func TestPublicPageNotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/pages/nobody", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

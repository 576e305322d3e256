package account

import (
	"context"
	"errors"
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

type failingStore struct{ store.Store }

func (failingStore) Save(context.Context, string, []byte) error { return errors.New("disk full") }

func TestGetDefaultsToFree(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st, "linkpage", nil)

	acc, err := svc.Get(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, acc.Plan)
	assert.Equal(t, "alice", acc.Handle)
	assert.Empty(t, st.Keys(), "reading a missing account must not write")
}

func TestSetPlanPersists(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	_, err := NewService(st, "linkpage", nil).SetPlan(ctx, "alice", models.PlanPro)
	require.NoError(t, err)

	acc, err := NewService(st, "linkpage", nil).Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, acc.IsPro())
	assert.Equal(t, models.AccountSchemaVersion, acc.Version)
}

func TestSetPlanRejects(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), "linkpage", nil)
	_, err := svc.SetPlan(context.Background(), "alice", "enterprise")
	assert.ErrorIs(t, err, ErrInvalidPlan)
	_, err = svc.SetPlan(context.Background(), "not a handle", models.PlanPro)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestSetPlanKeepsCacheOnSaveFailure(t *testing.T) {
	svc := NewService(failingStore{store.NewMemoryStore()}, "linkpage", nil)
	_, err := svc.SetPlan(context.Background(), "alice", models.PlanPro)
	require.Error(t, err)

	acc, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, acc.Plan)
}

func TestMigratesV1Account(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, "linkpage:account:alice:v1", []byte(`{"plan":"pro"}`)))

	acc, err := NewService(st, "linkpage", nil).Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, acc.IsPro())

	raw, err := st.Load(ctx, "linkpage:account:alice:v2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2,"handle":"alice","plan":"pro"}`, string(raw))
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.SetSecret("account-test-secret")

	r := gin.New()
	r.HandleMethodNotAllowed = true
	editor := r.Group("/profiles/:handle", middleware.Auth(), middleware.OwnerOnly("handle"))
	billing := r.Group("/billing", middleware.BillingKey("billing-secret"))
	NewHandler(NewService(store.NewMemoryStore(), "linkpage", nil)).RegisterRoutes(editor, billing)
	return r
}

func serve(r *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler(t *testing.T) {
	r := newTestRouter(t)
	billing := map[string]string{middleware.HeaderBillingKey: "billing-secret"}

	w := serve(r, http.MethodPut, "/billing/accounts/alice", `{"plan":"gold"}`, billing)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPut, "/billing/accounts/alice", `{"plan":"pro"}`, billing)
	assert.Equal(t, http.StatusOK, w.Code)

	token, err := jwt.Sign("alice", time.Hour)
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/profiles/alice/account", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":2,"handle":"alice","plan":"pro"}`, w.Body.String())
}

func TestEditorCannotWritePlan(t *testing.T) {
	r := newTestRouter(t)
	token, err := jwt.Sign("alice", time.Hour)
	require.NoError(t, err)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	w := serve(r, http.MethodPut, "/billing/accounts/alice", `{"plan":"pro"}`, bearer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodPut, "/billing/accounts/alice", `{"plan":"pro"}`, map[string]string{
		"Authorization":             "Bearer " + token,
		middleware.HeaderBillingKey: "guess",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The editor surface only exposes the read.
	w = serve(r, http.MethodPut, "/profiles/alice/account", `{"plan":"pro"}`, bearer)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = serve(r, http.MethodGet, "/profiles/alice/account", "", bearer)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":2,"handle":"alice","plan":"free"}`, w.Body.String())
}

func TestBillingKeyDisabledWhenSecretEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(store.NewMemoryStore(), "linkpage", nil)).
		RegisterRoutes(r.Group("/profiles/:handle"), r.Group("/billing", middleware.BillingKey("")))

	w := serve(r, http.MethodPut, "/billing/accounts/alice", `{"plan":"pro"}`, map[string]string{middleware.HeaderBillingKey: ""})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

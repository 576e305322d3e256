package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler().RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) map[string]json.RawMessage {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListEndpoints(t *testing.T) {
	r := newRouter()

	var fonts []registry.FontPair
	require.NoError(t, json.Unmarshal(get(t, r, "/api/v1/registry/fonts")["data"], &fonts))
	assert.Len(t, fonts, len(registry.Fonts()))
	assert.Equal(t, "system-sans", fonts[0].ID)

	var patterns []registry.PatternSpec
	require.NoError(t, json.Unmarshal(get(t, r, "/api/v1/registry/patterns")["data"], &patterns))
	assert.Len(t, patterns, 4)

	var gradients []registry.GradientPreset
	require.NoError(t, json.Unmarshal(get(t, r, "/api/v1/registry/gradients")["data"], &gradients))
	assert.NotEmpty(t, gradients)

	icons := get(t, r, "/api/v1/registry/icons")
	assert.Contains(t, icons, "icons")
	assert.Contains(t, icons, "platforms")
}

func TestThemesFilterByCategory(t *testing.T) {
	r := newRouter()

	var all []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(get(t, r, "/api/v1/registry/themes")["data"], &all))
	require.Len(t, all, len(registry.ThemePresets()))

	category := all[0].Category
	var filtered []struct {
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(get(t, r, "/api/v1/registry/themes?category="+category)["data"], &filtered))
	require.NotEmpty(t, filtered)
	for _, p := range filtered {
		assert.Equal(t, category, p.Category)
	}
}

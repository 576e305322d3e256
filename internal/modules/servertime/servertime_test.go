package servertime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"))

	before := time.Now().UnixMilli()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/server-time", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		T2  int64  `json:"t2"`
		T3  int64  `json:"t3"`
		Now string `json:"now"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, body.T2, before)
	assert.GreaterOrEqual(t, body.T3, body.T2)
	_, err := time.Parse(time.RFC3339, body.Now)
	assert.NoError(t, err)
}

// Package servertime lets editors align their clock with the server before
// previewing scheduled links.
package servertime

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/pkg/response"
)

// RegisterRoutes mounts the clock sync endpoint. t2 and t3 are receive and
// send timestamps in Unix ms for an NTP-style offset estimate.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/server-time", func(c *gin.Context) {
		received := time.Now()
		response.OK(c, gin.H{
			"t2":  received.UnixMilli(),
			"now": received.UTC().Format(time.RFC3339),
			"t3":  time.Now().UnixMilli(),
		})
	})
}

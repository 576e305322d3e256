package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/pkg/response"
)

const HeaderBillingKey = "X-Billing-Key"

// BillingKey guards the plan-write surface with the shared billing secret.
// Editor JWTs are not accepted here. An empty secret closes the surface.
func BillingKey(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := strings.TrimSpace(c.GetHeader(HeaderBillingKey))
		if secret == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			response.ForbiddenMsg(c, "billing credential required")
			return
		}
		c.Next()
	}
}

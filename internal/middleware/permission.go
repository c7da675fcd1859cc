package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-manager/internal/errors"
	"github.com/yukikurage/task-manager/internal/models"
)

// RequirePermission lets the request through only when check accepts the
// authenticated worker. Must run after RequireAuth.
func RequirePermission(check func(*models.Worker) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		worker, ok := CurrentWorker(c)
		if !ok || !check(worker) {
			apierrors.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

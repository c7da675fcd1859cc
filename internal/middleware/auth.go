package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/constants"
	apierrors "github.com/yukikurage/task-manager/internal/errors"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/services"
)

// WorkerLoader resolves the worker stored in a session.
type WorkerLoader interface {
	CurrentWorker(id uint64) (*models.Worker, error)
}

// RequireAuth checks if the user is authenticated via session and loads the
// active worker. Anonymous requests are redirected to the login page.
func RequireAuth(loader WorkerLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := sessionUserID(session.Get(constants.ContextKeyUserID))
		if !ok {
			redirectToLogin(c)
			return
		}

		worker, err := loader.CurrentWorker(userID)
		if err != nil {
			if errors.Is(err, services.ErrWorkerNotFound) {
				// The account was deleted or deactivated since login
				session.Clear()
				_ = session.Save()
				redirectToLogin(c)
				return
			}
			_ = c.Error(err)
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}

		// Store user ID and worker in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, worker.ID)
		c.Set(constants.ContextKeyCurrentWorker, worker)
		c.Next()
	}
}

// LoginRedirect returns the login URL that comes back to next afterwards.
func LoginRedirect(next string) string {
	return constants.LoginURL + "?" + url.Values{"next": {next}}.Encode()
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL.RequestURI()))
	c.Abort()
}

// CurrentWorker retrieves the authenticated worker from context
func CurrentWorker(c *gin.Context) (*models.Worker, bool) {
	value, exists := c.Get(constants.ContextKeyCurrentWorker)
	if !exists {
		return nil, false
	}
	worker, ok := value.(*models.Worker)
	return worker, ok && worker != nil
}

// sessionUserID normalises the id types a session store may hand back.
// The cookie store keeps uint64 through gob; other stores may not.
func sessionUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

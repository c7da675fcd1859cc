package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/task-manager/internal/errors"
	"github.com/yukikurage/task-manager/internal/middleware"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/services"
	"github.com/yukikurage/task-manager/internal/utils"
	"github.com/yukikurage/task-manager/internal/validation"
)

func init() {
	// Binding errors use the same field names and rules as the services
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Register(v)
	}
}

// actor returns the authenticated worker set by middleware.RequireAuth
func actor(c *gin.Context) *models.Worker {
	worker, _ := middleware.CurrentWorker(c)
	return worker
}

// idParam parses the :id path parameter; a malformed id answers 404
func idParam(c *gin.Context) (uint64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// bindForm binds the request form into form, answering 400 on failure
func bindForm(c *gin.Context, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		if fieldErrs, ok := validation.As(validation.Translate(err)); ok {
			apierrors.InvalidForm(c, fieldErrs)
		} else {
			apierrors.BadRequest(c, "Invalid request body")
		}
		return false
	}
	return true
}

// redirectTo answers a successful form submission
func redirectTo(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// safeNext accepts only local absolute paths as a post-login destination
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// refererPath returns the local path of the Referer header, or fallback when
// it is missing or points at another host
func refererPath(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}

	if ref.Path != "/" && safeNext(ref.Path) == "/" {
		return fallback
	}

	path := ref.EscapedPath()
	if ref.RawQuery != "" {
		path += "?" + ref.RawQuery
	}
	return path
}

// respondServiceError maps service errors to HTTP responses
func respondServiceError(c *gin.Context, err error) {
	if fieldErrs, ok := validation.As(err); ok {
		apierrors.InvalidForm(c, fieldErrs)
		return
	}

	switch {
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "You do not have permission to perform this action")
	case errors.Is(err, utils.ErrInvalidPage):
		apierrors.NotFound(c, "Invalid page.")
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrWorkerNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrPositionNotFound),
		errors.Is(err, services.ErrTaskTypeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/task-manager/internal/services"
	"github.com/yukikurage/task-manager/internal/utils"
	"github.com/yukikurage/task-manager/internal/validation"
)

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                         "/",
		"/tasks/?page=2":           "/tasks/?page=2",
		"//evil.example.com":       "/",
		"/\\evil.example.com":      "/",
		"https://evil.example.com": "/",
	}
	for next, want := range cases {
		assert.Equal(t, want, safeNext(next), next)
	}
}

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{validation.Errors{"name": {"This field is required."}}, http.StatusBadRequest},
		{services.ErrForbidden, http.StatusForbidden},
		{utils.ErrInvalidPage, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", services.ErrTaskNotFound), http.StatusNotFound},
		{services.ErrProjectNotFound, http.StatusNotFound},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondServiceError(c, tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}
	_, ok := idParam(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := idParam(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)
}

func TestRefererPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[string]string{
		"":                                  "/tasks/",
		"/tasks/?page=2":                    "/tasks/?page=2",
		"http://example.com/tasks/3/":       "/tasks/3/",
		"http://example.com/":               "/",
		"https://evil.example.com/tasks/":   "/tasks/",
		"//evil.example.com/tasks/":         "/tasks/",
		"/\\evil.example.com":               "/tasks/",
		"http://example.com:8080/projects/": "/tasks/",
	}
	for referer, want := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/tasks/1/complete/", nil)
		if referer != "" {
			c.Request.Header.Set("Referer", referer)
		}
		assert.Equal(t, want, refererPath(c, "/tasks/"), referer)
	}
}

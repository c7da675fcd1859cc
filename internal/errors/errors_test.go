package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-manager/internal/validation"
)

func TestInvalidForm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	InvalidForm(c, validation.Errors{"name": {"This field is required."}})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Code    string              `json:"code"`
		Details map[string][]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInvalidInput, body.Code)
	assert.Equal(t, []string{"This field is required."}, body.Details["name"])
}

func TestForbiddenDefaultsMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Forbidden(c, "")

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"code":"FORBIDDEN","message":"Access denied"}`, w.Body.String())
}

package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-manager/internal/config"
	"github.com/yukikurage/task-manager/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestNewSessionStore(t *testing.T) {
	store, err := NewSessionStore(&config.Config{SessionStore: "cookie", SessionSecret: "secret"})
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = NewSessionStore(&config.Config{SessionStore: "memcached"})
	assert.Error(t, err)
}

func TestBuildContainer_ServesHealthAndHome(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "tasks.db"))
	t.Setenv("SESSION_STORE", "cookie")
	t.Setenv("GIN_MODE", gin.TestMode)
	t.Setenv("LOG_LEVEL", "error")

	inj := BuildContainer()
	defer func() { _ = inj.Shutdown() }()

	db := do.MustInvoke[*gorm.DB](inj)
	require.NoError(t, database.Migrate(db, do.MustInvoke[*zap.Logger](inj)))

	engine := do.MustInvoke[*gin.Engine](inj)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"num_projects":0,"num_tasks":0,"num_workers":0}`, w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/accounts/login/?next=%2Ftasks%2F", w.Header().Get("Location"))
}

package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/constants"
	apierrors "github.com/yukikurage/task-manager/internal/errors"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/services"
	"github.com/yukikurage/task-manager/internal/utils"
)

// TaskLoader finds a task with its relations.
type TaskLoader interface {
	GetTask(id uint64) (*models.Task, error)
}

// RequireTaskAccess loads the task named by the :id parameter and checks
// that the authenticated worker passes check for it. Must run after RequireAuth.
func RequireTaskAccess(tasks TaskLoader, check func(*models.Worker, *models.Task) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := utils.ParseID(c.Param("id"))
		if err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		task, err := tasks.GetTask(taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				_ = c.Error(err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		worker, _ := CurrentWorker(c)
		if !check(worker, task) {
			apierrors.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// CurrentTask retrieves the task loaded by RequireTaskAccess
func CurrentTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := value.(*models.Task)
	return task, ok && task != nil
}

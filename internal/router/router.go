package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/constants"
	"github.com/yukikurage/task-manager/internal/handlers"
	"github.com/yukikurage/task-manager/internal/middleware"
	"github.com/yukikurage/task-manager/internal/policy"
	"github.com/yukikurage/task-manager/internal/services"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Log            *zap.Logger
	SessionStore   sessions.Store
	Workers        middleware.WorkerLoader
	Tasks          middleware.TaskLoader
	HomeService    *services.HomeService
	AuthHandler    *handlers.AuthHandler
	ProjectHandler *handlers.ProjectHandler
	WorkerHandler  *handlers.WorkerHandler
	TaskHandler    *handlers.TaskHandler
	CatalogHandler *handlers.CatalogHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ZapRecovery(d.Log))
	r.Use(middleware.ZapLogger(d.Log))
	r.Use(sessions.Sessions(constants.SessionCookieName, d.SessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task manager is running",
		})
	})

	// Public routes
	r.GET("/", handlers.Home(d.HomeService))
	r.GET("/sign-up/", d.AuthHandler.SignUpPage)
	r.POST("/sign-up/", d.AuthHandler.SignUp)

	accounts := r.Group("/accounts")
	{
		accounts.GET("/login/", d.AuthHandler.LoginPage)
		accounts.POST("/login/", d.AuthHandler.Login)
		accounts.POST("/logout/", d.AuthHandler.Logout)
	}

	// Everything below needs a logged in worker
	auth := r.Group("")
	auth.Use(middleware.RequireAuth(d.Workers))

	manageProjects := middleware.RequirePermission(policy.CanManageProjects)
	projects := auth.Group("/projects")
	{
		projects.GET("/", d.ProjectHandler.ListProjects)
		projects.GET("/create/", manageProjects, d.ProjectHandler.CreateProjectPage)
		projects.POST("/create/", manageProjects, d.ProjectHandler.CreateProject)
		projects.GET("/:id/", d.ProjectHandler.GetProject)
		projects.GET("/:id/update/", manageProjects, d.ProjectHandler.GetProject)
		projects.POST("/:id/update/", manageProjects, d.ProjectHandler.UpdateProject)
		projects.GET("/:id/delete/", manageProjects, d.ProjectHandler.GetProject)
		projects.POST("/:id/delete/", manageProjects, d.ProjectHandler.DeleteProject)
	}

	manageWorkers := middleware.RequirePermission(policy.CanManageWorkers)
	workers := auth.Group("/workers")
	{
		workers.GET("/", d.WorkerHandler.ListWorkers)
		workers.GET("/create/", manageWorkers, d.WorkerHandler.CreateWorkerPage)
		workers.POST("/create/", manageWorkers, d.WorkerHandler.CreateWorker)
		workers.GET("/:id/", d.WorkerHandler.GetWorker)
		workers.GET("/:id/update/", manageWorkers, d.WorkerHandler.UpdateWorkerPage)
		workers.POST("/:id/update/", manageWorkers, d.WorkerHandler.UpdateWorker)
		workers.GET("/:id/delete/", manageWorkers, d.WorkerHandler.GetWorker)
		workers.POST("/:id/delete/", manageWorkers, d.WorkerHandler.DeleteWorker)
	}

	auth.GET("/my-profile/", d.WorkerHandler.Profile)
	auth.POST("/my-profile/", d.WorkerHandler.UpdateProfile)

	modifyTask := middleware.RequireTaskAccess(d.Tasks, policy.CanModifyTask)
	completeTask := middleware.RequireTaskAccess(d.Tasks, policy.CanCompleteTask)
	tasks := auth.Group("/tasks")
	{
		tasks.GET("/", d.TaskHandler.ListTasks)
		tasks.GET("/create/", d.TaskHandler.CreateTaskPage)
		tasks.POST("/create/", d.TaskHandler.CreateTask)
		tasks.GET("/:id/", d.TaskHandler.GetTask)
		tasks.GET("/:id/update/", modifyTask, d.TaskHandler.TaskFormPage)
		tasks.POST("/:id/update/", modifyTask, d.TaskHandler.UpdateTask)
		tasks.GET("/:id/delete/", modifyTask, d.TaskHandler.TaskFormPage)
		tasks.POST("/:id/delete/", modifyTask, d.TaskHandler.DeleteTask)
		tasks.GET("/:id/complete/", completeTask, d.TaskHandler.CompleteTask)
		tasks.POST("/:id/complete/", completeTask, d.TaskHandler.CompleteTask)
	}

	manageCatalog := middleware.RequirePermission(policy.CanManageCatalog)
	positions := auth.Group("/positions")
	{
		positions.GET("/", d.CatalogHandler.ListPositions)
		positions.GET("/create/", manageCatalog, d.CatalogHandler.NamePage)
		positions.POST("/create/", manageCatalog, d.CatalogHandler.CreatePosition)
		positions.GET("/:id/delete/", manageCatalog, d.CatalogHandler.GetPosition)
		positions.POST("/:id/delete/", manageCatalog, d.CatalogHandler.DeletePosition)
	}

	taskTypes := auth.Group("/task-types")
	{
		taskTypes.GET("/", d.CatalogHandler.ListTaskTypes)
		taskTypes.GET("/create/", manageCatalog, d.CatalogHandler.NamePage)
		taskTypes.POST("/create/", manageCatalog, d.CatalogHandler.CreateTaskType)
		taskTypes.GET("/:id/delete/", manageCatalog, d.CatalogHandler.GetTaskType)
		taskTypes.POST("/:id/delete/", manageCatalog, d.CatalogHandler.DeleteTaskType)
	}

	return r
}

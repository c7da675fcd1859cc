package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/constants"
	"github.com/yukikurage/task-manager/internal/dto"
	apierrors "github.com/yukikurage/task-manager/internal/errors"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignUpPage describes the sign-up form.
func (h *AuthHandler) SignUpPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields": []string{"username", "email", "password1", "password2"},
	})
}

// SignUp registers a new worker, logs them in and goes to the landing page.
func (h *AuthHandler) SignUp(c *gin.Context) {
	type SignUpRequest struct {
		Username  string `form:"username"`
		Email     string `form:"email"`
		Password1 string `form:"password1"`
		Password2 string `form:"password2"`
	}

	var req SignUpRequest
	if !bindForm(c, &req) {
		return
	}

	worker, err := h.authService.SignUp(services.SignUpInput{
		Username:  req.Username,
		Email:     req.Email,
		Password1: req.Password1,
		Password2: req.Password2,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := startSession(c, worker); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	redirectTo(c, "/")
}

// LoginPage describes the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields": []string{"username", "password"},
		"next":   c.Query("next"),
	})
}

// Login authenticates a worker and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
		Next     string `form:"next"`
	}

	var req LoginRequest
	if !bindForm(c, &req) {
		return
	}

	worker, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := startSession(c, worker); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	next := req.Next
	if next == "" {
		next = c.Query("next")
	}
	redirectTo(c, safeNext(next))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	redirectTo(c, constants.LoginURL)
}

// Home returns the landing page counters. It needs no login.
func Home(home *services.HomeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := home.Counts()
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.HomeResponse{
			NumProjects: counts.Projects,
			NumTasks:    counts.Tasks,
			NumWorkers:  counts.Workers,
		})
	}
}

func startSession(c *gin.Context, worker *models.Worker) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, worker.ID)
	return session.Save()
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	default:
		respondServiceError(c, err)
	}
}

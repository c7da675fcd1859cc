package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/task-manager/internal/constants"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

const (
	msgUsernameTaken    = "A user with that username already exists."
	msgPasswordMismatch = "The two password fields didn't match."
)

// PasswordCost is the bcrypt cost for new password hashes.
var PasswordCost = bcrypt.DefaultCost

// AuthService handles authentication related business logic.
type AuthService struct {
	workerRepo repository.WorkerRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(workerRepo repository.WorkerRepository) *AuthService {
	return &AuthService{
		workerRepo: workerRepo,
	}
}

// SignUpInput represents the self registration form.
type SignUpInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
}

// SignUp registers a worker with regular privileges.
func (s *AuthService) SignUp(input SignUpInput) (*models.Worker, error) {
	return s.register(input, false)
}

// CreateSuperuser registers a worker with superuser and staff flags set.
func (s *AuthService) CreateSuperuser(input SignUpInput) (*models.Worker, error) {
	return s.register(input, true)
}

func (s *AuthService) register(input SignUpInput, superuser bool) (*models.Worker, error) {
	worker := &models.Worker{
		Username:    strings.TrimSpace(input.Username),
		Email:       strings.TrimSpace(input.Email),
		IsActive:    true,
		IsSuperuser: superuser,
		IsStaff:     superuser,
	}

	errs := validation.Errors{}
	if err := checkAccount(s.workerRepo, errs, worker.Username, input.Password1, input.Password2); err != nil {
		return nil, err
	}
	if err := modelErrors(errs, worker); err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password1)
	if err != nil {
		return nil, err
	}
	worker.PasswordHash = hash

	if err := s.workerRepo.Create(worker); err != nil {
		return nil, saveError(fmt.Errorf("failed to create worker: %w", err), "username", msgUsernameTaken)
	}
	return worker, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and records the login time.
// Inactive accounts are rejected like unknown ones.
func (s *AuthService) Login(input LoginInput) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !worker.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := s.workerRepo.UpdateLastLogin(worker); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	return worker, nil
}

// CurrentWorker loads the active worker behind a session.
func (s *AuthService) CurrentWorker(id uint64) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(id, "Position", "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}
	if !worker.IsActive {
		return nil, ErrWorkerNotFound
	}
	return worker, nil
}

// checkAccount records form errors for a new account's username and passwords.
func checkAccount(repo repository.WorkerRepository, errs validation.Errors, username, password1, password2 string) error {
	if username != "" {
		if _, err := repo.FindByUsername(username); err == nil {
			errs.Add("username", msgUsernameTaken)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}
	}

	if password1 == "" {
		errs.Add("password1", msgRequired)
	}
	switch {
	case password2 == "":
		errs.Add("password2", msgRequired)
	case password1 != "" && password1 != password2:
		errs.Add("password2", msgPasswordMismatch)
	case utf8.RuneCountInString(password2) < constants.MinPasswordLength:
		errs.Add("password2", fmt.Sprintf("This password is too short. It must contain at least %d characters.", constants.MinPasswordLength))
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hash), nil
}

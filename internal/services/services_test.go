package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/testutil"
	"github.com/yukikurage/task-manager/internal/utils"
	"github.com/yukikurage/task-manager/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const deadlineLayout = "2006-01-02 15:04"

type ServiceTestSuite struct {
	suite.Suite
	db *gorm.DB

	projectRepo  repository.ProjectRepository
	workerRepo   repository.WorkerRepository
	positionRepo repository.PositionRepository
	taskTypeRepo repository.TaskTypeRepository
	taskRepo     repository.TaskRepository

	auth     *AuthService
	projects *ProjectService
	workers  *WorkerService
	catalog  *CatalogService
	tasks    *TaskService
	home     *HomeService

	admin   *models.Worker
	regular *models.Worker
	project *models.Project
}

func (suite *ServiceTestSuite) SetupSuite() {
	PasswordCost = bcrypt.MinCost
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())

	suite.projectRepo = repository.NewProjectRepository(suite.db)
	suite.workerRepo = repository.NewWorkerRepository(suite.db)
	suite.positionRepo = repository.NewPositionRepository(suite.db)
	suite.taskTypeRepo = repository.NewTaskTypeRepository(suite.db)
	suite.taskRepo = repository.NewTaskRepository(suite.db)

	suite.auth = NewAuthService(suite.workerRepo)
	suite.projects = NewProjectService(suite.projectRepo)
	suite.workers = NewWorkerService(suite.workerRepo, suite.positionRepo, suite.projectRepo)
	suite.catalog = NewCatalogService(suite.positionRepo, suite.taskTypeRepo)
	suite.tasks = NewTaskService(suite.taskRepo, suite.taskTypeRepo, suite.projectRepo, suite.workerRepo)
	suite.home = NewHomeService(suite.projectRepo, suite.taskRepo, suite.workerRepo)

	suite.admin = testutil.CreateWorker(suite.T(), suite.db, "admin", testutil.Superuser())
	suite.regular = testutil.CreateWorker(suite.T(), suite.db, "user0")
	suite.project = testutil.CreateProject(suite.T(), suite.db, "ProjectName")
}

func (suite *ServiceTestSuite) requireFieldError(err error, field string) {
	suite.T().Helper()
	fieldErrs, ok := validation.As(err)
	suite.Require().True(ok, "expected field errors, got %v", err)
	suite.Contains(fieldErrs, field)
}

func (suite *ServiceTestSuite) validTaskInput(name string) TaskInput {
	return TaskInput{
		Name:        name,
		Description: "Description for Task",
		Deadline:    time.Now().Add(45 * time.Minute).Format(deadlineLayout),
		Priority:    "LOW",
		Project:     utils.FormatID(suite.project.ID),
	}
}

// Search

func (suite *ServiceTestSuite) TestTaskFilter_InvalidPriorityIsUnfiltered() {
	testutil.CreateTask(suite.T(), suite.db, "Low", suite.project.ID)
	testutil.CreateTask(suite.T(), suite.db, "High", suite.project.ID, testutil.WithPriority(models.PriorityHigh))

	page, err := suite.tasks.ListTasks(suite.regular, TaskSearch{Priority: "INVALID", Name: "High"}, "")
	suite.Require().NoError(err)
	suite.Len(page.Items, 2)

	page, err = suite.tasks.ListTasks(suite.regular, TaskSearch{Priority: "LOW"}, "")
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal(models.PriorityLow, page.Items[0].Priority)
}

func (suite *ServiceTestSuite) TestTaskFilter_InvalidChoicesAreUnfiltered() {
	testutil.CreateTask(suite.T(), suite.db, "Mine", suite.project.ID, testutil.AssignedTo(suite.regular))
	testutil.CreateTask(suite.T(), suite.db, "Other", suite.project.ID)

	for _, search := range []TaskSearch{
		{AssignedToMe: "maybe"},
		{CreatedByMe: "true"},
		{Status: "finished"},
		{TaskType: "999"},
		{Project: "abc", AssignedToMe: "yes"},
	} {
		page, err := suite.tasks.ListTasks(suite.regular, search, "")
		suite.Require().NoError(err)
		suite.Len(page.Items, 2, "search %+v", search)
	}

	page, err := suite.tasks.ListTasks(suite.regular, TaskSearch{AssignedToMe: "yes", Project: utils.FormatID(suite.project.ID)}, "")
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal("Mine", page.Items[0].Name)
}

func (suite *ServiceTestSuite) TestWorkerFilter_UnknownPositionIsUnfiltered() {
	position := testutil.CreatePosition(suite.T(), suite.db, "Developer")
	testutil.CreateWorker(suite.T(), suite.db, "dev", testutil.WithPosition(position.ID))

	page, err := suite.workers.ListWorkers(WorkerSearch{Position: "999", Username: "dev"}, "")
	suite.Require().NoError(err)
	suite.Len(page.Items, 3)

	page, err = suite.workers.ListWorkers(WorkerSearch{Position: utils.FormatID(position.ID)}, "")
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal("dev", page.Items[0].Username)
}

func (suite *ServiceTestSuite) TestProjectList_Pagination() {
	for i := 1; i < 10; i++ {
		testutil.CreateProject(suite.T(), suite.db, "Extra"+string(rune('A'+i)))
	}

	page, err := suite.projects.ListProjects(ProjectSearch{}, "1")
	suite.Require().NoError(err)
	suite.Len(page.Items, 8)
	suite.True(page.Pagination.HasNext)

	page, err = suite.projects.ListProjects(ProjectSearch{}, "last")
	suite.Require().NoError(err)
	suite.Len(page.Items, 2)
	suite.Equal(2, page.Pagination.Page)

	_, err = suite.projects.ListProjects(ProjectSearch{}, "3")
	suite.ErrorIs(err, utils.ErrInvalidPage)

	_, err = suite.projects.ListProjects(ProjectSearch{}, "two")
	suite.ErrorIs(err, utils.ErrInvalidPage)
}

// Projects

func (suite *ServiceTestSuite) TestProject_SuperuserOnly() {
	_, err := suite.projects.CreateProject(suite.regular, ProjectInput{Name: "New", Description: "d"})
	suite.ErrorIs(err, ErrForbidden)

	_, err = suite.projects.UpdateProject(suite.regular, suite.project.ID, ProjectInput{Name: "New", Description: "d"})
	suite.ErrorIs(err, ErrForbidden)

	suite.ErrorIs(suite.projects.DeleteProject(suite.regular, suite.project.ID), ErrForbidden)
}

func (suite *ServiceTestSuite) TestProject_CreateUpdateDelete() {
	project, err := suite.projects.CreateProject(suite.admin, ProjectInput{Name: "  Website  ", Description: "Redesign"})
	suite.Require().NoError(err)
	suite.Equal("Website", project.Name)

	_, err = suite.projects.CreateProject(suite.admin, ProjectInput{Name: "Website", Description: "Again"})
	suite.requireFieldError(err, "name")

	_, err = suite.projects.CreateProject(suite.admin, ProjectInput{})
	fieldErrs, ok := validation.As(err)
	suite.Require().True(ok)
	suite.Equal([]string{"This field is required."}, fieldErrs["name"])
	suite.Equal([]string{"This field is required."}, fieldErrs["description"])

	// Keeping its own name is not a conflict
	updated, err := suite.projects.UpdateProject(suite.admin, project.ID, ProjectInput{Name: "Website", Description: "Changed"})
	suite.Require().NoError(err)
	suite.Equal("Changed", updated.Description)

	_, err = suite.projects.UpdateProject(suite.admin, project.ID, ProjectInput{Name: "ProjectName", Description: "Clash"})
	suite.requireFieldError(err, "name")

	suite.Require().NoError(suite.projects.DeleteProject(suite.admin, project.ID))
	_, err = suite.projects.GetProject(project.ID)
	suite.ErrorIs(err, ErrProjectNotFound)
	suite.ErrorIs(suite.projects.DeleteProject(suite.admin, project.ID), ErrProjectNotFound)
}

// Workers and authentication

func (suite *ServiceTestSuite) TestSignUp_CreatesRegularWorker() {
	worker, err := suite.auth.SignUp(SignUpInput{
		Username:  "newbie",
		Email:     "newbie@example.com",
		Password1: "ytrewq123",
		Password2: "ytrewq123",
	})
	suite.Require().NoError(err)
	suite.False(worker.IsSuperuser)
	suite.True(worker.IsActive)
	suite.NotEqual("ytrewq123", worker.PasswordHash)

	loggedIn, err := suite.auth.Login(LoginInput{Username: "newbie", Password: "ytrewq123"})
	suite.Require().NoError(err)
	suite.Equal(worker.ID, loggedIn.ID)
	suite.NotNil(loggedIn.LastLogin)
}

func (suite *ServiceTestSuite) TestSignUp_FormErrors() {
	_, err := suite.auth.SignUp(SignUpInput{Username: "user0", Password1: "ytrewq123", Password2: "ytrewq123"})
	suite.requireFieldError(err, "username")

	_, err = suite.auth.SignUp(SignUpInput{Username: "fresh", Password1: "ytrewq123", Password2: "ytrewq124"})
	fieldErrs, ok := validation.As(err)
	suite.Require().True(ok)
	suite.Equal([]string{"The two password fields didn't match."}, fieldErrs["password2"])

	_, err = suite.auth.SignUp(SignUpInput{Username: "fresh", Password1: "short", Password2: "short"})
	suite.requireFieldError(err, "password2")

	_, err = suite.auth.SignUp(SignUpInput{Username: "bad name", Password1: "ytrewq123", Password2: "ytrewq123"})
	suite.requireFieldError(err, "username")

	_, err = suite.auth.SignUp(SignUpInput{Username: "fresh", Email: "not-an-email", Password1: "ytrewq123", Password2: "ytrewq123"})
	suite.requireFieldError(err, "email")
}

func (suite *ServiceTestSuite) TestLogin_Rejections() {
	_, err := suite.auth.Login(LoginInput{Username: "user0", Password: "wrong"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.auth.Login(LoginInput{Username: "ghost", Password: testutil.Password})
	suite.ErrorIs(err, ErrInvalidCredentials)

	suite.Require().NoError(suite.db.Model(suite.regular).UpdateColumn("is_active", false).Error)
	_, err = suite.auth.Login(LoginInput{Username: "user0", Password: testutil.Password})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.auth.CurrentWorker(suite.regular.ID)
	suite.ErrorIs(err, ErrWorkerNotFound)
}

func (suite *ServiceTestSuite) TestCreateSuperuser() {
	worker, err := suite.auth.CreateSuperuser(SignUpInput{Username: "root", Password1: "ytrewq123", Password2: "ytrewq123"})
	suite.Require().NoError(err)
	suite.True(worker.IsSuperuser)
	suite.True(worker.IsStaff)
}

func (suite *ServiceTestSuite) TestCreateWorker_ByAdmin() {
	position := testutil.CreatePosition(suite.T(), suite.db, "Developer")

	_, err := suite.workers.CreateWorker(suite.regular, CreateWorkerInput{})
	suite.ErrorIs(err, ErrForbidden)

	worker, err := suite.workers.CreateWorker(suite.admin, CreateWorkerInput{
		WorkerInput: WorkerInput{
			Username:  "dev",
			Position:  utils.FormatID(position.ID),
			Project:   utils.FormatID(suite.project.ID),
			FirstName: "Jane",
			LastName:  "Doe",
		},
		Password1: "ytrewq123",
		Password2: "ytrewq123",
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(worker.PositionID)
	suite.Equal(position.ID, *worker.PositionID)

	_, err = suite.workers.CreateWorker(suite.admin, CreateWorkerInput{
		WorkerInput: WorkerInput{Username: "dev2", FirstName: "J4ne", LastName: "D0e", Position: "999"},
		Password1:   "ytrewq123",
		Password2:   "ytrewq123",
	})
	fieldErrs, ok := validation.As(err)
	suite.Require().True(ok)
	suite.Equal([]string{"First name must contain only letters."}, fieldErrs["first_name"])
	suite.Equal([]string{"Last name must contain only letters."}, fieldErrs["last_name"])
	suite.Equal([]string{msgInvalidChoice}, fieldErrs["position"])
}

func (suite *ServiceTestSuite) TestUpdateProfile() {
	worker, err := suite.workers.UpdateProfile(suite.regular, WorkerInput{
		Username:  "user0",
		Project:   utils.FormatID(suite.project.ID),
		FirstName: "Olena",
		Email:     "olena@example.com",
	})
	suite.Require().NoError(err)
	suite.Equal("Olena", worker.FirstName)
	suite.Require().NotNil(worker.Project)
	suite.Equal("ProjectName", worker.Project.Name)

	_, err = suite.workers.UpdateProfile(suite.regular, WorkerInput{Username: "admin"})
	suite.requireFieldError(err, "username")

	_, err = suite.workers.UpdateWorker(suite.regular, suite.admin.ID, WorkerInput{Username: "admin"})
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *ServiceTestSuite) TestUpdateWorker_KeepsCompletedCounter() {
	suite.Require().NoError(suite.db.Model(suite.regular).UpdateColumn("completed_tasks", 3).Error)

	worker, err := suite.workers.UpdateWorker(suite.admin, suite.regular.ID, WorkerInput{Username: "user0", LastName: "Smith"})
	suite.Require().NoError(err)
	suite.Equal("Smith", worker.LastName)
	suite.Equal(uint(3), worker.CompletedTasks)
}

func (suite *ServiceTestSuite) TestDeleteWorker() {
	suite.ErrorIs(suite.workers.DeleteWorker(suite.regular, suite.admin.ID), ErrForbidden)
	suite.Require().NoError(suite.workers.DeleteWorker(suite.admin, suite.regular.ID))
	suite.ErrorIs(suite.workers.DeleteWorker(suite.admin, suite.regular.ID), ErrWorkerNotFound)
}

// Catalog

func (suite *ServiceTestSuite) TestCatalog() {
	_, err := suite.catalog.CreatePosition(suite.regular, NameInput{Name: "QA"})
	suite.ErrorIs(err, ErrForbidden)

	position, err := suite.catalog.CreatePosition(suite.admin, NameInput{Name: "QA"})
	suite.Require().NoError(err)

	_, err = suite.catalog.CreatePosition(suite.admin, NameInput{Name: "QA"})
	suite.requireFieldError(err, "name")

	taskType, err := suite.catalog.CreateTaskType(suite.admin, NameInput{Name: "Bug"})
	suite.Require().NoError(err)

	_, err = suite.catalog.CreateTaskType(suite.admin, NameInput{Name: " "})
	suite.requireFieldError(err, "name")

	positions, err := suite.catalog.ListPositions("")
	suite.Require().NoError(err)
	suite.Len(positions.Items, 1)

	suite.Require().NoError(suite.catalog.DeletePosition(suite.admin, position.ID))
	suite.Require().NoError(suite.catalog.DeleteTaskType(suite.admin, taskType.ID))
	suite.ErrorIs(suite.catalog.DeleteTaskType(suite.admin, taskType.ID), ErrTaskTypeNotFound)
}

// Tasks

func (suite *ServiceTestSuite) TestCreateTask_CreatorIsActor() {
	input := suite.validTaskInput("NewTask")
	input.Assignee = utils.FormatID(suite.regular.ID)

	task, err := suite.tasks.CreateTask(suite.regular, input)
	suite.Require().NoError(err)
	suite.Require().NotNil(task.CreatedByID)
	suite.Equal(suite.regular.ID, *task.CreatedByID)
	suite.Require().NotNil(task.AssigneeID)
	suite.Equal(suite.regular.ID, *task.AssigneeID)
	suite.False(task.IsCompleted)
}

func (suite *ServiceTestSuite) TestCreateTask_FormErrors() {
	input := suite.validTaskInput("Soon")
	input.Deadline = time.Now().Add(10 * time.Minute).Format(deadlineLayout)
	_, err := suite.tasks.CreateTask(suite.regular, input)
	fieldErrs, ok := validation.As(err)
	suite.Require().True(ok)
	suite.Equal([]string{"Deadline must be at least 30 minutes from now."}, fieldErrs["deadline"])

	input = suite.validTaskInput("Bad")
	input.Deadline = "tomorrow"
	input.Priority = "URGENT"
	input.Project = ""
	input.Assignee = "999"
	_, err = suite.tasks.CreateTask(suite.regular, input)
	fieldErrs, ok = validation.As(err)
	suite.Require().True(ok)
	suite.Equal([]string{msgInvalidDateTime}, fieldErrs["deadline"])
	suite.Contains(fieldErrs, "priority")
	suite.Equal([]string{msgRequired}, fieldErrs["project"])
	suite.Equal([]string{msgInvalidChoice}, fieldErrs["assignee"])

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestUpdateTask_CreatorOrSuperuser() {
	other := testutil.CreateWorker(suite.T(), suite.db, "user1")
	task := testutil.CreateTask(suite.T(), suite.db, "Task", suite.project.ID, testutil.CreatedBy(suite.regular))

	_, err := suite.tasks.UpdateTask(other, task.ID, suite.validTaskInput("Renamed"))
	suite.ErrorIs(err, ErrForbidden)

	updated, err := suite.tasks.UpdateTask(suite.regular, task.ID, suite.validTaskInput("Renamed"))
	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.Name)
	suite.Equal(suite.regular.ID, *updated.CreatedByID)

	input := suite.validTaskInput("Renamed")
	input.Priority = "HIGH"
	updated, err = suite.tasks.UpdateTask(suite.admin, task.ID, input)
	suite.Require().NoError(err)
	suite.Equal(models.PriorityHigh, updated.Priority)

	// Moving the deadline too close fails on update as well
	input.Deadline = time.Now().Add(5 * time.Minute).Format(deadlineLayout)
	_, err = suite.tasks.UpdateTask(suite.admin, task.ID, input)
	suite.requireFieldError(err, "deadline")

	suite.ErrorIs(suite.tasks.DeleteTask(other, task.ID), ErrForbidden)
	suite.Require().NoError(suite.tasks.DeleteTask(suite.regular, task.ID))
	_, err = suite.tasks.GetTask(task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestCompleteTask() {
	assignee := testutil.CreateWorker(suite.T(), suite.db, "user1")
	stranger := testutil.CreateWorker(suite.T(), suite.db, "user2")
	task := testutil.CreateTask(suite.T(), suite.db, "Task", suite.project.ID,
		testutil.CreatedBy(suite.regular), testutil.AssignedTo(assignee))

	_, err := suite.tasks.CompleteTask(stranger, task.ID, true)
	suite.ErrorIs(err, ErrForbidden)

	transitioned, err := suite.tasks.CompleteTask(assignee, task.ID, false)
	suite.Require().NoError(err)
	suite.False(transitioned)

	transitioned, err = suite.tasks.CompleteTask(assignee, task.ID, true)
	suite.Require().NoError(err)
	suite.True(transitioned)

	transitioned, err = suite.tasks.CompleteTask(suite.regular, task.ID, true)
	suite.Require().NoError(err)
	suite.False(transitioned)

	reloaded, err := suite.workers.GetWorker(assignee.ID)
	suite.Require().NoError(err)
	suite.Equal(uint(1), reloaded.CompletedTasks)

	_, err = suite.tasks.CompleteTask(assignee, 999, true)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestHomeCounts() {
	testutil.CreateTask(suite.T(), suite.db, "Task", suite.project.ID)

	counts, err := suite.home.Counts()
	suite.Require().NoError(err)
	suite.Equal(Counts{Projects: 1, Tasks: 1, Workers: 2}, counts)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

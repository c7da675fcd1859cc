package services

import (
	"strings"

	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
)

// ProjectSearch holds the raw project search form values.
type ProjectSearch struct {
	Name string `form:"name" json:"name"`
}

// WorkerSearch holds the raw worker search form values.
type WorkerSearch struct {
	Position string `form:"position" json:"position"`
	Project  string `form:"project" json:"project"`
	Username string `form:"username" json:"username"`
}

// TaskSearch holds the raw task search form values.
type TaskSearch struct {
	AssignedToMe string `form:"assigned_to_me" json:"assigned_to_me"`
	CreatedByMe  string `form:"created_by_me" json:"created_by_me"`
	Status       string `form:"status" json:"status"`
	Priority     string `form:"priority" json:"priority"`
	TaskType     string `form:"task_type" json:"task_type"`
	Project      string `form:"project" json:"project"`
	Name         string `form:"name" json:"name"`
}

// ProjectFilter turns the search form into a repository filter.
func ProjectFilter(search ProjectSearch) repository.ProjectFilter {
	return repository.ProjectFilter{Name: strings.TrimSpace(search.Name)}
}

// WorkerFilter turns the search form into a repository filter. A position or
// project that names no row invalidates the form, leaving the list unfiltered.
func WorkerFilter(search WorkerSearch, positions repository.PositionRepository, projects repository.ProjectRepository) (repository.WorkerFilter, error) {
	positionID, ok, err := resolveRef(search.Position, existsBy(positions.FindByID))
	if err != nil || !ok {
		return repository.WorkerFilter{}, err
	}

	projectID, ok, err := resolveRef(search.Project, existsBy(projects.FindByID))
	if err != nil || !ok {
		return repository.WorkerFilter{}, err
	}

	return repository.WorkerFilter{
		PositionID: positionID,
		ProjectID:  projectID,
		Username:   strings.TrimSpace(search.Username),
	}, nil
}

// TaskFilter turns the search form into a repository filter relative to actor.
// Any value outside its choices invalidates the whole form, leaving the list
// unfiltered.
func TaskFilter(actor *models.Worker, search TaskSearch, taskTypes repository.TaskTypeRepository, projects repository.ProjectRepository) (repository.TaskFilter, error) {
	filter := repository.TaskFilter{ActorID: actor.ID}

	var ok bool
	if filter.AssignedToMe, ok = parseYesNo(search.AssignedToMe); !ok {
		return repository.TaskFilter{ActorID: actor.ID}, nil
	}
	if filter.CreatedByMe, ok = parseYesNo(search.CreatedByMe); !ok {
		return repository.TaskFilter{ActorID: actor.ID}, nil
	}
	if filter.Completed, ok = parseStatus(search.Status); !ok {
		return repository.TaskFilter{ActorID: actor.ID}, nil
	}

	if raw := strings.TrimSpace(search.Priority); raw != "" {
		priority, valid := models.ParsePriority(raw)
		if !valid {
			return repository.TaskFilter{ActorID: actor.ID}, nil
		}
		filter.Priority = &priority
	}

	taskTypeID, ok, err := resolveRef(search.TaskType, existsBy(taskTypes.FindByID))
	if err != nil || !ok {
		return repository.TaskFilter{ActorID: actor.ID}, err
	}
	filter.TaskTypeID = taskTypeID

	projectID, ok, err := resolveRef(search.Project, existsBy(projects.FindByID))
	if err != nil || !ok {
		return repository.TaskFilter{ActorID: actor.ID}, err
	}
	filter.ProjectID = projectID

	filter.Name = strings.TrimSpace(search.Name)
	return filter, nil
}

func parseYesNo(raw string) (*bool, bool) {
	switch strings.TrimSpace(raw) {
	case "":
		return nil, true
	case "yes":
		v := true
		return &v, true
	case "no":
		v := false
		return &v, true
	default:
		return nil, false
	}
}

func parseStatus(raw string) (*bool, bool) {
	switch strings.TrimSpace(raw) {
	case "":
		return nil, true
	case "done":
		v := true
		return &v, true
	case "not_done":
		v := false
		return &v, true
	default:
		return nil, false
	}
}

package dto

import "github.com/yukikurage/task-manager/internal/models"

// RefDTO represents a named row in API responses
type RefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// WorkerRefDTO represents a worker referenced by another row
type WorkerRefDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// ChoiceDTO is one option of a fixed choice field
type ChoiceDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// HomeResponse carries the landing page counters
type HomeResponse struct {
	NumProjects int64 `json:"num_projects"`
	NumTasks    int64 `json:"num_tasks"`
	NumWorkers  int64 `json:"num_workers"`
}

// Conversion functions

func ToPositionRef(position models.Position) RefDTO {
	return RefDTO{ID: position.ID, Name: position.Name}
}

func ToTaskTypeRef(taskType models.TaskType) RefDTO {
	return RefDTO{ID: taskType.ID, Name: taskType.Name}
}

func ToProjectRef(project models.Project) RefDTO {
	return RefDTO{ID: project.ID, Name: project.Name}
}

func ToWorkerRef(worker models.Worker) WorkerRefDTO {
	return WorkerRefDTO{ID: worker.ID, Username: worker.Username}
}

// ToPositionRefs converts a slice of positions
func ToPositionRefs(positions []models.Position) []RefDTO {
	refs := make([]RefDTO, len(positions))
	for i, position := range positions {
		refs[i] = ToPositionRef(position)
	}
	return refs
}

// ToTaskTypeRefs converts a slice of task types
func ToTaskTypeRefs(taskTypes []models.TaskType) []RefDTO {
	refs := make([]RefDTO, len(taskTypes))
	for i, taskType := range taskTypes {
		refs[i] = ToTaskTypeRef(taskType)
	}
	return refs
}

// ToProjectRefs converts a slice of projects
func ToProjectRefs(projects []models.Project) []RefDTO {
	refs := make([]RefDTO, len(projects))
	for i, project := range projects {
		refs[i] = ToProjectRef(project)
	}
	return refs
}

// ToWorkerRefs converts a slice of workers
func ToWorkerRefs(workers []models.Worker) []WorkerRefDTO {
	refs := make([]WorkerRefDTO, len(workers))
	for i, worker := range workers {
		refs[i] = ToWorkerRef(worker)
	}
	return refs
}

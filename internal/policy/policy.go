// Package policy decides what an authenticated worker may do.
// Every predicate treats a nil principal as anonymous and denies.
package policy

import "github.com/yukikurage/task-manager/internal/models"

func isSuperuser(w *models.Worker) bool {
	return w != nil && w.IsActive && w.IsSuperuser
}

// CanManageProjects reports whether w may create, update or delete projects.
func CanManageProjects(w *models.Worker) bool {
	return isSuperuser(w)
}

// CanManageWorkers reports whether w may create, update or delete other workers.
func CanManageWorkers(w *models.Worker) bool {
	return isSuperuser(w)
}

// CanManageCatalog reports whether w may create or delete positions and task types.
func CanManageCatalog(w *models.Worker) bool {
	return isSuperuser(w)
}

// CanCreateTask reports whether w may create tasks. Any active worker may.
func CanCreateTask(w *models.Worker) bool {
	return w != nil && w.IsActive
}

// CanModifyTask reports whether w may update or delete t.
func CanModifyTask(w *models.Worker, t *models.Task) bool {
	if isSuperuser(w) {
		return true
	}
	return w != nil && w.IsActive && t.IsCreatedBy(w)
}

// CanCompleteTask reports whether w may mark t as completed.
func CanCompleteTask(w *models.Worker, t *models.Task) bool {
	if CanModifyTask(w, t) {
		return true
	}
	return w != nil && w.IsActive && t.IsAssignedTo(w)
}

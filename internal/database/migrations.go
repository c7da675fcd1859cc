package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by the list filters.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task list: "assigned to me" / "created by me" ordered by deadline
		{"tasks", "idx_tasks_assignee_deadline", "assignee_id, deadline"},
		{"tasks", "idx_tasks_created_by_deadline", "created_by_id, deadline"},
		{"tasks", "idx_tasks_project_completed", "project_id, is_completed"},

		// Worker list filters
		{"workers", "idx_workers_project_position", "project_id, position_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table), zap.String("columns", idx.columns))
	}

	return nil
}

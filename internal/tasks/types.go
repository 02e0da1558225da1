package tasks

import "github.com/mikestefanello/backlite"

// TaskType describes a maintenance job that can be triggered by name.
type TaskType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MaintenanceTypes lists the jobs exposed for manual runs.
func MaintenanceTypes() []TaskType {
	return []TaskType{
		{Name: QueueCleanupOrphanAuthors, Description: "Remove authors that are not linked to any book"},
		{Name: QueueCleanupAuditEvents, Description: "Remove audit events past the retention window"},
	}
}

// NewMaintenanceTask builds the task for a queue name, or returns false for
// an unknown name.
func NewMaintenanceTask(name string, cfg Config) (backlite.Task, bool) {
	switch name {
	case QueueCleanupOrphanAuthors:
		return CleanupOrphanAuthorsTask{}, true
	case QueueCleanupAuditEvents:
		return CleanupAuditEventsTask{RetentionDays: cfg.AuditRetentionDays}, true
	}
	return nil, false
}

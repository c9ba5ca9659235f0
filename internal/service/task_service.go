package service

import (
	"go.uber.org/zap"

	"projectdesk/internal/model"
	"projectdesk/internal/schema"
)

// TaskService manages tasks. Referenced project and employee ids are not
// checked here; a dangling reference fails at the storage layer.
type TaskService struct {
	*crud[model.Task]
}

func NewTaskService(repo Repository[model.Task], publisher EventPublisher, logger *zap.Logger) *TaskService {
	return &TaskService{&crud[model.Task]{
		name:   "task",
		title:  "Task",
		repo:   repo,
		events: notifier{publisher: publisher, logger: logger},
		logger: logger,
		setID:  func(t *model.Task, id int) { t.ID = id },
		wire:   func(t *model.Task) any { return schema.NewTaskResponse(t) },
	}}
}

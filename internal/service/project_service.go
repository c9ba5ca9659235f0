package service

import (
	"go.uber.org/zap"

	"projectdesk/internal/model"
	"projectdesk/internal/schema"
)

type ProjectService struct {
	*crud[model.Project]
}

func NewProjectService(repo Repository[model.Project], publisher EventPublisher, logger *zap.Logger) *ProjectService {
	return &ProjectService{&crud[model.Project]{
		name:   "project",
		title:  "Project",
		repo:   repo,
		events: notifier{publisher: publisher, logger: logger},
		logger: logger,
		setID:  func(p *model.Project, id int) { p.ID = id },
		wire:   func(p *model.Project) any { return schema.NewProjectResponse(p) },
	}}
}

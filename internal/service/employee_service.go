package service

import (
	"context"

	"go.uber.org/zap"

	"projectdesk/internal/model"
	"projectdesk/internal/schema"
)

type EmployeeService struct {
	*crud[model.Employee]
}

func NewEmployeeService(repo Repository[model.Employee], publisher EventPublisher, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{&crud[model.Employee]{
		name:   "employee",
		title:  "Employee",
		repo:   repo,
		events: notifier{publisher: publisher, logger: logger},
		logger: logger,
		setID:  func(e *model.Employee, id int) { e.ID = id },
		wire:   func(e *model.Employee) any { return schema.NewEmployeeResponse(e) },
	}}
}

// Patch loads the employee, merges the provided fields over it and saves
// the result. The read and the write are separate statements.
func (s *EmployeeService) Patch(ctx context.Context, id int, patch schema.EmployeePatch) (*model.Employee, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)
	return s.save(ctx, id, current)
}

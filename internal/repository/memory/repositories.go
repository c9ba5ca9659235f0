package memory

import (
	"context"
	"fmt"

	"projectdesk/internal/model"
	"projectdesk/internal/repository"
)

type ProjectRepository struct{ s *MemoryStorage }

func (r *ProjectRepository) List(_ context.Context) ([]model.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.projects.list(), nil
}

func (r *ProjectRepository) Get(_ context.Context, id int) (*model.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProjectRepository) Insert(_ context.Context, p *model.Project) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.projects.insert(*p, func(row *model.Project, id int) { row.ID = id }), nil
}

func (r *ProjectRepository) Update(_ context.Context, p *model.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.projects.update(p.ID, *p) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects.get(id); !ok {
		return repository.ErrNotFound
	}
	if r.s.referenced(func(t model.Task) bool { return t.ProjectID == id }) {
		return fmt.Errorf("%w: project %d is referenced by tasks", repository.ErrConstraintViolation, id)
	}
	r.s.projects.delete(id)
	return nil
}

type EmployeeRepository struct{ s *MemoryStorage }

func (r *EmployeeRepository) List(_ context.Context) ([]model.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.employees.list(), nil
}

func (r *EmployeeRepository) Get(_ context.Context, id int) (*model.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *EmployeeRepository) Insert(_ context.Context, e *model.Employee) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.employees.insert(*e, func(row *model.Employee, id int) { row.ID = id }), nil
}

func (r *EmployeeRepository) Update(_ context.Context, e *model.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.employees.update(e.ID, *e) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees.get(id); !ok {
		return repository.ErrNotFound
	}
	if r.s.referenced(func(t model.Task) bool { return t.EmployeeID == id }) {
		return fmt.Errorf("%w: employee %d is referenced by tasks", repository.ErrConstraintViolation, id)
	}
	r.s.employees.delete(id)
	return nil
}

type TaskRepository struct{ s *MemoryStorage }

func (r *TaskRepository) List(_ context.Context) ([]model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.tasks.list(), nil
}

func (r *TaskRepository) Get(_ context.Context, id int) (*model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *TaskRepository) Insert(_ context.Context, t *model.Task) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTaskRefs(t); err != nil {
		return 0, err
	}
	return r.s.tasks.insert(*t, func(row *model.Task, id int) { row.ID = id }), nil
}

func (r *TaskRepository) Update(_ context.Context, t *model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks.get(t.ID); !ok {
		return repository.ErrNotFound
	}
	if err := r.s.checkTaskRefs(t); err != nil {
		return err
	}
	r.s.tasks.update(t.ID, *t)
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.tasks.delete(id) {
		return repository.ErrNotFound
	}
	return nil
}

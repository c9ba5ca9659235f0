// Package memory is an in-process storage driver with the same contract as
// the PostgreSQL repositories, including id assignment, foreign keys and
// no cascade delete. Data is lost on restart.
package memory

import (
	"fmt"
	"sync"

	"projectdesk/internal/model"
	"projectdesk/internal/repository"
)

// table keeps rows in insertion order, which is the list order.
type table[T any] struct {
	nextID int
	rows   map[int]T
	order  []int
}

func newTable[T any]() *table[T] {
	return &table[T]{nextID: 1, rows: make(map[int]T)}
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) get(id int) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) insert(row T, setID func(*T, int)) int {
	id := t.nextID
	t.nextID++
	setID(&row, id)
	t.rows[id] = row
	t.order = append(t.order, id)
	return id
}

func (t *table[T]) update(id int, row T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *table[T]) delete(id int) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

type MemoryStorage struct {
	mu        sync.RWMutex
	projects  *table[model.Project]
	employees *table[model.Employee]
	tasks     *table[model.Task]
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		projects:  newTable[model.Project](),
		employees: newTable[model.Employee](),
		tasks:     newTable[model.Task](),
	}
}

func (s *MemoryStorage) Projects() *ProjectRepository { return &ProjectRepository{s: s} }
func (s *MemoryStorage) Employees() *EmployeeRepository { return &EmployeeRepository{s: s} }
func (s *MemoryStorage) Tasks() *TaskRepository { return &TaskRepository{s: s} }

// checkTaskRefs must be called with s.mu held.
func (s *MemoryStorage) checkTaskRefs(t *model.Task) error {
	if _, ok := s.projects.get(t.ProjectID); !ok {
		return fmt.Errorf("%w: project %d does not exist", repository.ErrConstraintViolation, t.ProjectID)
	}
	if _, ok := s.employees.get(t.EmployeeID); !ok {
		return fmt.Errorf("%w: employee %d does not exist", repository.ErrConstraintViolation, t.EmployeeID)
	}
	return nil
}

// referenced reports whether any task points at the given project or
// employee. Must be called with s.mu held.
func (s *MemoryStorage) referenced(match func(model.Task) bool) bool {
	for _, t := range s.tasks.rows {
		if match(t) {
			return true
		}
	}
	return false
}

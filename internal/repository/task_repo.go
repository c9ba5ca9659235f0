package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectdesk/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	defer observe("list", "tasks", timeNow())

	query := `
        SELECT id, project_id, employee_id, title, description, deadline, status
        FROM tasks
    `
	tasks := []model.Task{}
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var t model.Task
			if err := rows.Scan(
				&t.ID,
				&t.ProjectID,
				&t.EmployeeID,
				&t.Title,
				&t.Description,
				&t.Deadline,
				&t.Status,
			); err != nil {
				return err
			}
			tasks = append(tasks, t)
		}
		return rows.Err()
	})
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Tasks listed", zap.Int("count", len(tasks)))
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int) (*model.Task, error) {
	defer observe("get", "tasks", timeNow())

	query := `
        SELECT id, project_id, employee_id, title, description, deadline, status
        FROM tasks
        WHERE id = $1
    `
	var t model.Task
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, id).Scan(
			&t.ID,
			&t.ProjectID,
			&t.EmployeeID,
			&t.Title,
			&t.Description,
			&t.Deadline,
			&t.Status,
		)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get task", zap.Int("task_id", id), zap.Error(err))
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) (int, error) {
	defer observe("insert", "tasks", timeNow())

	r.logger.Debug("Inserting task",
		zap.Int("project_id", t.ProjectID),
		zap.Int("employee_id", t.EmployeeID),
		zap.String("title", t.Title),
	)
	query := `
        INSERT INTO tasks (project_id, employee_id, title, description, deadline, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id int
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query,
			t.ProjectID,
			t.EmployeeID,
			t.Title,
			t.Description,
			t.Deadline,
			t.Status,
		).Scan(&id)
	})
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("project_id", t.ProjectID),
			zap.Int("employee_id", t.EmployeeID),
		)
		return 0, err
	}

	r.logger.Info("Task inserted successfully", zap.Int("task_id", id))
	return id, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *model.Task) error {
	defer observe("update", "tasks", timeNow())

	query := `
        UPDATE tasks
        SET project_id = $2, employee_id = $3, title = $4, description = $5, deadline = $6, status = $7
        WHERE id = $1
    `
	var affected int64
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, query,
			t.ID,
			t.ProjectID,
			t.EmployeeID,
			t.Title,
			t.Description,
			t.Deadline,
			t.Status,
		)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to update task", zap.Int("task_id", t.ID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	defer observe("delete", "tasks", timeNow())

	var affected int64
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to delete task", zap.Int("task_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.logger.Info("Task deleted", zap.Int("task_id", id))
	return nil
}

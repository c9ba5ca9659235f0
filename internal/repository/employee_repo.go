package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectdesk/internal/model"
)

type EmployeeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEmployeeRepository(db *pgxpool.Pool, logger *zap.Logger) *EmployeeRepository {
	return &EmployeeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	defer observe("list", "employees", timeNow())

	query := `
        SELECT id, name, email, phone, post
        FROM employees
    `
	employees := []model.Employee{}
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e model.Employee
			if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Post); err != nil {
				return err
			}
			employees = append(employees, e)
		}
		return rows.Err()
	})
	if err != nil {
		r.logger.Error("Failed to list employees", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Employees listed", zap.Int("count", len(employees)))
	return employees, nil
}

func (r *EmployeeRepository) Get(ctx context.Context, id int) (*model.Employee, error) {
	defer observe("get", "employees", timeNow())

	query := `
        SELECT id, name, email, phone, post
        FROM employees
        WHERE id = $1
    `
	var e model.Employee
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Post)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get employee", zap.Int("employee_id", id), zap.Error(err))
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Insert(ctx context.Context, e *model.Employee) (int, error) {
	defer observe("insert", "employees", timeNow())

	query := `
        INSERT INTO employees (name, email, phone, post)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	var id int
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, e.Name, e.Email, e.Phone, e.Post).Scan(&id)
	})
	if err != nil {
		r.logger.Error("Failed to insert employee", zap.String("email", e.Email), zap.Error(err))
		return 0, err
	}

	r.logger.Info("Employee inserted successfully", zap.Int("employee_id", id))
	return id, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *model.Employee) error {
	defer observe("update", "employees", timeNow())

	query := `
        UPDATE employees
        SET name = $2, email = $3, phone = $4, post = $5
        WHERE id = $1
    `
	var affected int64
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, query, e.ID, e.Name, e.Email, e.Phone, e.Post)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to update employee", zap.Int("employee_id", e.ID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	defer observe("delete", "employees", timeNow())

	var affected int64
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to delete employee", zap.Int("employee_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.logger.Info("Employee deleted", zap.Int("employee_id", id))
	return nil
}

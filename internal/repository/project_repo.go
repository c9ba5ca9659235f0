package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectdesk/internal/model"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	defer observe("list", "projects", timeNow())

	query := `
        SELECT id, name, description, init_date, finish_date
        FROM projects
    `
	projects := []model.Project{}
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p model.Project
			if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.InitDate, &p.FinishDate); err != nil {
				return err
			}
			projects = append(projects, p)
		}
		return rows.Err()
	})
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Projects listed", zap.Int("count", len(projects)))
	return projects, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int) (*model.Project, error) {
	defer observe("get", "projects", timeNow())

	query := `
        SELECT id, name, description, init_date, finish_date
        FROM projects
        WHERE id = $1
    `
	var p model.Project
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.InitDate, &p.FinishDate)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get project", zap.Int("project_id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) (int, error) {
	defer observe("insert", "projects", timeNow())

	query := `
        INSERT INTO projects (name, description, init_date, finish_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	var id int
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, p.Name, p.Description, p.InitDate, p.FinishDate).Scan(&id)
	})
	if err != nil {
		r.logger.Error("Failed to insert project", zap.String("name", p.Name), zap.Error(err))
		return 0, err
	}

	r.logger.Info("Project inserted successfully", zap.Int("project_id", id))
	return id, nil
}

// Update overwrites every column of the row identified by p.ID.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	defer observe("update", "projects", timeNow())

	query := `
        UPDATE projects
        SET name = $2, description = $3, init_date = $4, finish_date = $5
        WHERE id = $1
    `
	var affected int64
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, query, p.ID, p.Name, p.Description, p.InitDate, p.FinishDate)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int("project_id", p.ID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	defer observe("delete", "projects", timeNow())

	var affected int64
	err := withConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Int("project_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.logger.Info("Project deleted", zap.Int("project_id", id))
	return nil
}

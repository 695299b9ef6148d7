package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (s *Storage) CreateProject(ctx context.Context, p *Project) error {
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	query := `
        INSERT INTO projects
            (id, name, description, project_type, budget_range, start_date, end_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.ProjectType, p.BudgetRange, p.StartDate, p.EndDate, p.Status).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (s *Storage) GetProjects(ctx context.Context, limit int) ([]Project, error) {
	projects := []Project{}
	query := `SELECT * FROM projects ORDER BY name ASC LIMIT $1`
	err := s.db.SelectContext(ctx, &projects, query, limit)
	return projects, err
}

func (s *Storage) GetProjectByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	p := &Project{}
	err := s.db.GetContext(ctx, p, `SELECT * FROM projects WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Storage) UpdateProject(ctx context.Context, id uuid.UUID, in UpdateProject) (*Project, error) {
	b := setBuilder{cols: []string{"updated_at = NOW()"}}
	if in.Name != nil {
		b.add("name", *in.Name)
	}
	if in.Description != nil {
		b.add("description", *in.Description)
	}
	if in.ProjectType != nil {
		b.add("project_type", *in.ProjectType)
	}
	if in.BudgetRange != nil {
		b.add("budget_range", *in.BudgetRange)
	}
	if in.StartDate != nil {
		b.add("start_date", *in.StartDate)
	}
	if in.EndDate != nil {
		b.add("end_date", *in.EndDate)
	}
	if in.Status != nil {
		b.add("status", *in.Status)
	}
	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $%d RETURNING *`,
		strings.Join(b.cols, ", "), b.arg(id))
	p := &Project{}
	err := s.db.GetContext(ctx, p, query, b.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Storage) DeleteProject(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) GetActiveProjects(ctx context.Context) ([]Project, error) {
	projects := []Project{}
	query := `SELECT * FROM projects WHERE status = $1 ORDER BY name ASC`
	err := s.db.SelectContext(ctx, &projects, query, ProjectStatusActive)
	return projects, err
}

func (s *Storage) SearchProjects(ctx context.Context, query string) ([]Project, error) {
	projects := []Project{}
	q := `
        SELECT * FROM projects
        WHERE name ILIKE $1
           OR COALESCE(description, '') ILIKE $1
           OR COALESCE(project_type, '') ILIKE $1
        ORDER BY name ASC`
	err := s.db.SelectContext(ctx, &projects, q, "%"+query+"%")
	return projects, err
}

func (s *Storage) ProjectsByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	projects := []Project{}
	query := `SELECT * FROM projects WHERE id = ANY($1::uuid[])`
	err := s.db.SelectContext(ctx, &projects, query, pq.Array(ids))
	return projects, err
}

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

func (s *Storage) CreateContractor(ctx context.Context, c *Contractor) error {
	c.ID = uuid.New()
	query := `
        INSERT INTO contractors (id, name, email, phone, certification_level)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.CertificationLevel).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *Storage) GetContractors(ctx context.Context, limit int) ([]Contractor, error) {
	contractors := []Contractor{}
	query := `SELECT * FROM contractors ORDER BY name ASC LIMIT $1`
	err := s.db.SelectContext(ctx, &contractors, query, limit)
	return contractors, err
}

func (s *Storage) GetContractorByID(ctx context.Context, id uuid.UUID) (*Contractor, error) {
	c := &Contractor{}
	err := s.db.GetContext(ctx, c, `SELECT * FROM contractors WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) GetContractorByEmail(ctx context.Context, email string) (*Contractor, error) {
	c := &Contractor{}
	err := s.db.GetContext(ctx, c, `SELECT * FROM contractors WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) UpdateContractor(ctx context.Context, id uuid.UUID, in UpdateContractor) (*Contractor, error) {
	b := setBuilder{cols: []string{"updated_at = NOW()"}}
	if in.Name != nil {
		b.add("name", *in.Name)
	}
	if in.Email != nil {
		b.add("email", *in.Email)
	}
	if in.Phone != nil {
		b.add("phone", *in.Phone)
	}
	if in.CertificationLevel != nil {
		b.add("certification_level", *in.CertificationLevel)
	}
	query := fmt.Sprintf(`UPDATE contractors SET %s WHERE id = $%d RETURNING *`,
		strings.Join(b.cols, ", "), b.arg(id))
	c := &Contractor{}
	err := s.db.GetContext(ctx, c, query, b.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) DeleteContractor(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contractors WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) SearchContractors(ctx context.Context, query string) ([]Contractor, error) {
	contractors := []Contractor{}
	q := `
        SELECT * FROM contractors
        WHERE name ILIKE $1
           OR email ILIKE $1
           OR COALESCE(phone, '') ILIKE $1
           OR COALESCE(certification_level, '') ILIKE $1
        ORDER BY name ASC`
	err := s.db.SelectContext(ctx, &contractors, q, "%"+query+"%")
	return contractors, err
}

func (s *Storage) ContractorsByIDs(ctx context.Context, ids []uuid.UUID) ([]Contractor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	contractors := []Contractor{}
	query := `SELECT * FROM contractors WHERE id = ANY($1::uuid[])`
	err := s.db.SelectContext(ctx, &contractors, query, pq.Array(ids))
	return contractors, err
}

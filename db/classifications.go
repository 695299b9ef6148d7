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

func (s *Storage) CreateClassification(ctx context.Context, c *Classification) error {
	c.ID = uuid.New()
	query := `
        INSERT INTO classifications (id, name, category, description)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Category, c.Description).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *Storage) GetClassifications(ctx context.Context, limit int) ([]Classification, error) {
	out := []Classification{}
	query := `SELECT * FROM classifications ORDER BY category ASC, name ASC LIMIT $1`
	err := s.db.SelectContext(ctx, &out, query, limit)
	return out, err
}

func (s *Storage) GetClassificationByID(ctx context.Context, id uuid.UUID) (*Classification, error) {
	c := &Classification{}
	err := s.db.GetContext(ctx, c, `SELECT * FROM classifications WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) GetClassificationsByCategory(ctx context.Context, category string) ([]Classification, error) {
	out := []Classification{}
	query := `SELECT * FROM classifications WHERE category = $1 ORDER BY name ASC`
	err := s.db.SelectContext(ctx, &out, query, category)
	return out, err
}

func (s *Storage) UpdateClassification(ctx context.Context, id uuid.UUID, in UpdateClassification) (*Classification, error) {
	b := setBuilder{cols: []string{"updated_at = NOW()"}}
	if in.Name != nil {
		b.add("name", *in.Name)
	}
	if in.Category != nil {
		b.add("category", *in.Category)
	}
	if in.Description != nil {
		b.add("description", *in.Description)
	}
	query := fmt.Sprintf(`UPDATE classifications SET %s WHERE id = $%d RETURNING *`,
		strings.Join(b.cols, ", "), b.arg(id))
	c := &Classification{}
	err := s.db.GetContext(ctx, c, query, b.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) DeleteClassification(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM classifications WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) ClassificationsByIDs(ctx context.Context, ids []uuid.UUID) ([]Classification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := []Classification{}
	query := `SELECT * FROM classifications WHERE id = ANY($1::uuid[])`
	err := s.db.SelectContext(ctx, &out, query, pq.Array(ids))
	return out, err
}

// Bid classifications (join rows)

func (s *Storage) AddBidClassification(ctx context.Context, bc *BidClassification) error {
	bc.ID = uuid.New()
	query := `
        INSERT INTO bid_classifications (id, bid_id, classification_id, confidence_score)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`
	return s.db.QueryRowContext(ctx, query,
		bc.ID, bc.BidID, bc.ClassificationID, bc.ConfidenceScore).
		Scan(&bc.CreatedAt)
}

func (s *Storage) GetBidClassifications(ctx context.Context, bidID uuid.UUID) ([]ClassifiedTag, error) {
	rows := []struct {
		BidClassification
		Classification Classification `db:"classification"`
	}{}
	query := `
        SELECT bc.*,
               c.id AS "classification.id",
               c.name AS "classification.name",
               c.category AS "classification.category",
               c.description AS "classification.description",
               c.created_at AS "classification.created_at",
               c.updated_at AS "classification.updated_at"
        FROM bid_classifications bc
        JOIN classifications c ON bc.classification_id = c.id
        WHERE bc.bid_id = $1`
	if err := s.db.SelectContext(ctx, &rows, query, bidID); err != nil {
		return nil, err
	}
	tags := make([]ClassifiedTag, 0, len(rows))
	for _, r := range rows {
		tags = append(tags, ClassifiedTag{BidClassification: r.BidClassification, Classification: r.Classification})
	}
	return tags, nil
}

func (s *Storage) RemoveBidClassification(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bid_classifications WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) BidClassificationsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]BidClassification, error) {
	if len(bidIDs) == 0 {
		return nil, nil
	}
	out := []BidClassification{}
	query := `SELECT * FROM bid_classifications WHERE bid_id = ANY($1::uuid[])`
	err := s.db.SelectContext(ctx, &out, query, pq.Array(bidIDs))
	return out, err
}

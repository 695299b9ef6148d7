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

func (s *Storage) CreateContract(ctx context.Context, c *Contract) error {
	c.ID = uuid.New()
	if c.Status == "" {
		c.Status = ContractStatusDraft
	}
	query := `
        INSERT INTO contracts
            (id, bid_id, contract_number, contract_amount, start_date, end_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		c.ID, c.BidID, c.ContractNumber, c.ContractAmount, c.StartDate, c.EndDate, c.Status).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *Storage) GetContracts(ctx context.Context, limit int) ([]Contract, error) {
	contracts := []Contract{}
	query := `SELECT * FROM contracts ORDER BY created_at DESC LIMIT $1`
	err := s.db.SelectContext(ctx, &contracts, query, limit)
	return contracts, err
}

func (s *Storage) GetContractByID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	c := &Contract{}
	err := s.db.GetContext(ctx, c, `SELECT * FROM contracts WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) GetContractByBidID(ctx context.Context, bidID uuid.UUID) (*Contract, error) {
	c := &Contract{}
	err := s.db.GetContext(ctx, c, `SELECT * FROM contracts WHERE bid_id=$1 LIMIT 1`, bidID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) UpdateContract(ctx context.Context, id uuid.UUID, in UpdateContract) (*Contract, error) {
	b := setBuilder{cols: []string{"updated_at = NOW()"}}
	if in.ContractNumber != nil {
		b.add("contract_number", *in.ContractNumber)
	}
	if in.ContractAmount != nil {
		b.add("contract_amount", *in.ContractAmount)
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
	query := fmt.Sprintf(`UPDATE contracts SET %s WHERE id = $%d RETURNING *`,
		strings.Join(b.cols, ", "), b.arg(id))
	c := &Contract{}
	err := s.db.GetContext(ctx, c, query, b.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) DeleteContract(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contracts WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) ContractsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]Contract, error) {
	if len(bidIDs) == 0 {
		return nil, nil
	}
	contracts := []Contract{}
	query := `SELECT * FROM contracts WHERE bid_id = ANY($1::uuid[])`
	err := s.db.SelectContext(ctx, &contracts, query, pq.Array(bidIDs))
	return contracts, err
}

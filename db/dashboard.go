package db

import (
	"context"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func (s *Storage) CountBidsByStatus(ctx context.Context, statuses []string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM bids WHERE status = ANY($1)`
	err := s.db.GetContext(ctx, &count, query, pq.Array(statuses))
	return count, err
}

func (s *Storage) CountUnprocessedEmails(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM email_records WHERE is_processed = FALSE`
	err := s.db.GetContext(ctx, &count, query)
	return count, err
}

func (s *Storage) CountProjectsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM projects WHERE status = $1`
	err := s.db.GetContext(ctx, &count, query, status)
	return count, err
}

// SumContractAmounts totals contract_amount over all contracts; NULL amounts
// count as zero.
func (s *Storage) SumContractAmounts(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(contract_amount), 0) FROM contracts`
	err := s.db.GetContext(ctx, &sum, query)
	return sum, err
}

func (s *Storage) EmailTypeCounts(ctx context.Context) ([]EmailTypeCount, error) {
	counts := []EmailTypeCount{}
	query := `
        SELECT email_type, COUNT(*) AS count
        FROM email_records
        GROUP BY email_type
        ORDER BY count DESC`
	err := s.db.SelectContext(ctx, &counts, query)
	return counts, err
}

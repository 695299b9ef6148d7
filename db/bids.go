package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (s *Storage) CreateBid(ctx context.Context, b *Bid) error {
	b.ID = uuid.New()
	if b.SubmissionDate.IsZero() {
		b.SubmissionDate = time.Now()
	}
	if b.Status == "" {
		b.Status = BidStatusSubmitted
	}
	query := `
        INSERT INTO bids
            (id, project_id, contractor_id, email_record_id, bid_amount,
             submission_date, notes, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		b.ID, b.ProjectID, b.ContractorID, b.EmailRecordID, b.BidAmount,
		b.SubmissionDate, b.Notes, b.Status).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (s *Storage) GetBids(ctx context.Context, limit int) ([]Bid, error) {
	bids := []Bid{}
	query := `SELECT * FROM bids ORDER BY submission_date DESC LIMIT $1`
	err := s.db.SelectContext(ctx, &bids, query, limit)
	return bids, err
}

func (s *Storage) GetBidByID(ctx context.Context, id uuid.UUID) (*Bid, error) {
	b := &Bid{}
	err := s.db.GetContext(ctx, b, `SELECT * FROM bids WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Storage) UpdateBid(ctx context.Context, id uuid.UUID, in UpdateBid) (*Bid, error) {
	b := setBuilder{cols: []string{"updated_at = NOW()"}}
	if in.ProjectID != nil {
		b.add("project_id", *in.ProjectID)
	}
	if in.ContractorID != nil {
		b.add("contractor_id", *in.ContractorID)
	}
	if in.EmailRecordID != nil {
		b.add("email_record_id", *in.EmailRecordID)
	}
	if in.BidAmount != nil {
		b.add("bid_amount", *in.BidAmount)
	}
	if in.SubmissionDate != nil {
		b.add("submission_date", *in.SubmissionDate)
	}
	if in.Notes != nil {
		b.add("notes", *in.Notes)
	}
	if in.Status != nil {
		b.add("status", *in.Status)
	}
	query := fmt.Sprintf(`UPDATE bids SET %s WHERE id = $%d RETURNING *`,
		strings.Join(b.cols, ", "), b.arg(id))
	bid := &Bid{}
	err := s.db.GetContext(ctx, bid, query, b.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return bid, nil
}

func (s *Storage) DeleteBid(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bids WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) GetBidsByProjectID(ctx context.Context, projectID uuid.UUID) ([]Bid, error) {
	bids := []Bid{}
	query := `SELECT * FROM bids WHERE project_id = $1 ORDER BY submission_date DESC`
	err := s.db.SelectContext(ctx, &bids, query, projectID)
	return bids, err
}

func (s *Storage) GetBidsByContractorID(ctx context.Context, contractorID uuid.UUID) ([]Bid, error) {
	bids := []Bid{}
	query := `SELECT * FROM bids WHERE contractor_id = $1 ORDER BY submission_date DESC`
	err := s.db.SelectContext(ctx, &bids, query, contractorID)
	return bids, err
}

// FilterBids selects bids whose project or contractor is in the given id sets,
// or whose notes contain the query. Empty id sets match nothing: ANY over an
// empty array is false, so that branch of the OR never degenerates into a
// full-table match.
func (s *Storage) FilterBids(ctx context.Context, projectIDs, contractorIDs []uuid.UUID, query string) ([]Bid, error) {
	bids := []Bid{}
	q := `
        SELECT * FROM bids
        WHERE project_id = ANY($1::uuid[])
           OR contractor_id = ANY($2::uuid[])
           OR COALESCE(notes, '') ILIKE $3
        ORDER BY submission_date DESC`
	err := s.db.SelectContext(ctx, &bids, q,
		pq.Array(projectIDs), pq.Array(contractorIDs), "%"+query+"%")
	return bids, err
}

// Bid documents

func (s *Storage) AddBidDocument(ctx context.Context, d *BidDocument) error {
	d.ID = uuid.New()
	query := `
        INSERT INTO bid_documents (id, bid_id, document_name, document_url, document_type)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING uploaded_at`
	return s.db.QueryRowContext(ctx, query,
		d.ID, d.BidID, d.DocumentName, d.DocumentURL, d.DocumentType).
		Scan(&d.UploadedAt)
}

func (s *Storage) GetBidDocuments(ctx context.Context, bidID uuid.UUID) ([]BidDocument, error) {
	docs := []BidDocument{}
	query := `SELECT * FROM bid_documents WHERE bid_id = $1 ORDER BY uploaded_at DESC`
	err := s.db.SelectContext(ctx, &docs, query, bidID)
	return docs, err
}

func (s *Storage) DeleteBidDocument(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bid_documents WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) BidDocumentsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]BidDocument, error) {
	if len(bidIDs) == 0 {
		return nil, nil
	}
	docs := []BidDocument{}
	query := `SELECT * FROM bid_documents WHERE bid_id = ANY($1::uuid[])`
	err := s.db.SelectContext(ctx, &docs, query, pq.Array(bidIDs))
	return docs, err
}

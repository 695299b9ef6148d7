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

func (s *Storage) CreateEmailRecord(ctx context.Context, e *EmailRecord) error {
	e.ID = uuid.New()
	if e.ReceivedDate.IsZero() {
		e.ReceivedDate = time.Now()
	}
	if e.ProcessingStatus == "" {
		e.ProcessingStatus = ProcessingUnprocessed
	}
	query := `
        INSERT INTO email_records
            (id, subject, sender_email, sender_name, recipient_email, received_date,
             body_text, email_type, is_processed, processing_status, extracted_data)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		e.ID, e.Subject, e.SenderEmail, e.SenderName, e.RecipientEmail, e.ReceivedDate,
		e.BodyText, e.EmailType, e.IsProcessed, e.ProcessingStatus, e.ExtractedData).
		Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (s *Storage) GetEmailRecords(ctx context.Context, limit int) ([]EmailRecord, error) {
	emails := []EmailRecord{}
	query := `SELECT * FROM email_records ORDER BY received_date DESC LIMIT $1`
	err := s.db.SelectContext(ctx, &emails, query, limit)
	return emails, err
}

func (s *Storage) GetEmailRecordByID(ctx context.Context, id uuid.UUID) (*EmailRecord, error) {
	e := &EmailRecord{}
	err := s.db.GetContext(ctx, e, `SELECT * FROM email_records WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Storage) UpdateEmailRecord(ctx context.Context, id uuid.UUID, in UpdateEmailRecord) (*EmailRecord, error) {
	b := setBuilder{cols: []string{"updated_at = NOW()"}}
	if in.Subject != nil {
		b.add("subject", *in.Subject)
	}
	if in.SenderEmail != nil {
		b.add("sender_email", *in.SenderEmail)
	}
	if in.SenderName != nil {
		b.add("sender_name", *in.SenderName)
	}
	if in.RecipientEmail != nil {
		b.add("recipient_email", *in.RecipientEmail)
	}
	if in.ReceivedDate != nil {
		b.add("received_date", *in.ReceivedDate)
	}
	if in.BodyText != nil {
		b.add("body_text", *in.BodyText)
	}
	if in.EmailType != nil {
		b.add("email_type", *in.EmailType)
	}
	if in.IsProcessed != nil {
		b.add("is_processed", *in.IsProcessed)
	}
	if in.ProcessingStatus != nil {
		b.add("processing_status", *in.ProcessingStatus)
	}
	if in.ExtractedData != nil {
		b.add("extracted_data", *in.ExtractedData)
	}
	query := fmt.Sprintf(`UPDATE email_records SET %s WHERE id = $%d RETURNING *`,
		strings.Join(b.cols, ", "), b.arg(id))
	e := &EmailRecord{}
	err := s.db.GetContext(ctx, e, query, b.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Storage) GetUnprocessedEmails(ctx context.Context) ([]EmailRecord, error) {
	emails := []EmailRecord{}
	query := `SELECT * FROM email_records WHERE is_processed = FALSE ORDER BY received_date DESC`
	err := s.db.SelectContext(ctx, &emails, query)
	return emails, err
}

func (s *Storage) SearchEmails(ctx context.Context, query string) ([]EmailRecord, error) {
	emails := []EmailRecord{}
	q := `
        SELECT * FROM email_records
        WHERE subject ILIKE $1
           OR sender_email ILIKE $1
           OR COALESCE(sender_name, '') ILIKE $1
           OR COALESCE(body_text, '') ILIKE $1
        ORDER BY received_date DESC`
	err := s.db.SelectContext(ctx, &emails, q, "%"+query+"%")
	return emails, err
}

func (s *Storage) EmailRecordsByIDs(ctx context.Context, ids []uuid.UUID) ([]EmailRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	emails := []EmailRecord{}
	query := `SELECT * FROM email_records WHERE id = ANY($1::uuid[])`
	err := s.db.SelectContext(ctx, &emails, query, pq.Array(ids))
	return emails, err
}

package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Email type tags assigned at ingestion.
const (
	EmailTypeBidSubmission   = "bid_submission"
	EmailTypeBidInquiry      = "bid_inquiry"
	EmailTypeFollowUp        = "follow_up"
	EmailTypeContractRelated = "contract_related"
	EmailTypeProjectUpdate   = "project_update"
	EmailTypeGeneralInquiry  = "general_inquiry"
	EmailTypeUnknown         = "unknown"
)

// Email processing states.
const (
	ProcessingUnprocessed = "unprocessed"
	ProcessingProcessing  = "processing"
	ProcessingProcessed   = "processed"
	ProcessingFailed      = "failed"
	ProcessingNeedsReview = "needs_review"
)

// Bid lifecycle states.
const (
	BidStatusSubmitted       = "submitted"
	BidStatusUnderReview     = "under_review"
	BidStatusApproved        = "approved"
	BidStatusRejected        = "rejected"
	BidStatusContractPending = "contract_pending"
	BidStatusContractSigned  = "contract_signed"
	BidStatusWithdrawn       = "withdrawn"
)

// Project states.
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
	ProjectStatusOnHold    = "on_hold"
)

// Contract states.
const (
	ContractStatusDraft      = "draft"
	ContractStatusSent       = "sent"
	ContractStatusSigned     = "signed"
	ContractStatusActive     = "active"
	ContractStatusExpired    = "expired"
	ContractStatusTerminated = "terminated"
)

type EmailRecord struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Subject          string    `db:"subject" json:"subject"`
	SenderEmail      string    `db:"sender_email" json:"senderEmail"`
	SenderName       *string   `db:"sender_name" json:"senderName"`
	RecipientEmail   string    `db:"recipient_email" json:"recipientEmail"`
	ReceivedDate     time.Time `db:"received_date" json:"receivedDate"`
	BodyText         *string   `db:"body_text" json:"bodyText"`
	EmailType        *string   `db:"email_type" json:"emailType"`
	IsProcessed      bool      `db:"is_processed" json:"isProcessed"`
	ProcessingStatus string    `db:"processing_status" json:"processingStatus"`
	ExtractedData    *string   `db:"extracted_data" json:"extractedData"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

type Contractor struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Email              string    `db:"email" json:"email"`
	Phone              *string   `db:"phone" json:"phone"`
	CertificationLevel *string   `db:"certification_level" json:"certificationLevel"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

type Project struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	ProjectType *string   `db:"project_type" json:"projectType"`
	BudgetRange *string   `db:"budget_range" json:"budgetRange"`
	StartDate   *string   `db:"start_date" json:"startDate"`
	EndDate     *string   `db:"end_date" json:"endDate"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type Bid struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	ProjectID      *uuid.UUID          `db:"project_id" json:"projectId"`
	ContractorID   *uuid.UUID          `db:"contractor_id" json:"contractorId"`
	EmailRecordID  *uuid.UUID          `db:"email_record_id" json:"emailRecordId"`
	BidAmount      decimal.NullDecimal `db:"bid_amount" json:"bidAmount"`
	SubmissionDate time.Time           `db:"submission_date" json:"submissionDate"`
	Notes          *string             `db:"notes" json:"notes"`
	Status         string              `db:"status" json:"status"`
	CreatedAt      time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updatedAt"`
}

type Classification struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Category    string    `db:"category" json:"category"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type BidClassification struct {
	ID               uuid.UUID           `db:"id" json:"id"`
	BidID            uuid.UUID           `db:"bid_id" json:"bidId"`
	ClassificationID uuid.UUID           `db:"classification_id" json:"classificationId"`
	ConfidenceScore  decimal.NullDecimal `db:"confidence_score" json:"confidenceScore"`
	CreatedAt        time.Time           `db:"created_at" json:"createdAt"`
}

type BidDocument struct {
	ID           uuid.UUID `db:"id" json:"id"`
	BidID        uuid.UUID `db:"bid_id" json:"bidId"`
	DocumentName string    `db:"document_name" json:"documentName"`
	DocumentURL  string    `db:"document_url" json:"documentUrl"`
	DocumentType *string   `db:"document_type" json:"documentType"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploadedAt"`
}

type Contract struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	BidID          uuid.UUID           `db:"bid_id" json:"bidId"`
	ContractNumber *string             `db:"contract_number" json:"contractNumber"`
	ContractAmount decimal.NullDecimal `db:"contract_amount" json:"contractAmount"`
	StartDate      *string             `db:"start_date" json:"startDate"`
	EndDate        *string             `db:"end_date" json:"endDate"`
	Status         string              `db:"status" json:"status"`
	CreatedAt      time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updatedAt"`
}

// ClassifiedTag is a bid-classification join row paired with its taxonomy entry.
type ClassifiedTag struct {
	BidClassification
	Classification Classification `json:"classification"`
}

// BidView is the denormalized projection of a bid with every related entity
// resolved. Absent foreign keys yield nil relations, never defaults.
// Contracts stays a slice: the schema allows more than one contract per bid.
type BidView struct {
	Bid
	Project     *Project        `json:"project,omitempty"`
	Contractor  *Contractor     `json:"contractor,omitempty"`
	EmailRecord *EmailRecord    `json:"emailRecord,omitempty"`
	Tags        []ClassifiedTag `json:"classifications"`
	Documents   []BidDocument   `json:"documents"`
	Contracts   []Contract      `json:"contracts"`
}

type DashboardSummary struct {
	ActiveBids         int     `json:"activeBids"`
	UnprocessedEmails  int     `json:"unprocessedEmails"`
	ActiveProjects     int     `json:"activeProjects"`
	TotalContractValue float64 `json:"totalContractValue"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// EmailTypeCount is a raw histogram row from the store, before the
// aggregator normalizes missing types.
type EmailTypeCount struct {
	EmailType *string `db:"email_type"`
	Count     int     `db:"count"`
}

// Partial-update inputs. Nil fields keep their prior values.

type UpdateEmailRecord struct {
	Subject          *string    `json:"subject"`
	SenderEmail      *string    `json:"senderEmail"`
	SenderName       *string    `json:"senderName"`
	RecipientEmail   *string    `json:"recipientEmail"`
	ReceivedDate     *time.Time `json:"receivedDate"`
	BodyText         *string    `json:"bodyText"`
	EmailType        *string    `json:"emailType"`
	IsProcessed      *bool      `json:"isProcessed"`
	ProcessingStatus *string    `json:"processingStatus"`
	ExtractedData    *string    `json:"extractedData"`
}

type UpdateContractor struct {
	Name               *string `json:"name"`
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	CertificationLevel *string `json:"certificationLevel"`
}

type UpdateProject struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ProjectType *string `json:"projectType"`
	BudgetRange *string `json:"budgetRange"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Status      *string `json:"status"`
}

type UpdateBid struct {
	ProjectID      *uuid.UUID       `json:"projectId"`
	ContractorID   *uuid.UUID       `json:"contractorId"`
	EmailRecordID  *uuid.UUID       `json:"emailRecordId"`
	BidAmount      *decimal.Decimal `json:"bidAmount"`
	SubmissionDate *time.Time       `json:"submissionDate"`
	Notes          *string          `json:"notes"`
	Status         *string          `json:"status"`
}

type UpdateClassification struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

type UpdateContract struct {
	ContractNumber *string          `json:"contractNumber"`
	ContractAmount *decimal.Decimal `json:"contractAmount"`
	StartDate      *string          `json:"startDate"`
	EndDate        *string          `json:"endDate"`
	Status         *string          `json:"status"`
}

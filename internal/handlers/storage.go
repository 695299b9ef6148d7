package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bidbeacon/db"
)

// StorageInterface is the full entity-store contract the handlers depend on.
// db.Storage (Postgres) and db.MemoryStorage both satisfy it; it is also a
// superset of the narrow interfaces the tracker package consumes, so a
// handler's store can be handed straight to the assembler and aggregators.
type StorageInterface interface {
	CreateEmailRecord(ctx context.Context, e *db.EmailRecord) error
	GetEmailRecords(ctx context.Context, limit int) ([]db.EmailRecord, error)
	GetEmailRecordByID(ctx context.Context, id uuid.UUID) (*db.EmailRecord, error)
	UpdateEmailRecord(ctx context.Context, id uuid.UUID, in db.UpdateEmailRecord) (*db.EmailRecord, error)
	GetUnprocessedEmails(ctx context.Context) ([]db.EmailRecord, error)
	SearchEmails(ctx context.Context, query string) ([]db.EmailRecord, error)
	EmailRecordsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.EmailRecord, error)

	CreateContractor(ctx context.Context, c *db.Contractor) error
	GetContractors(ctx context.Context, limit int) ([]db.Contractor, error)
	GetContractorByID(ctx context.Context, id uuid.UUID) (*db.Contractor, error)
	GetContractorByEmail(ctx context.Context, email string) (*db.Contractor, error)
	UpdateContractor(ctx context.Context, id uuid.UUID, in db.UpdateContractor) (*db.Contractor, error)
	DeleteContractor(ctx context.Context, id uuid.UUID) (bool, error)
	SearchContractors(ctx context.Context, query string) ([]db.Contractor, error)
	ContractorsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.Contractor, error)

	CreateProject(ctx context.Context, p *db.Project) error
	GetProjects(ctx context.Context, limit int) ([]db.Project, error)
	GetProjectByID(ctx context.Context, id uuid.UUID) (*db.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in db.UpdateProject) (*db.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) (bool, error)
	GetActiveProjects(ctx context.Context) ([]db.Project, error)
	SearchProjects(ctx context.Context, query string) ([]db.Project, error)
	ProjectsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.Project, error)

	CreateBid(ctx context.Context, b *db.Bid) error
	GetBids(ctx context.Context, limit int) ([]db.Bid, error)
	GetBidByID(ctx context.Context, id uuid.UUID) (*db.Bid, error)
	UpdateBid(ctx context.Context, id uuid.UUID, in db.UpdateBid) (*db.Bid, error)
	DeleteBid(ctx context.Context, id uuid.UUID) (bool, error)
	GetBidsByProjectID(ctx context.Context, projectID uuid.UUID) ([]db.Bid, error)
	GetBidsByContractorID(ctx context.Context, contractorID uuid.UUID) ([]db.Bid, error)
	FilterBids(ctx context.Context, projectIDs, contractorIDs []uuid.UUID, query string) ([]db.Bid, error)

	CreateClassification(ctx context.Context, c *db.Classification) error
	GetClassifications(ctx context.Context, limit int) ([]db.Classification, error)
	GetClassificationByID(ctx context.Context, id uuid.UUID) (*db.Classification, error)
	GetClassificationsByCategory(ctx context.Context, category string) ([]db.Classification, error)
	UpdateClassification(ctx context.Context, id uuid.UUID, in db.UpdateClassification) (*db.Classification, error)
	DeleteClassification(ctx context.Context, id uuid.UUID) (bool, error)
	ClassificationsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.Classification, error)

	AddBidClassification(ctx context.Context, bc *db.BidClassification) error
	GetBidClassifications(ctx context.Context, bidID uuid.UUID) ([]db.ClassifiedTag, error)
	RemoveBidClassification(ctx context.Context, id uuid.UUID) (bool, error)
	BidClassificationsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]db.BidClassification, error)

	AddBidDocument(ctx context.Context, d *db.BidDocument) error
	GetBidDocuments(ctx context.Context, bidID uuid.UUID) ([]db.BidDocument, error)
	DeleteBidDocument(ctx context.Context, id uuid.UUID) (bool, error)
	BidDocumentsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]db.BidDocument, error)

	CreateContract(ctx context.Context, c *db.Contract) error
	GetContracts(ctx context.Context, limit int) ([]db.Contract, error)
	GetContractByID(ctx context.Context, id uuid.UUID) (*db.Contract, error)
	GetContractByBidID(ctx context.Context, bidID uuid.UUID) (*db.Contract, error)
	UpdateContract(ctx context.Context, id uuid.UUID, in db.UpdateContract) (*db.Contract, error)
	DeleteContract(ctx context.Context, id uuid.UUID) (bool, error)
	ContractsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]db.Contract, error)

	CountBidsByStatus(ctx context.Context, statuses []string) (int, error)
	CountUnprocessedEmails(ctx context.Context) (int, error)
	CountProjectsByStatus(ctx context.Context, status string) (int, error)
	SumContractAmounts(ctx context.Context) (decimal.Decimal, error)
	EmailTypeCounts(ctx context.Context) ([]db.EmailTypeCount, error)
}

var (
	_ StorageInterface = (*db.Storage)(nil)
	_ StorageInterface = (*db.MemoryStorage)(nil)
)

// Package tracker holds the bid-relation aggregation core: the batched
// relation assembler, the federated search and the dashboard metrics. All of
// it runs against narrow store interfaces so the Postgres and in-memory
// backends are interchangeable.
package tracker

import (
	"context"

	"github.com/google/uuid"

	"bidbeacon/db"
)

// RelationSource is the batched-lookup surface the assembler depends on.
// Implementations must return an empty result for an empty id set without
// touching the backing store.
type RelationSource interface {
	ProjectsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.Project, error)
	ContractorsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.Contractor, error)
	EmailRecordsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.EmailRecord, error)
	BidClassificationsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]db.BidClassification, error)
	ClassificationsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.Classification, error)
	BidDocumentsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]db.BidDocument, error)
	ContractsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]db.Contract, error)
}

// BidViews resolves the related project, contractor, source email,
// classification tags, documents and contracts for each bid. It issues at
// most one batched read per dependent collection regardless of len(bids),
// skips collections whose id set is empty, and preserves the input order.
// A dangling foreign key yields a nil relation, never an error.
func BidViews(ctx context.Context, src RelationSource, bids []db.Bid) ([]db.BidView, error) {
	if len(bids) == 0 {
		return []db.BidView{}, nil
	}

	bidIDs := make([]uuid.UUID, 0, len(bids))
	var projectIDs, contractorIDs, emailIDs []uuid.UUID
	seenProject := map[uuid.UUID]bool{}
	seenContractor := map[uuid.UUID]bool{}
	seenEmail := map[uuid.UUID]bool{}
	for _, b := range bids {
		bidIDs = append(bidIDs, b.ID)
		if b.ProjectID != nil && !seenProject[*b.ProjectID] {
			seenProject[*b.ProjectID] = true
			projectIDs = append(projectIDs, *b.ProjectID)
		}
		if b.ContractorID != nil && !seenContractor[*b.ContractorID] {
			seenContractor[*b.ContractorID] = true
			contractorIDs = append(contractorIDs, *b.ContractorID)
		}
		if b.EmailRecordID != nil && !seenEmail[*b.EmailRecordID] {
			seenEmail[*b.EmailRecordID] = true
			emailIDs = append(emailIDs, *b.EmailRecordID)
		}
	}

	var projects []db.Project
	if len(projectIDs) > 0 {
		var err error
		if projects, err = src.ProjectsByIDs(ctx, projectIDs); err != nil {
			return nil, err
		}
	}
	var contractors []db.Contractor
	if len(contractorIDs) > 0 {
		var err error
		if contractors, err = src.ContractorsByIDs(ctx, contractorIDs); err != nil {
			return nil, err
		}
	}
	var emails []db.EmailRecord
	if len(emailIDs) > 0 {
		var err error
		if emails, err = src.EmailRecordsByIDs(ctx, emailIDs); err != nil {
			return nil, err
		}
	}

	joins, err := src.BidClassificationsByBidIDs(ctx, bidIDs)
	if err != nil {
		return nil, err
	}
	var classificationIDs []uuid.UUID
	seenClassification := map[uuid.UUID]bool{}
	for _, j := range joins {
		if !seenClassification[j.ClassificationID] {
			seenClassification[j.ClassificationID] = true
			classificationIDs = append(classificationIDs, j.ClassificationID)
		}
	}
	var classifications []db.Classification
	if len(classificationIDs) > 0 {
		if classifications, err = src.ClassificationsByIDs(ctx, classificationIDs); err != nil {
			return nil, err
		}
	}

	documents, err := src.BidDocumentsByBidIDs(ctx, bidIDs)
	if err != nil {
		return nil, err
	}
	contracts, err := src.ContractsByBidIDs(ctx, bidIDs)
	if err != nil {
		return nil, err
	}

	projectMap := make(map[uuid.UUID]db.Project, len(projects))
	for _, p := range projects {
		projectMap[p.ID] = p
	}
	contractorMap := make(map[uuid.UUID]db.Contractor, len(contractors))
	for _, c := range contractors {
		contractorMap[c.ID] = c
	}
	emailMap := make(map[uuid.UUID]db.EmailRecord, len(emails))
	for _, e := range emails {
		emailMap[e.ID] = e
	}
	classificationMap := make(map[uuid.UUID]db.Classification, len(classifications))
	for _, c := range classifications {
		classificationMap[c.ID] = c
	}

	// Group the one-to-many collections by bid id, keeping row order.
	tagsByBid := map[uuid.UUID][]db.ClassifiedTag{}
	for _, j := range joins {
		c, ok := classificationMap[j.ClassificationID]
		if !ok {
			continue
		}
		tagsByBid[j.BidID] = append(tagsByBid[j.BidID], db.ClassifiedTag{BidClassification: j, Classification: c})
	}
	docsByBid := map[uuid.UUID][]db.BidDocument{}
	for _, d := range documents {
		docsByBid[d.BidID] = append(docsByBid[d.BidID], d)
	}
	contractsByBid := map[uuid.UUID][]db.Contract{}
	for _, c := range contracts {
		contractsByBid[c.BidID] = append(contractsByBid[c.BidID], c)
	}

	views := make([]db.BidView, 0, len(bids))
	for _, b := range bids {
		v := db.BidView{
			Bid:       b,
			Tags:      []db.ClassifiedTag{},
			Documents: []db.BidDocument{},
			Contracts: []db.Contract{},
		}
		if b.ProjectID != nil {
			if p, ok := projectMap[*b.ProjectID]; ok {
				p := p
				v.Project = &p
			}
		}
		if b.ContractorID != nil {
			if c, ok := contractorMap[*b.ContractorID]; ok {
				c := c
				v.Contractor = &c
			}
		}
		if b.EmailRecordID != nil {
			if e, ok := emailMap[*b.EmailRecordID]; ok {
				e := e
				v.EmailRecord = &e
			}
		}
		if tags, ok := tagsByBid[b.ID]; ok {
			v.Tags = tags
		}
		if docs, ok := docsByBid[b.ID]; ok {
			v.Documents = docs
		}
		if cs, ok := contractsByBid[b.ID]; ok {
			v.Contracts = cs
		}
		views = append(views, v)
	}
	return views, nil
}

// BidView assembles a single bid.
func BidView(ctx context.Context, src RelationSource, bid db.Bid) (*db.BidView, error) {
	views, err := BidViews(ctx, src, []db.Bid{bid})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

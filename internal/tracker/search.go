package tracker

import (
	"context"

	"github.com/google/uuid"

	"bidbeacon/db"
)

// SearchSource adds the substring-search primitives on top of the
// relation-lookup surface.
type SearchSource interface {
	RelationSource
	SearchProjects(ctx context.Context, query string) ([]db.Project, error)
	SearchContractors(ctx context.Context, query string) ([]db.Contractor, error)
	FilterBids(ctx context.Context, projectIDs, contractorIDs []uuid.UUID, query string) ([]db.Bid, error)
}

// SearchBids federates project and contractor substring matches with the
// bids' own notes field, unions by bid id and returns assembled views in
// bid-native date-descending order. An empty sub id-set contributes no
// matches; results are not re-ranked by match quality.
func SearchBids(ctx context.Context, src SearchSource, query string) ([]db.BidView, error) {
	projects, err := src.SearchProjects(ctx, query)
	if err != nil {
		return nil, err
	}
	contractors, err := src.SearchContractors(ctx, query)
	if err != nil {
		return nil, err
	}

	projectIDs := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}
	contractorIDs := make([]uuid.UUID, 0, len(contractors))
	for _, c := range contractors {
		contractorIDs = append(contractorIDs, c.ID)
	}

	bids, err := src.FilterBids(ctx, projectIDs, contractorIDs, query)
	if err != nil {
		return nil, err
	}
	return BidViews(ctx, src, bids)
}

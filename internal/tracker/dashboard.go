package tracker

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"bidbeacon/db"
)

// MetricsSource is the aggregate-query surface of the store.
type MetricsSource interface {
	CountBidsByStatus(ctx context.Context, statuses []string) (int, error)
	CountUnprocessedEmails(ctx context.Context) (int, error)
	CountProjectsByStatus(ctx context.Context, status string) (int, error)
	SumContractAmounts(ctx context.Context) (decimal.Decimal, error)
	EmailTypeCounts(ctx context.Context) ([]db.EmailTypeCount, error)
}

// Bid statuses that count as in-flight on the dashboard.
var activeBidStatuses = []string{
	db.BidStatusSubmitted,
	db.BidStatusUnderReview,
	db.BidStatusApproved,
	db.BidStatusContractPending,
}

const unclassified = "unclassified"

// Summary computes the dashboard scalar metrics. The four sub-reads are
// independent point reads with no snapshot consistency between them; if any
// one fails the whole summary fails.
func Summary(ctx context.Context, src MetricsSource) (*db.DashboardSummary, error) {
	activeBids, err := src.CountBidsByStatus(ctx, activeBidStatuses)
	if err != nil {
		return nil, err
	}
	unprocessed, err := src.CountUnprocessedEmails(ctx)
	if err != nil {
		return nil, err
	}
	activeProjects, err := src.CountProjectsByStatus(ctx, db.ProjectStatusActive)
	if err != nil {
		return nil, err
	}
	total, err := src.SumContractAmounts(ctx)
	if err != nil {
		return nil, err
	}
	return &db.DashboardSummary{
		ActiveBids:         activeBids,
		UnprocessedEmails:  unprocessed,
		ActiveProjects:     activeProjects,
		TotalContractValue: total.InexactFloat64(),
	}, nil
}

// EmailTypeStats returns email counts grouped by type, descending by count.
// Missing, empty and "unknown" types all land in the unclassified bucket;
// groups are merged after normalization.
func EmailTypeStats(ctx context.Context, src MetricsSource) ([]db.CategoryCount, error) {
	raw, err := src.EmailTypeCounts(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	var order []string
	for _, r := range raw {
		category := unclassified
		if r.EmailType != nil && *r.EmailType != "" && *r.EmailType != db.EmailTypeUnknown {
			category = *r.EmailType
		}
		if _, ok := counts[category]; !ok {
			order = append(order, category)
		}
		counts[category] += r.Count
	}
	stats := make([]db.CategoryCount, 0, len(order))
	for _, category := range order {
		stats = append(stats, db.CategoryCount{Category: category, Count: counts[category]})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats, nil
}

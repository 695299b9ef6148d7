package tracker_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bidbeacon/db"
	"bidbeacon/internal/tracker"
)

func amount(n int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(n), Valid: true}
}

func TestSummarySumsContractAmountsIgnoringNulls(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStorage()

	bid := db.Bid{}
	require.NoError(t, store.CreateBid(ctx, &bid))

	first := db.Contract{BidID: bid.ID, ContractAmount: amount(2000)}
	require.NoError(t, store.CreateContract(ctx, &first))
	second := db.Contract{BidID: bid.ID, ContractAmount: amount(1500)}
	require.NoError(t, store.CreateContract(ctx, &second))
	unpriced := db.Contract{BidID: bid.ID}
	require.NoError(t, store.CreateContract(ctx, &unpriced))

	summary, err := tracker.Summary(ctx, store)
	require.NoError(t, err)
	require.Equal(t, 3500.0, summary.TotalContractValue)
}

func TestSummaryCountsActiveBidsAndProjects(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStorage()

	for _, status := range []string{
		db.BidStatusSubmitted,
		db.BidStatusUnderReview,
		db.BidStatusApproved,
		db.BidStatusContractPending,
		db.BidStatusRejected,
		db.BidStatusWithdrawn,
		db.BidStatusContractSigned,
	} {
		b := db.Bid{Status: status}
		require.NoError(t, store.CreateBid(ctx, &b))
	}

	active := db.Project{Name: "Active One"}
	require.NoError(t, store.CreateProject(ctx, &active))
	done := db.Project{Name: "Done", Status: db.ProjectStatusCompleted}
	require.NoError(t, store.CreateProject(ctx, &done))

	unread := db.EmailRecord{Subject: "New bid", SenderEmail: "a@b.test", RecipientEmail: "c@d.test"}
	require.NoError(t, store.CreateEmailRecord(ctx, &unread))

	summary, err := tracker.Summary(ctx, store)
	require.NoError(t, err)
	require.Equal(t, 4, summary.ActiveBids)
	require.Equal(t, 1, summary.ActiveProjects)
	require.Equal(t, 1, summary.UnprocessedEmails)
}

func TestEmailTypeStatsMergesUnclassified(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStorage()

	add := func(emailType *string) {
		e := db.EmailRecord{
			Subject:        "s",
			SenderEmail:    "a@b.test",
			RecipientEmail: "c@d.test",
			EmailType:      emailType,
		}
		require.NoError(t, store.CreateEmailRecord(ctx, &e))
	}
	add(strPtr(db.EmailTypeBidSubmission))
	add(strPtr(db.EmailTypeBidSubmission))
	add(strPtr(db.EmailTypeUnknown))
	add(nil)

	stats, err := tracker.EmailTypeStats(ctx, store)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byCategory := map[string]int{}
	for _, s := range stats {
		byCategory[s.Category] = s.Count
	}
	require.Equal(t, 2, byCategory[db.EmailTypeBidSubmission])
	require.Equal(t, 2, byCategory["unclassified"])
}

func TestEmailTypeStatsSortedByCountDesc(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStorage()

	add := func(emailType string, n int) {
		for i := 0; i < n; i++ {
			e := db.EmailRecord{
				Subject:        "s",
				SenderEmail:    "a@b.test",
				RecipientEmail: "c@d.test",
				EmailType:      strPtr(emailType),
			}
			require.NoError(t, store.CreateEmailRecord(ctx, &e))
		}
	}
	add(db.EmailTypeFollowUp, 1)
	add(db.EmailTypeBidSubmission, 3)
	add(db.EmailTypeBidInquiry, 2)

	stats, err := tracker.EmailTypeStats(ctx, store)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	for i := 1; i < len(stats); i++ {
		require.GreaterOrEqual(t, stats[i-1].Count, stats[i].Count)
	}
	require.Equal(t, db.EmailTypeBidSubmission, stats[0].Category)
}

func TestEmailTypeStatsEmptyStore(t *testing.T) {
	stats, err := tracker.EmailTypeStats(context.Background(), db.NewMemoryStorage())
	require.NoError(t, err)
	require.Empty(t, stats)
}

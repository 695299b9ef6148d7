package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMemoryEmptyUpdateTouchesOnlyTimestamp(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	bid := Bid{
		BidAmount: decimal.NullDecimal{Decimal: decimal.NewFromInt(1200), Valid: true},
		Status:    BidStatusUnderReview,
	}
	require.NoError(t, store.CreateBid(ctx, &bid))
	before, err := store.GetBidByID(ctx, bid.ID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	after, err := store.UpdateBid(ctx, bid.ID, UpdateBid{})
	require.NoError(t, err)
	require.NotNil(t, after)

	require.Equal(t, before.Status, after.Status)
	require.True(t, before.BidAmount.Decimal.Equal(after.BidAmount.Decimal))
	require.Equal(t, before.SubmissionDate, after.SubmissionDate)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestMemoryGetMissingReturnsNilNil(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	bid, err := store.GetBidByID(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, bid)

	project, err := store.GetProjectByID(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, project)

	updated, err := store.UpdateContractor(ctx, uuid.New(), UpdateContractor{})
	require.NoError(t, err)
	require.Nil(t, updated)
}

func TestMemoryDeleteMissingReturnsFalse(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	deleted, err := store.DeleteBid(ctx, uuid.New())
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = store.DeleteContractor(ctx, uuid.New())
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestMemoryBidsOrderedBySubmissionDateDesc(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	old := Bid{SubmissionDate: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, store.CreateBid(ctx, &old))
	recent := Bid{SubmissionDate: time.Now()}
	require.NoError(t, store.CreateBid(ctx, &recent))
	middle := Bid{SubmissionDate: time.Now().Add(-24 * time.Hour)}
	require.NoError(t, store.CreateBid(ctx, &middle))

	bids, err := store.GetBids(ctx, 10)
	require.NoError(t, err)
	require.Len(t, bids, 3)
	require.Equal(t, recent.ID, bids[0].ID)
	require.Equal(t, middle.ID, bids[1].ID)
	require.Equal(t, old.ID, bids[2].ID)
}

func TestMemorySearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	c := Contractor{Name: "NorthStar Paving", Email: "ops@northstar.test"}
	require.NoError(t, store.CreateContractor(ctx, &c))

	found, err := store.SearchContractors(ctx, "NORTHSTAR")
	require.NoError(t, err)
	require.Len(t, found, 1)

	none, err := store.SearchContractors(ctx, "southstar")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMemoryByIDsEmptySetSkipsScan(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	p := Project{Name: "Depot"}
	require.NoError(t, store.CreateProject(ctx, &p))

	out, err := store.ProjectsByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMemoryCreateDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	e := EmailRecord{Subject: "s", SenderEmail: "a@b.test", RecipientEmail: "c@d.test"}
	require.NoError(t, store.CreateEmailRecord(ctx, &e))
	require.NotEqual(t, uuid.Nil, e.ID)
	require.Equal(t, ProcessingUnprocessed, e.ProcessingStatus)
	require.False(t, e.ReceivedDate.IsZero())

	b := Bid{}
	require.NoError(t, store.CreateBid(ctx, &b))
	require.Equal(t, BidStatusSubmitted, b.Status)
	require.False(t, b.SubmissionDate.IsZero())

	p := Project{Name: "n"}
	require.NoError(t, store.CreateProject(ctx, &p))
	require.Equal(t, ProjectStatusActive, p.Status)

	c := Contract{BidID: b.ID}
	require.NoError(t, store.CreateContract(ctx, &c))
	require.Equal(t, ContractStatusDraft, c.Status)
}

func TestMemoryGetBidClassificationsJoinsTaxonomy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	bid := Bid{}
	require.NoError(t, store.CreateBid(ctx, &bid))
	classification := Classification{Name: "Paving", Category: "trade"}
	require.NoError(t, store.CreateClassification(ctx, &classification))

	join := BidClassification{BidID: bid.ID, ClassificationID: classification.ID}
	require.NoError(t, store.AddBidClassification(ctx, &join))

	tags, err := store.GetBidClassifications(ctx, bid.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	require.Equal(t, classification.ID, tags[0].Classification.ID)
	require.Equal(t, "Paving", tags[0].Classification.Name)

	removed, err := store.RemoveBidClassification(ctx, join.ID)
	require.NoError(t, err)
	require.True(t, removed)

	tags, err = store.GetBidClassifications(ctx, bid.ID)
	require.NoError(t, err)
	require.Empty(t, tags)
}

func TestMemoryGetUnprocessedEmails(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	pending := EmailRecord{Subject: "pending", SenderEmail: "a@b.test", RecipientEmail: "c@d.test"}
	require.NoError(t, store.CreateEmailRecord(ctx, &pending))
	done := EmailRecord{Subject: "done", SenderEmail: "a@b.test", RecipientEmail: "c@d.test", IsProcessed: true}
	require.NoError(t, store.CreateEmailRecord(ctx, &done))

	out, err := store.GetUnprocessedEmails(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "pending", out[0].Subject)
}

package tracker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bidbeacon/db"
	"bidbeacon/internal/tracker"
)

func strPtr(s string) *string { return &s }

func TestSearchBidsFederatesMatches(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStorage()

	project := db.Project{Name: "Alpha Road Resurfacing"}
	require.NoError(t, store.CreateProject(ctx, &project))
	contractor := db.Contractor{Name: "Alpha Builders", Email: "hello@alphabuilders.test"}
	require.NoError(t, store.CreateContractor(ctx, &contractor))

	byProject := db.Bid{ProjectID: &project.ID}
	require.NoError(t, store.CreateBid(ctx, &byProject))
	byContractor := db.Bid{ContractorID: &contractor.ID}
	require.NoError(t, store.CreateBid(ctx, &byContractor))
	byNotes := db.Bid{Notes: strPtr("alpha variant pricing attached")}
	require.NoError(t, store.CreateBid(ctx, &byNotes))
	unrelated := db.Bid{Notes: strPtr("beta only")}
	require.NoError(t, store.CreateBid(ctx, &unrelated))

	views, err := tracker.SearchBids(ctx, store, "alpha")
	require.NoError(t, err)
	require.Len(t, views, 3)

	found := map[string]bool{}
	for _, v := range views {
		found[v.ID.String()] = true
	}
	require.True(t, found[byProject.ID.String()])
	require.True(t, found[byContractor.ID.String()])
	require.True(t, found[byNotes.ID.String()])
	require.False(t, found[unrelated.ID.String()])
}

func TestSearchBidsNoMatches(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStorage()

	bid := db.Bid{Notes: strPtr("routine paperwork")}
	require.NoError(t, store.CreateBid(ctx, &bid))

	views, err := tracker.SearchBids(ctx, store, "nonexistent-term")
	require.NoError(t, err)
	require.NotNil(t, views)
	require.Empty(t, views)
}

func TestSearchBidsAssemblesRelations(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStorage()

	project := db.Project{Name: "Harbor Dredging"}
	require.NoError(t, store.CreateProject(ctx, &project))
	bid := db.Bid{ProjectID: &project.ID}
	require.NoError(t, store.CreateBid(ctx, &bid))

	views, err := tracker.SearchBids(ctx, store, "harbor")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Project)
	require.Equal(t, "Harbor Dredging", views[0].Project.Name)
}

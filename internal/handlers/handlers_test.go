package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bidbeacon/db"
	"bidbeacon/internal/handlers"
	"bidbeacon/internal/handlers/testutils"
)

func newTestHandler() (*handlers.Handler, *db.MemoryStorage) {
	store := db.NewMemoryStorage()
	return handlers.NewHandler(store), store
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string, params map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if params != nil {
		req = testutils.WithChiURLParams(req, params)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w.Result()
}

func readAll(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func TestPingHandler(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.PingHandler, http.MethodGet, "/api/ping", "", nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", body)
}

func TestCreateContractorHandler(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.CreateContractorHandler, http.MethodPost, "/api/contractors",
		`{"name":"Acme Construction","email":"bids@acme.test"}`, nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Contains(t, body, "Acme Construction")
}

func TestCreateContractorValidation(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.CreateContractorHandler, http.MethodPost, "/api/contractors",
		`{"email":"bids@acme.test"}`, nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, "Validation error")
	require.Contains(t, body, "name")
}

func TestGetContractorNotFound(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.GetContractorHandler, http.MethodGet, "/api/contractors/x", "",
		map[string]string{"id": uuid.New().String()})
	body := readAll(t, res)

	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Contains(t, body, "Contractor not found")
}

func TestGetContractorInvalidID(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.GetContractorHandler, http.MethodGet, "/api/contractors/nope", "",
		map[string]string{"id": "nope"})

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	readAll(t, res)
}

func TestUpdateContractorHandler(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	c := db.Contractor{Name: "Old Name", Email: "old@x.test"}
	require.NoError(t, store.CreateContractor(ctx, &c))

	res := doJSON(t, handler.UpdateContractorHandler, http.MethodPatch, "/api/contractors/"+c.ID.String(),
		`{"name":"New Name"}`, map[string]string{"id": c.ID.String()})
	body := readAll(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "New Name")
	require.Contains(t, body, "old@x.test")
}

func TestDeleteContractorHandler(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	c := db.Contractor{Name: "Gone Soon", Email: "gone@x.test"}
	require.NoError(t, store.CreateContractor(ctx, &c))

	res := doJSON(t, handler.DeleteContractorHandler, http.MethodDelete, "/api/contractors/"+c.ID.String(), "",
		map[string]string{"id": c.ID.String()})
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, handler.DeleteContractorHandler, http.MethodDelete, "/api/contractors/"+c.ID.String(), "",
		map[string]string{"id": c.ID.String()})
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	readAll(t, res)
}

func TestCreateBidRequiresAmount(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.CreateBidHandler, http.MethodPost, "/api/bids", `{"notes":"no amount"}`, nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, "bidAmount")
}

func TestCreateBidAcceptsStringAmount(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.CreateBidHandler, http.MethodPost, "/api/bids", `{"bidAmount":"2500.50"}`, nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Contains(t, body, "2500.5")
	require.Contains(t, body, "submitted")
}

func TestGetBidHandlerAssemblesRelations(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	project := db.Project{Name: "Bridge Repair"}
	require.NoError(t, store.CreateProject(ctx, &project))
	contractor := db.Contractor{Name: "Acme Construction", Email: "bids@acme.test"}
	require.NoError(t, store.CreateContractor(ctx, &contractor))
	bid := db.Bid{ProjectID: &project.ID, ContractorID: &contractor.ID}
	require.NoError(t, store.CreateBid(ctx, &bid))

	res := doJSON(t, handler.GetBidHandler, http.MethodGet, "/api/bids/"+bid.ID.String(), "",
		map[string]string{"id": bid.ID.String()})
	body := readAll(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)

	var view db.BidView
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	require.NotNil(t, view.Project)
	require.Equal(t, "Bridge Repair", view.Project.Name)
	require.NotNil(t, view.Contractor)
	require.Equal(t, "Acme Construction", view.Contractor.Name)
	require.NotNil(t, view.Tags)
	require.NotNil(t, view.Documents)
	require.NotNil(t, view.Contracts)
}

func TestUpdateBidInvalidStatus(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	bid := db.Bid{}
	require.NoError(t, store.CreateBid(ctx, &bid))

	res := doJSON(t, handler.UpdateBidHandler, http.MethodPatch, "/api/bids/"+bid.ID.String(),
		`{"status":"bogus"}`, map[string]string{"id": bid.ID.String()})
	body := readAll(t, res)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, "invalid status")
}

func TestGetProjectBidsHandler(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	project := db.Project{Name: "Depot Extension"}
	require.NoError(t, store.CreateProject(ctx, &project))
	bid := db.Bid{ProjectID: &project.ID}
	require.NoError(t, store.CreateBid(ctx, &bid))
	other := db.Bid{}
	require.NoError(t, store.CreateBid(ctx, &other))

	res := doJSON(t, handler.GetProjectBidsHandler, http.MethodGet,
		"/api/projects/"+project.ID.String()+"/bids", "",
		map[string]string{"projectId": project.ID.String()})
	body := readAll(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)

	var views []db.BidView
	require.NoError(t, json.Unmarshal([]byte(body), &views))
	require.Len(t, views, 1)
	require.Equal(t, bid.ID, views[0].ID)
}

func TestCreateEmailInvalidType(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.CreateEmailHandler, http.MethodPost, "/api/emails",
		`{"subject":"s","senderEmail":"a@b.test","recipientEmail":"c@d.test","emailType":"spam"}`, nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, "emailType")
}

func TestGetUnprocessedEmailsHandler(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	pending := db.EmailRecord{Subject: "pending bid", SenderEmail: "a@b.test", RecipientEmail: "c@d.test"}
	require.NoError(t, store.CreateEmailRecord(ctx, &pending))
	done := db.EmailRecord{Subject: "handled", SenderEmail: "a@b.test", RecipientEmail: "c@d.test", IsProcessed: true}
	require.NoError(t, store.CreateEmailRecord(ctx, &done))

	res := doJSON(t, handler.GetUnprocessedEmailsHandler, http.MethodGet, "/api/emails/unprocessed", "", nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "pending bid")
	require.NotContains(t, body, "handled")
}

func TestBidClassificationConfidenceRange(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	bid := db.Bid{}
	require.NoError(t, store.CreateBid(ctx, &bid))
	classification := db.Classification{Name: "Paving", Category: "trade"}
	require.NoError(t, store.CreateClassification(ctx, &classification))

	res := doJSON(t, handler.CreateBidClassificationHandler, http.MethodPost, "/api/bid-classifications",
		`{"bidId":"`+bid.ID.String()+`","classificationId":"`+classification.ID.String()+`","confidenceScore":150}`, nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, "confidenceScore")

	res = doJSON(t, handler.CreateBidClassificationHandler, http.MethodPost, "/api/bid-classifications",
		`{"bidId":"`+bid.ID.String()+`","classificationId":"`+classification.ID.String()+`","confidenceScore":87.5}`, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	readAll(t, res)
}

func TestGetBidContractHandler(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	bid := db.Bid{}
	require.NoError(t, store.CreateBid(ctx, &bid))

	res := doJSON(t, handler.GetBidContractHandler, http.MethodGet,
		"/api/bids/"+bid.ID.String()+"/contract", "",
		map[string]string{"bidId": bid.ID.String()})
	body := readAll(t, res)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Contains(t, body, "Contract not found for this bid")

	contract := db.Contract{BidID: bid.ID}
	require.NoError(t, store.CreateContract(ctx, &contract))

	res = doJSON(t, handler.GetBidContractHandler, http.MethodGet,
		"/api/bids/"+bid.ID.String()+"/contract", "",
		map[string]string{"bidId": bid.ID.String()})
	body = readAll(t, res)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, contract.ID.String())
}

func TestSearchRequiresQuery(t *testing.T) {
	handler, _ := newTestHandler()

	for _, h := range []http.HandlerFunc{
		handler.SearchEmailsHandler,
		handler.SearchContractorsHandler,
		handler.SearchProjectsHandler,
		handler.SearchBidsHandler,
	} {
		res := doJSON(t, h, http.MethodGet, "/api/search/x", "", nil)
		body := readAll(t, res)
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.Contains(t, body, "Search query is required")
	}
}

func TestSearchBidsHandler(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	project := db.Project{Name: "Alpha Road"}
	require.NoError(t, store.CreateProject(ctx, &project))
	bid := db.Bid{ProjectID: &project.ID}
	require.NoError(t, store.CreateBid(ctx, &bid))

	res := doJSON(t, handler.SearchBidsHandler, http.MethodGet, "/api/search/bids?q=alpha", "", nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, bid.ID.String())
	require.Contains(t, body, "Alpha Road")
}

func TestDashboardSummaryHandler(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	bid := db.Bid{}
	require.NoError(t, store.CreateBid(ctx, &bid))

	res := doJSON(t, handler.DashboardSummaryHandler, http.MethodGet, "/api/dashboard/summary", "", nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)

	var summary db.DashboardSummary
	require.NoError(t, json.Unmarshal([]byte(body), &summary))
	require.Equal(t, 1, summary.ActiveBids)
	require.Zero(t, summary.TotalContractValue)
}

func TestDashboardEmailStatsHandler(t *testing.T) {
	handler, store := newTestHandler()
	ctx := context.Background()

	emailType := db.EmailTypeBidSubmission
	e := db.EmailRecord{Subject: "s", SenderEmail: "a@b.test", RecipientEmail: "c@d.test", EmailType: &emailType}
	require.NoError(t, store.CreateEmailRecord(ctx, &e))

	res := doJSON(t, handler.DashboardEmailStatsHandler, http.MethodGet, "/api/dashboard/email-stats", "", nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, db.EmailTypeBidSubmission)
}

func TestInvalidJSONBody(t *testing.T) {
	handler, _ := newTestHandler()

	res := doJSON(t, handler.CreateProjectHandler, http.MethodPost, "/api/projects", `{not json`, nil)
	body := readAll(t, res)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, "Invalid JSON format")
}

package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStorage is a process-lifetime fallback store satisfying the same
// contract as Storage. Tables are append-order slices, so one-to-many
// collections come back in insertion order just like the database rows.
type MemoryStorage struct {
	mu sync.RWMutex

	emails             []EmailRecord
	contractors        []Contractor
	projects           []Project
	bids               []Bid
	classifications    []Classification
	bidClassifications []BidClassification
	documents          []BidDocument
	contracts          []Contract
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func containsFold(s *string, q string) bool {
	if s == nil {
		return strings.Contains("", strings.ToLower(q))
	}
	return strings.Contains(strings.ToLower(*s), strings.ToLower(q))
}

func limitSlice[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

// Email records

func (m *MemoryStorage) CreateEmailRecord(ctx context.Context, e *EmailRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.New()
	now := time.Now()
	if e.ReceivedDate.IsZero() {
		e.ReceivedDate = now
	}
	if e.ProcessingStatus == "" {
		e.ProcessingStatus = ProcessingUnprocessed
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	m.emails = append(m.emails, *e)
	return nil
}

func (m *MemoryStorage) GetEmailRecords(ctx context.Context, limit int) ([]EmailRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]EmailRecord(nil), m.emails...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReceivedDate.After(out[j].ReceivedDate) })
	return limitSlice(out, limit), nil
}

func (m *MemoryStorage) GetEmailRecordByID(ctx context.Context, id uuid.UUID) (*EmailRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.emails {
		if m.emails[i].ID == id {
			e := m.emails[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) UpdateEmailRecord(ctx context.Context, id uuid.UUID, in UpdateEmailRecord) (*EmailRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.emails {
		if m.emails[i].ID != id {
			continue
		}
		e := &m.emails[i]
		if in.Subject != nil {
			e.Subject = *in.Subject
		}
		if in.SenderEmail != nil {
			e.SenderEmail = *in.SenderEmail
		}
		if in.SenderName != nil {
			e.SenderName = in.SenderName
		}
		if in.RecipientEmail != nil {
			e.RecipientEmail = *in.RecipientEmail
		}
		if in.ReceivedDate != nil {
			e.ReceivedDate = *in.ReceivedDate
		}
		if in.BodyText != nil {
			e.BodyText = in.BodyText
		}
		if in.EmailType != nil {
			e.EmailType = in.EmailType
		}
		if in.IsProcessed != nil {
			e.IsProcessed = *in.IsProcessed
		}
		if in.ProcessingStatus != nil {
			e.ProcessingStatus = *in.ProcessingStatus
		}
		if in.ExtractedData != nil {
			e.ExtractedData = in.ExtractedData
		}
		e.UpdatedAt = time.Now()
		out := *e
		return &out, nil
	}
	return nil, nil
}

func (m *MemoryStorage) GetUnprocessedEmails(ctx context.Context) ([]EmailRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []EmailRecord{}
	for _, e := range m.emails {
		if !e.IsProcessed {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReceivedDate.After(out[j].ReceivedDate) })
	return out, nil
}

func (m *MemoryStorage) SearchEmails(ctx context.Context, query string) ([]EmailRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []EmailRecord{}
	for _, e := range m.emails {
		if containsFold(&e.Subject, query) || containsFold(&e.SenderEmail, query) ||
			containsFold(e.SenderName, query) || containsFold(e.BodyText, query) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReceivedDate.After(out[j].ReceivedDate) })
	return out, nil
}

func (m *MemoryStorage) EmailRecordsByIDs(ctx context.Context, ids []uuid.UUID) ([]EmailRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []EmailRecord{}
	for _, e := range m.emails {
		if want[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

// Contractors

func (m *MemoryStorage) CreateContractor(ctx context.Context, c *Contractor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.New()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.contractors = append(m.contractors, *c)
	return nil
}

func (m *MemoryStorage) GetContractors(ctx context.Context, limit int) ([]Contractor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Contractor(nil), m.contractors...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return limitSlice(out, limit), nil
}

func (m *MemoryStorage) GetContractorByID(ctx context.Context, id uuid.UUID) (*Contractor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.contractors {
		if m.contractors[i].ID == id {
			c := m.contractors[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) GetContractorByEmail(ctx context.Context, email string) (*Contractor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.contractors {
		if m.contractors[i].Email == email {
			c := m.contractors[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) UpdateContractor(ctx context.Context, id uuid.UUID, in UpdateContractor) (*Contractor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.contractors {
		if m.contractors[i].ID != id {
			continue
		}
		c := &m.contractors[i]
		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Email != nil {
			c.Email = *in.Email
		}
		if in.Phone != nil {
			c.Phone = in.Phone
		}
		if in.CertificationLevel != nil {
			c.CertificationLevel = in.CertificationLevel
		}
		c.UpdatedAt = time.Now()
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (m *MemoryStorage) DeleteContractor(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.contractors {
		if m.contractors[i].ID == id {
			m.contractors = append(m.contractors[:i], m.contractors[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) SearchContractors(ctx context.Context, query string) ([]Contractor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Contractor{}
	for _, c := range m.contractors {
		if containsFold(&c.Name, query) || containsFold(&c.Email, query) ||
			containsFold(c.Phone, query) || containsFold(c.CertificationLevel, query) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStorage) ContractorsByIDs(ctx context.Context, ids []uuid.UUID) ([]Contractor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []Contractor{}
	for _, c := range m.contractors {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Projects

func (m *MemoryStorage) CreateProject(ctx context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.projects = append(m.projects, *p)
	return nil
}

func (m *MemoryStorage) GetProjects(ctx context.Context, limit int) ([]Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Project(nil), m.projects...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return limitSlice(out, limit), nil
}

func (m *MemoryStorage) GetProjectByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.projects {
		if m.projects[i].ID == id {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) UpdateProject(ctx context.Context, id uuid.UUID, in UpdateProject) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.projects {
		if m.projects[i].ID != id {
			continue
		}
		p := &m.projects[i]
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = in.Description
		}
		if in.ProjectType != nil {
			p.ProjectType = in.ProjectType
		}
		if in.BudgetRange != nil {
			p.BudgetRange = in.BudgetRange
		}
		if in.StartDate != nil {
			p.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			p.EndDate = in.EndDate
		}
		if in.Status != nil {
			p.Status = *in.Status
		}
		p.UpdatedAt = time.Now()
		out := *p
		return &out, nil
	}
	return nil, nil
}

func (m *MemoryStorage) DeleteProject(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.projects {
		if m.projects[i].ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) GetActiveProjects(ctx context.Context) ([]Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Project{}
	for _, p := range m.projects {
		if p.Status == ProjectStatusActive {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStorage) SearchProjects(ctx context.Context, query string) ([]Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Project{}
	for _, p := range m.projects {
		if containsFold(&p.Name, query) || containsFold(p.Description, query) ||
			containsFold(p.ProjectType, query) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStorage) ProjectsByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []Project{}
	for _, p := range m.projects {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

// Bids

func (m *MemoryStorage) CreateBid(ctx context.Context, b *Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = uuid.New()
	now := time.Now()
	if b.SubmissionDate.IsZero() {
		b.SubmissionDate = now
	}
	if b.Status == "" {
		b.Status = BidStatusSubmitted
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	m.bids = append(m.bids, *b)
	return nil
}

func (m *MemoryStorage) GetBids(ctx context.Context, limit int) ([]Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Bid(nil), m.bids...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return limitSlice(out, limit), nil
}

func (m *MemoryStorage) GetBidByID(ctx context.Context, id uuid.UUID) (*Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.bids {
		if m.bids[i].ID == id {
			b := m.bids[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) UpdateBid(ctx context.Context, id uuid.UUID, in UpdateBid) (*Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bids {
		if m.bids[i].ID != id {
			continue
		}
		b := &m.bids[i]
		if in.ProjectID != nil {
			b.ProjectID = in.ProjectID
		}
		if in.ContractorID != nil {
			b.ContractorID = in.ContractorID
		}
		if in.EmailRecordID != nil {
			b.EmailRecordID = in.EmailRecordID
		}
		if in.BidAmount != nil {
			b.BidAmount = decimal.NullDecimal{Decimal: *in.BidAmount, Valid: true}
		}
		if in.SubmissionDate != nil {
			b.SubmissionDate = *in.SubmissionDate
		}
		if in.Notes != nil {
			b.Notes = in.Notes
		}
		if in.Status != nil {
			b.Status = *in.Status
		}
		b.UpdatedAt = time.Now()
		out := *b
		return &out, nil
	}
	return nil, nil
}

func (m *MemoryStorage) DeleteBid(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bids {
		if m.bids[i].ID == id {
			m.bids = append(m.bids[:i], m.bids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) GetBidsByProjectID(ctx context.Context, projectID uuid.UUID) ([]Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Bid{}
	for _, b := range m.bids {
		if b.ProjectID != nil && *b.ProjectID == projectID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return out, nil
}

func (m *MemoryStorage) GetBidsByContractorID(ctx context.Context, contractorID uuid.UUID) ([]Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Bid{}
	for _, b := range m.bids {
		if b.ContractorID != nil && *b.ContractorID == contractorID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return out, nil
}

func (m *MemoryStorage) FilterBids(ctx context.Context, projectIDs, contractorIDs []uuid.UUID, query string) ([]Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inProject := make(map[uuid.UUID]bool, len(projectIDs))
	for _, id := range projectIDs {
		inProject[id] = true
	}
	inContractor := make(map[uuid.UUID]bool, len(contractorIDs))
	for _, id := range contractorIDs {
		inContractor[id] = true
	}
	out := []Bid{}
	for _, b := range m.bids {
		switch {
		case b.ProjectID != nil && inProject[*b.ProjectID]:
		case b.ContractorID != nil && inContractor[*b.ContractorID]:
		case containsFold(b.Notes, query):
		default:
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return out, nil
}

// Bid documents

func (m *MemoryStorage) AddBidDocument(ctx context.Context, d *BidDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.New()
	d.UploadedAt = time.Now()
	m.documents = append(m.documents, *d)
	return nil
}

func (m *MemoryStorage) GetBidDocuments(ctx context.Context, bidID uuid.UUID) ([]BidDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []BidDocument{}
	for _, d := range m.documents {
		if d.BidID == bidID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (m *MemoryStorage) DeleteBidDocument(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.documents {
		if m.documents[i].ID == id {
			m.documents = append(m.documents[:i], m.documents[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) BidDocumentsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]BidDocument, error) {
	if len(bidIDs) == 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(bidIDs))
	for _, id := range bidIDs {
		want[id] = true
	}
	out := []BidDocument{}
	for _, d := range m.documents {
		if want[d.BidID] {
			out = append(out, d)
		}
	}
	return out, nil
}

// Classifications

func (m *MemoryStorage) CreateClassification(ctx context.Context, c *Classification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.New()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.classifications = append(m.classifications, *c)
	return nil
}

func (m *MemoryStorage) GetClassifications(ctx context.Context, limit int) ([]Classification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Classification(nil), m.classifications...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return limitSlice(out, limit), nil
}

func (m *MemoryStorage) GetClassificationByID(ctx context.Context, id uuid.UUID) (*Classification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.classifications {
		if m.classifications[i].ID == id {
			c := m.classifications[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) GetClassificationsByCategory(ctx context.Context, category string) ([]Classification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Classification{}
	for _, c := range m.classifications {
		if c.Category == category {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStorage) UpdateClassification(ctx context.Context, id uuid.UUID, in UpdateClassification) (*Classification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.classifications {
		if m.classifications[i].ID != id {
			continue
		}
		c := &m.classifications[i]
		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Category != nil {
			c.Category = *in.Category
		}
		if in.Description != nil {
			c.Description = in.Description
		}
		c.UpdatedAt = time.Now()
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (m *MemoryStorage) DeleteClassification(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.classifications {
		if m.classifications[i].ID == id {
			m.classifications = append(m.classifications[:i], m.classifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) ClassificationsByIDs(ctx context.Context, ids []uuid.UUID) ([]Classification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []Classification{}
	for _, c := range m.classifications {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Bid classifications

func (m *MemoryStorage) AddBidClassification(ctx context.Context, bc *BidClassification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bc.ID = uuid.New()
	bc.CreatedAt = time.Now()
	m.bidClassifications = append(m.bidClassifications, *bc)
	return nil
}

func (m *MemoryStorage) GetBidClassifications(ctx context.Context, bidID uuid.UUID) ([]ClassifiedTag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byID := make(map[uuid.UUID]Classification, len(m.classifications))
	for _, c := range m.classifications {
		byID[c.ID] = c
	}
	tags := []ClassifiedTag{}
	for _, bc := range m.bidClassifications {
		if bc.BidID != bidID {
			continue
		}
		c, ok := byID[bc.ClassificationID]
		if !ok {
			continue
		}
		tags = append(tags, ClassifiedTag{BidClassification: bc, Classification: c})
	}
	return tags, nil
}

func (m *MemoryStorage) RemoveBidClassification(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bidClassifications {
		if m.bidClassifications[i].ID == id {
			m.bidClassifications = append(m.bidClassifications[:i], m.bidClassifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) BidClassificationsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]BidClassification, error) {
	if len(bidIDs) == 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(bidIDs))
	for _, id := range bidIDs {
		want[id] = true
	}
	out := []BidClassification{}
	for _, bc := range m.bidClassifications {
		if want[bc.BidID] {
			out = append(out, bc)
		}
	}
	return out, nil
}

// Contracts

func (m *MemoryStorage) CreateContract(ctx context.Context, c *Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.New()
	if c.Status == "" {
		c.Status = ContractStatusDraft
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.contracts = append(m.contracts, *c)
	return nil
}

func (m *MemoryStorage) GetContracts(ctx context.Context, limit int) ([]Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Contract(nil), m.contracts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return limitSlice(out, limit), nil
}

func (m *MemoryStorage) GetContractByID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.contracts {
		if m.contracts[i].ID == id {
			c := m.contracts[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) GetContractByBidID(ctx context.Context, bidID uuid.UUID) (*Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.contracts {
		if m.contracts[i].BidID == bidID {
			c := m.contracts[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) UpdateContract(ctx context.Context, id uuid.UUID, in UpdateContract) (*Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.contracts {
		if m.contracts[i].ID != id {
			continue
		}
		c := &m.contracts[i]
		if in.ContractNumber != nil {
			c.ContractNumber = in.ContractNumber
		}
		if in.ContractAmount != nil {
			c.ContractAmount = decimal.NullDecimal{Decimal: *in.ContractAmount, Valid: true}
		}
		if in.StartDate != nil {
			c.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			c.EndDate = in.EndDate
		}
		if in.Status != nil {
			c.Status = *in.Status
		}
		c.UpdatedAt = time.Now()
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (m *MemoryStorage) DeleteContract(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.contracts {
		if m.contracts[i].ID == id {
			m.contracts = append(m.contracts[:i], m.contracts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) ContractsByBidIDs(ctx context.Context, bidIDs []uuid.UUID) ([]Contract, error) {
	if len(bidIDs) == 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(bidIDs))
	for _, id := range bidIDs {
		want[id] = true
	}
	out := []Contract{}
	for _, c := range m.contracts {
		if want[c.BidID] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Dashboard metrics

func (m *MemoryStorage) CountBidsByStatus(ctx context.Context, statuses []string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		in[s] = true
	}
	count := 0
	for _, b := range m.bids {
		if in[b.Status] {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStorage) CountUnprocessedEmails(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, e := range m.emails {
		if !e.IsProcessed {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStorage) CountProjectsByStatus(ctx context.Context, status string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, p := range m.projects {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStorage) SumContractAmounts(ctx context.Context) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, c := range m.contracts {
		if c.ContractAmount.Valid {
			sum = sum.Add(c.ContractAmount.Decimal)
		}
	}
	return sum, nil
}

func (m *MemoryStorage) EmailTypeCounts(ctx context.Context) ([]EmailTypeCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byType := map[string]int{}
	missing := 0
	for _, e := range m.emails {
		if e.EmailType == nil {
			missing++
			continue
		}
		byType[*e.EmailType]++
	}
	out := []EmailTypeCount{}
	for t, n := range byType {
		t := t
		out = append(out, EmailTypeCount{EmailType: &t, Count: n})
	}
	if missing > 0 {
		out = append(out, EmailTypeCount{Count: missing})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

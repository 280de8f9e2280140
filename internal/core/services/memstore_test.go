package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
)

type seqKey struct {
	docType domain.DocumentType
	year    int
}

// memTx records undo steps so a rollback restores the store. Writes are
// visible to other transactions immediately.
type memTx struct {
	pgx.Tx
	undo []func()
	held []*sync.Mutex
	done bool
}

// memStore is an in-memory stand-in for every repository port. In locking
// mode LockNumberSequence holds a per (type, year) mutex until the
// transaction ends; in optimistic mode it does not lock, and the unique
// number check in AssignDocumentNumber is the only guard.
type memStore struct {
	mu         sync.Mutex
	optimistic bool

	documents    map[string]domain.Document
	lines        map[string][]domain.DocumentLine
	sequences    map[seqKey]int
	seqLocks     map[seqKey]*sync.Mutex
	installments map[string]domain.Installment
	movements    map[string]domain.LedgerMovement
	parties      map[string]domain.Party
	jobSites     map[string]domain.JobSite
	vatRates     map[string]domain.VATRate
	terms        map[string]domain.PaymentTerm
	categories   map[string]domain.OperatingCategory
	accounts     map[string]domain.FinancialAccount

	// forcedConflicts makes the next n AssignDocumentNumber calls fail.
	forcedConflicts int
	assignCalls     int
}

func newMemStore() *memStore {
	return &memStore{
		documents:    map[string]domain.Document{},
		lines:        map[string][]domain.DocumentLine{},
		sequences:    map[seqKey]int{},
		seqLocks:     map[seqKey]*sync.Mutex{},
		installments: map[string]domain.Installment{},
		movements:    map[string]domain.LedgerMovement{},
		parties:      map[string]domain.Party{},
		jobSites:     map[string]domain.JobSite{},
		vatRates:     map[string]domain.VATRate{},
		terms:        map[string]domain.PaymentTerm{},
		categories:   map[string]domain.OperatingCategory{},
		accounts:     map[string]domain.FinancialAccount{},
	}
}

func (s *memStore) repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo:    s,
		InstallmentRepo: s,
		MovementRepo:    s,
		PartyRepo:       s,
		JobSiteRepo:     s,
		CatalogRepo:     s,
		AccountRepo:     s,
		ReportingRepo:   s,
	}
}

func asMemTx(tx pgx.Tx) *memTx {
	return tx.(*memTx)
}

// record registers an undo step; callers hold s.mu.
func (t *memTx) record(fn func()) {
	t.undo = append(t.undo, fn)
}

// --- TransactionManager ---

func (s *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

func (s *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	t := asMemTx(tx)
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.release()
	return nil
}

func (s *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	t := asMemTx(tx)
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	s.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	s.mu.Unlock()
	t.release()
	return nil
}

func (t *memTx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
	t.held = nil
}

// --- Documents ---

func (s *memStore) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("document " + documentID)
	}
	return &doc, nil
}

func (s *memStore) FindDocumentLines(ctx context.Context, documentID string) ([]domain.DocumentLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := append([]domain.DocumentLine{}, s.lines[documentID]...)
	sort.Slice(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })
	return lines, nil
}

func (s *memStore) ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Document
	for _, d := range s.documents {
		if filter.DocumentType != nil && d.DocumentType != *filter.DocumentType {
			continue
		}
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		if filter.Year != nil && d.Year() != *filter.Year {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentDate.After(out[j].DocumentDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (s *memStore) FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.Document, error) {
	return s.FindDocumentByID(ctx, documentID)
}

func (s *memStore) SaveDocumentHeader(ctx context.Context, tx pgx.Tx, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.documents[doc.DocumentID]
	// Totals have their own writer.
	if existed {
		doc.TaxableAmount, doc.VATAmount, doc.TotalAmount = prev.TaxableAmount, prev.VATAmount, prev.TotalAmount
	}
	doc.Lines = nil
	s.documents[doc.DocumentID] = doc
	asMemTx(tx).record(func() {
		if existed {
			s.documents[doc.DocumentID] = prev
		} else {
			delete(s.documents, doc.DocumentID)
		}
	})
	return nil
}

func (s *memStore) ReplaceDocumentLines(ctx context.Context, tx pgx.Tx, documentID string, lines []domain.DocumentLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.lines[documentID]
	s.lines[documentID] = append([]domain.DocumentLine{}, lines...)
	asMemTx(tx).record(func() {
		if existed {
			s.lines[documentID] = prev
		} else {
			delete(s.lines, documentID)
		}
	})
	return nil
}

func (s *memStore) SumDocumentLines(ctx context.Context, tx pgx.Tx, documentID string) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	taxable, vat := decimal.Zero, decimal.Zero
	for _, l := range s.lines[documentID] {
		taxable = taxable.Add(l.TaxableAmount)
		vat = vat.Add(l.VATAmount)
	}
	return taxable, vat, nil
}

func (s *memStore) UpdateDocumentTotals(ctx context.Context, tx pgx.Tx, documentID string, taxable, vat, total decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return apperrors.NewNotFoundError("document " + documentID)
	}
	prev := doc
	doc.TaxableAmount, doc.VATAmount, doc.TotalAmount = taxable, vat, total
	s.documents[documentID] = doc
	asMemTx(tx).record(func() { s.restoreDocument(prev) })
	return nil
}

// restoreDocument puts back a previous header when the row still exists.
func (s *memStore) restoreDocument(prev domain.Document) {
	if _, ok := s.documents[prev.DocumentID]; ok {
		s.documents[prev.DocumentID] = prev
	}
}

func (s *memStore) DeleteDocument(ctx context.Context, tx pgx.Tx, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return apperrors.NewNotFoundError("document " + documentID)
	}
	lines := s.lines[documentID]
	delete(s.documents, documentID)
	delete(s.lines, documentID)

	removed := map[string]domain.Installment{}
	for id, inst := range s.installments {
		if inst.DocumentID == documentID {
			removed[id] = inst
			delete(s.installments, id)
		}
	}
	unlinked := s.unlinkMovementsLocked(removed)

	asMemTx(tx).record(func() {
		s.documents[documentID] = doc
		s.lines[documentID] = lines
		for id, inst := range removed {
			s.installments[id] = inst
		}
		for id, m := range unlinked {
			s.movements[id] = m
		}
	})
	return nil
}

// unlinkMovementsLocked clears installment links pointing at removed and
// returns the movements as they were.
func (s *memStore) unlinkMovementsLocked(removed map[string]domain.Installment) map[string]domain.LedgerMovement {
	unlinked := map[string]domain.LedgerMovement{}
	for id, m := range s.movements {
		if m.InstallmentID == nil {
			continue
		}
		if _, ok := removed[*m.InstallmentID]; ok {
			unlinked[id] = m
			m.InstallmentID = nil
			s.movements[id] = m
		}
	}
	return unlinked
}

// --- Numbering ---

func (s *memStore) LockNumberSequence(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int) (int, error) {
	key := seqKey{docType, year}
	if !s.optimistic {
		s.mu.Lock()
		lock, ok := s.seqLocks[key]
		if !ok {
			lock = &sync.Mutex{}
			s.seqLocks[key] = lock
		}
		s.mu.Unlock()

		lock.Lock()
		t := asMemTx(tx)
		t.held = append(t.held, lock)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequences[key], nil
}

func (s *memStore) ListDocumentNumbers(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var numbers []string
	for _, d := range s.documents {
		if d.DocumentType == docType && d.Year() == year && d.Number != "" {
			numbers = append(numbers, d.Number)
		}
	}
	return numbers, nil
}

func (s *memStore) AssignDocumentNumber(ctx context.Context, tx pgx.Tx, documentID string, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignCalls++
	if s.forcedConflicts > 0 {
		s.forcedConflicts--
		return fmt.Errorf("%w: number %s taken", apperrors.ErrConflict, number)
	}

	doc, ok := s.documents[documentID]
	if !ok {
		return apperrors.NewNotFoundError("document " + documentID)
	}
	for id, other := range s.documents {
		if id != documentID && other.DocumentType == doc.DocumentType && other.Number == number {
			return fmt.Errorf("%w: number %s taken", apperrors.ErrConflict, number)
		}
	}
	prev := doc
	doc.Number = number
	s.documents[documentID] = doc
	asMemTx(tx).record(func() { s.restoreDocument(prev) })
	return nil
}

func (s *memStore) StoreNumberSequence(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int, lastIssued int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := seqKey{docType, year}
	prev, existed := s.sequences[key]
	s.sequences[key] = lastIssued
	asMemTx(tx).record(func() {
		if existed {
			s.sequences[key] = prev
		} else {
			delete(s.sequences, key)
		}
	})
	return nil
}

// --- Installments ---

func (s *memStore) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.installments[installmentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("installment " + installmentID)
	}
	return &inst, nil
}

func (s *memStore) ListInstallmentsByDocument(ctx context.Context, documentID string) ([]domain.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Installment
	for _, inst := range s.installments {
		if inst.DocumentID == documentID {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (s *memStore) ListInstallments(ctx context.Context, filter domain.InstallmentFilter, limit int, nextToken *string) ([]domain.Installment, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Installment
	for _, inst := range s.installments {
		if filter.DocumentID != nil && inst.DocumentID != *filter.DocumentID {
			continue
		}
		if filter.PartyID != nil && (inst.Party == nil || inst.Party.PartyID() != *filter.PartyID) {
			continue
		}
		if filter.Direction != nil && inst.Direction != *filter.Direction {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, inst.Status) {
			continue
		}
		if filter.DueBefore != nil && !inst.DueDate.Before(*filter.DueBefore) {
			continue
		}
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func containsStatus(statuses []domain.InstallmentStatus, status domain.InstallmentStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *memStore) FindInstallmentByIDForUpdate(ctx context.Context, tx pgx.Tx, installmentID string) (*domain.Installment, error) {
	return s.FindInstallmentByID(ctx, installmentID)
}

func (s *memStore) SaveInstallments(ctx context.Context, tx pgx.Tx, installments []domain.Installment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inst := range installments {
		s.installments[inst.InstallmentID] = inst
		id := inst.InstallmentID
		asMemTx(tx).record(func() { delete(s.installments, id) })
	}
	return nil
}

func (s *memStore) ListInstallmentsByDocumentForUpdate(ctx context.Context, tx pgx.Tx, documentID string) ([]domain.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Installment
	for _, inst := range s.installments {
		if inst.DocumentID == documentID {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstallmentID < out[j].InstallmentID })
	return out, nil
}

func (s *memStore) DeleteInstallments(ctx context.Context, tx pgx.Tx, installmentIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := map[string]domain.Installment{}
	for _, id := range installmentIDs {
		if inst, ok := s.installments[id]; ok {
			removed[id] = inst
			delete(s.installments, id)
		}
	}
	unlinked := s.unlinkMovementsLocked(removed)
	asMemTx(tx).record(func() {
		for id, inst := range removed {
			s.installments[id] = inst
		}
		for id, m := range unlinked {
			s.movements[id] = m
		}
	})
	return nil
}

func (s *memStore) VoidInstallmentsByDocument(ctx context.Context, tx pgx.Tx, documentID string, actorID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, inst := range s.installments {
		if inst.DocumentID != documentID {
			continue
		}
		prev := inst
		inst.Status = domain.InstallmentVoided
		inst.Touch(actorID, at)
		s.installments[id] = inst
		asMemTx(tx).record(func() { s.installments[prev.InstallmentID] = prev })
	}
	return nil
}

func (s *memStore) UpdateInstallmentSettlement(ctx context.Context, tx pgx.Tx, installment domain.Installment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.installments[installment.InstallmentID]
	if !ok {
		return apperrors.NewNotFoundError("installment " + installment.InstallmentID)
	}
	updated := prev
	updated.AmountPaid = installment.AmountPaid
	updated.Status = installment.Status
	updated.AuditFields = installment.AuditFields
	s.installments[installment.InstallmentID] = updated
	asMemTx(tx).record(func() { s.installments[prev.InstallmentID] = prev })
	return nil
}

// --- Movements ---

func (s *memStore) FindMovementByID(ctx context.Context, movementID string) (*domain.LedgerMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[movementID]
	if !ok {
		return nil, apperrors.NewNotFoundError("movement " + movementID)
	}
	return &m, nil
}

func (s *memStore) ListMovementsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerMovement, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.LedgerMovement
	for _, m := range s.movements {
		if m.AccountID == accountID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovementDate.After(out[j].MovementDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (s *memStore) FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.LedgerMovement, error) {
	return s.FindMovementByID(ctx, movementID)
}

func (s *memStore) SaveMovement(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movements[movement.MovementID]; ok {
		return apperrors.ErrDuplicate
	}
	s.movements[movement.MovementID] = movement
	asMemTx(tx).record(func() { delete(s.movements, movement.MovementID) })
	return nil
}

func (s *memStore) UpdateMovement(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.movements[movement.MovementID]
	if !ok {
		return apperrors.NewNotFoundError("movement " + movement.MovementID)
	}
	s.movements[movement.MovementID] = movement
	asMemTx(tx).record(func() { s.movements[prev.MovementID] = prev })
	return nil
}

func (s *memStore) DeleteMovement(ctx context.Context, tx pgx.Tx, movementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.movements[movementID]
	if !ok {
		return apperrors.NewNotFoundError("movement " + movementID)
	}
	delete(s.movements, movementID)
	asMemTx(tx).record(func() { s.movements[movementID] = prev })
	return nil
}

func (s *memStore) LinkMovements(ctx context.Context, tx pgx.Tx, firstID, secondID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	first, ok1 := s.movements[firstID]
	second, ok2 := s.movements[secondID]
	if !ok1 || !ok2 {
		return apperrors.NewNotFoundError("transfer leg")
	}
	prevFirst, prevSecond := first, second
	first.LinkedMovementID = &secondID
	second.LinkedMovementID = &firstID
	s.movements[firstID] = first
	s.movements[secondID] = second
	asMemTx(tx).record(func() {
		s.movements[firstID] = prevFirst
		s.movements[secondID] = prevSecond
	})
	return nil
}

func (s *memStore) RelinkMovements(ctx context.Context, tx pgx.Tx, fromInstallmentIDs []string, toInstallmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := make(map[string]struct{}, len(fromInstallmentIDs))
	for _, id := range fromInstallmentIDs {
		from[id] = struct{}{}
	}
	for id, m := range s.movements {
		if m.InstallmentID == nil {
			continue
		}
		if _, ok := from[*m.InstallmentID]; !ok {
			continue
		}
		prev := m
		target := toInstallmentID
		m.InstallmentID = &target
		s.movements[id] = m
		asMemTx(tx).record(func() { s.movements[prev.MovementID] = prev })
	}
	return nil
}

func (s *memStore) SumMovementsByInstallment(ctx context.Context, tx pgx.Tx, installmentID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, m := range s.movements {
		if m.InstallmentID != nil && *m.InstallmentID == installmentID {
			sum = sum.Add(m.Amount)
		}
	}
	return sum, nil
}

// --- Parties and job sites ---

func (s *memStore) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parties[partyID]
	if !ok {
		return nil, apperrors.NewNotFoundError("party " + partyID)
	}
	return &p, nil
}

func (s *memStore) ListParties(ctx context.Context, kind *domain.PartyKind, search string, limit int, offset int) ([]domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Party
	for _, p := range s.parties {
		if kind == nil || p.Kind == *kind {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) SaveParty(ctx context.Context, party domain.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[party.PartyID] = party
	return nil
}

func (s *memStore) UpdateParty(ctx context.Context, party domain.Party) error {
	return s.SaveParty(ctx, party)
}

func (s *memStore) FindJobSiteByID(ctx context.Context, jobSiteID string) (*domain.JobSite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobSites[jobSiteID]
	if !ok {
		return nil, apperrors.NewNotFoundError("job site " + jobSiteID)
	}
	return &j, nil
}

func (s *memStore) ListJobSites(ctx context.Context, customerID *string, status *domain.JobSiteStatus, limit int, offset int) ([]domain.JobSite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.JobSite
	for _, j := range s.jobSites {
		if customerID != nil && j.CustomerID != *customerID {
			continue
		}
		if status != nil && j.Status != *status {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (s *memStore) SaveJobSite(ctx context.Context, jobSite domain.JobSite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobSites[jobSite.JobSiteID] = jobSite
	return nil
}

func (s *memStore) UpdateJobSite(ctx context.Context, jobSite domain.JobSite) error {
	return s.SaveJobSite(ctx, jobSite)
}

// --- Catalogs ---

func (s *memStore) FindVATRateByID(ctx context.Context, vatRateID string) (*domain.VATRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.vatRates[vatRateID]
	if !ok {
		return nil, apperrors.NewNotFoundError("VAT rate " + vatRateID)
	}
	return &r, nil
}

func (s *memStore) FindVATRatesByIDs(ctx context.Context, vatRateIDs []string) (map[string]domain.VATRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.VATRate, len(vatRateIDs))
	for _, id := range vatRateIDs {
		if r, ok := s.vatRates[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (s *memStore) ListVATRates(ctx context.Context, activeOnly bool) ([]domain.VATRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.VATRate
	for _, r := range s.vatRates {
		if !activeOnly || r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) FindPaymentTermByID(ctx context.Context, paymentTermID string) (*domain.PaymentTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.terms[paymentTermID]
	if !ok {
		return nil, apperrors.NewNotFoundError("payment term " + paymentTermID)
	}
	return &t, nil
}

func (s *memStore) ListPaymentTerms(ctx context.Context, activeOnly bool) ([]domain.PaymentTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.PaymentTerm
	for _, t := range s.terms {
		if !activeOnly || t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) FindOperatingCategoryByID(ctx context.Context, categoryID string) (*domain.OperatingCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("operating category " + categoryID)
	}
	return &c, nil
}

func (s *memStore) ListOperatingCategories(ctx context.Context, activeOnly bool) ([]domain.OperatingCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.OperatingCategory
	for _, c := range s.categories {
		if !activeOnly || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memStore) SaveVATRate(ctx context.Context, rate domain.VATRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vatRates[rate.VATRateID] = rate
	return nil
}

func (s *memStore) UpdateVATRate(ctx context.Context, rate domain.VATRate) error {
	return s.SaveVATRate(ctx, rate)
}

func (s *memStore) SavePaymentTerm(ctx context.Context, term domain.PaymentTerm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms[term.PaymentTermID] = term
	return nil
}

func (s *memStore) UpdatePaymentTerm(ctx context.Context, term domain.PaymentTerm) error {
	return s.SavePaymentTerm(ctx, term)
}

func (s *memStore) SaveOperatingCategory(ctx context.Context, category domain.OperatingCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.CategoryID] = category
	return nil
}

func (s *memStore) UpdateOperatingCategory(ctx context.Context, category domain.OperatingCategory) error {
	return s.SaveOperatingCategory(ctx, category)
}

// --- Financial accounts ---

func (s *memStore) FindFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("financial account " + accountID)
	}
	a.Balance = s.balanceLocked(accountID, nil)
	return &a, nil
}

func (s *memStore) ListFinancialAccounts(ctx context.Context, activeOnly bool) ([]domain.FinancialAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.FinancialAccount
	for _, a := range s.accounts {
		if activeOnly && !a.IsActive {
			continue
		}
		a.Balance = s.balanceLocked(a.AccountID, nil)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) SaveFinancialAccount(ctx context.Context, account domain.FinancialAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.Balance = decimal.Zero
	s.accounts[account.AccountID] = account
	return nil
}

func (s *memStore) UpdateFinancialAccount(ctx context.Context, account domain.FinancialAccount) error {
	return s.SaveFinancialAccount(ctx, account)
}

func (s *memStore) balanceLocked(accountID string, asOf *time.Time) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range s.movements {
		if m.AccountID != accountID {
			continue
		}
		if asOf != nil && m.MovementDate.After(*asOf) {
			continue
		}
		balance = balance.Add(m.SignedAmount())
	}
	return balance
}

// --- Reporting ---

func (s *memStore) ListOutstandingInstallments(ctx context.Context, filter domain.DashboardFilter) ([]domain.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Installment
	for _, inst := range s.installments {
		if !containsStatus(filter.Statuses, inst.Status) {
			continue
		}
		if filter.DocumentType != nil {
			doc, ok := s.documents[inst.DocumentID]
			if !ok || doc.DocumentType != *filter.DocumentType {
				continue
			}
		}
		out = append(out, inst)
	}
	return out, nil
}

func (s *memStore) GetAccountBalances(ctx context.Context, asOf time.Time) ([]domain.AccountBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AccountBalance
	for _, a := range s.accounts {
		balance := s.balanceLocked(a.AccountID, &asOf)
		if !a.IsActive && balance.IsZero() {
			continue
		}
		out = append(out, domain.AccountBalance{AccountID: a.AccountID, Name: a.Name, Balance: balance})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var (
	_ portsrepo.DocumentRepositoryWithTx         = (*memStore)(nil)
	_ portsrepo.InstallmentRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.MovementRepositoryWithTx         = (*memStore)(nil)
	_ portsrepo.PartyRepositoryFacade            = (*memStore)(nil)
	_ portsrepo.JobSiteRepositoryFacade          = (*memStore)(nil)
	_ portsrepo.CatalogRepositoryFacade          = (*memStore)(nil)
	_ portsrepo.FinancialAccountRepositoryFacade = (*memStore)(nil)
	_ portsrepo.ReportingRepository              = (*memStore)(nil)
)

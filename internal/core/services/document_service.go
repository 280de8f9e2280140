package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
	"github.com/SscSPs/biz_management_app/internal/utils/accounting"
	"github.com/SscSPs/biz_management_app/internal/utils/normalize"
	"github.com/SscSPs/biz_management_app/internal/utils/numbering"
	"github.com/SscSPs/biz_management_app/internal/utils/pagination"
)

// DefaultConflictRetryAttempts bounds how often a save that lost a race is replayed.
const DefaultConflictRetryAttempts = 5

// documentService owns the document save pipeline: line and header
// recomputation, sales numbering and installment generation, all in one
// transaction per attempt.
type documentService struct {
	BaseService
	documentRepo    portsrepo.DocumentRepositoryWithTx
	installmentRepo portsrepo.InstallmentWriter
	movementRepo    portsrepo.MovementWriter
	partyRepo       portsrepo.PartyReader
	jobSiteRepo     portsrepo.JobSiteReader
	catalogRepo     portsrepo.CatalogReader
	retryAttempts   int
	now             func() time.Time
}

// DocumentServiceOption is a functional option for configuring the document service
type DocumentServiceOption func(*documentService)

// WithConflictRetryAttempts sets how many times a conflicting save is attempted.
func WithConflictRetryAttempts(n int) DocumentServiceOption {
	return func(s *documentService) {
		if n > 0 {
			s.retryAttempts = n
		}
	}
}

// WithDocumentClock overrides the clock used for audit fields.
func WithDocumentClock(now func() time.Time) DocumentServiceOption {
	return func(s *documentService) {
		s.now = now
	}
}

// NewDocumentService creates a new document service with the provided options
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryWithTx,
	installmentRepo portsrepo.InstallmentWriter,
	movementRepo portsrepo.MovementWriter,
	partyRepo portsrepo.PartyReader,
	jobSiteRepo portsrepo.JobSiteReader,
	catalogRepo portsrepo.CatalogReader,
	options ...DocumentServiceOption,
) portssvc.DocumentSvcFacade {
	svc := &documentService{
		documentRepo:    documentRepo,
		installmentRepo: installmentRepo,
		movementRepo:    movementRepo,
		partyRepo:       partyRepo,
		jobSiteRepo:     jobSiteRepo,
		catalogRepo:     catalogRepo,
		retryAttempts:   DefaultConflictRetryAttempts,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document", slog.String("document_id", documentID))
		}
		return nil, err
	}

	lines, err := s.documentRepo.FindDocumentLines(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load document lines", slog.String("document_id", documentID))
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, *string, error) {
	filter := domain.DocumentFilter{
		DocumentType: params.DocumentType,
		Status:       params.Status,
		PartyID:      params.PartyID,
		JobSiteID:    params.JobSiteID,
		Year:         params.Year,
	}
	docs, next, err := s.documentRepo.ListDocuments(ctx, filter, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list documents")
		}
		return nil, nil, err
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, next, nil
}

func (s *documentService) CreateDocument(ctx context.Context, req dto.SaveDocumentRequest, actorID string) (*domain.Document, error) {
	documentID := uuid.NewString()
	status := req.Status
	if status == "" {
		status = domain.DocumentDraft
	}

	var doc *domain.Document
	err := s.withConflictRetry(ctx, documentID, func() error {
		var err error
		doc, err = s.persist(ctx, documentID, true, &req, status, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_type", string(doc.DocumentType)),
		slog.String("status", string(doc.Status)),
		slog.String("number", doc.Number))
	return doc, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, documentID string, req dto.SaveDocumentRequest, actorID string) (*domain.Document, error) {
	var doc *domain.Document
	err := s.withConflictRetry(ctx, documentID, func() error {
		var err error
		doc, err = s.persist(ctx, documentID, false, &req, req.Status, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Document updated",
		slog.String("document_id", doc.DocumentID),
		slog.String("status", string(doc.Status)),
		slog.String("number", doc.Number))
	return doc, nil
}

func (s *documentService) ChangeDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, actorID string) (*domain.Document, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown document status %q", status))
	}

	var doc *domain.Document
	err := s.withConflictRetry(ctx, documentID, func() error {
		var err error
		doc, err = s.persist(ctx, documentID, false, nil, status, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Document status changed",
		slog.String("document_id", doc.DocumentID),
		slog.String("status", string(doc.Status)),
		slog.String("number", doc.Number))
	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID string, actorID string) error {
	tx, err := s.documentRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.documentRepo.Rollback(ctx, tx) }()

	if _, err := s.documentRepo.FindDocumentByIDForUpdate(ctx, tx, documentID); err != nil {
		return err
	}
	if err := s.documentRepo.DeleteDocument(ctx, tx, documentID); err != nil {
		s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		return err
	}
	if err := s.documentRepo.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID), slog.String("actor_id", actorID))
	return nil
}

// withConflictRetry replays fn while it fails with apperrors.ErrConflict.
func (s *documentService) withConflictRetry(ctx context.Context, documentID string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		s.LogDebug(ctx, "Document save conflicted, retrying",
			slog.String("document_id", documentID),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	s.LogError(ctx, err, "Document save kept conflicting", slog.String("document_id", documentID))
	return apperrors.NewAppError(http.StatusConflict, "document save conflicted, please try again", err)
}

// persist runs one attempt of a document save. req is nil for a status-only
// change, which keeps the persisted lines.
func (s *documentService) persist(ctx context.Context, documentID string, isNew bool, req *dto.SaveDocumentRequest, status domain.DocumentStatus, actorID string) (*domain.Document, error) {
	now := s.now()

	tx, err := s.documentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.documentRepo.Rollback(ctx, tx) }()

	var doc domain.Document
	if isNew {
		doc = domain.Document{
			DocumentID:   documentID,
			DocumentType: req.DocumentType,
			Status:       domain.DocumentDraft,
			AuditFields:  domain.NewAuditFields(actorID, now),
		}
	} else {
		existing, err := s.documentRepo.FindDocumentByIDForUpdate(ctx, tx, documentID)
		if err != nil {
			return nil, err
		}
		doc = *existing
		doc.Touch(actorID, now)
	}

	var lines []domain.DocumentLine
	if req != nil {
		if err := s.applyHeader(ctx, &doc, *req, isNew); err != nil {
			return nil, err
		}
		if lines, err = s.buildLines(ctx, doc, req.Lines); err != nil {
			return nil, err
		}
	}
	if status != "" {
		doc.Status = status
	}
	if err := validateForStatus(doc); err != nil {
		return nil, err
	}

	if err := s.documentRepo.SaveDocumentHeader(ctx, tx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document header", slog.String("document_id", doc.DocumentID))
		return nil, err
	}
	if req != nil {
		if err := s.documentRepo.ReplaceDocumentLines(ctx, tx, doc.DocumentID, lines); err != nil {
			s.LogError(ctx, err, "Failed to save document lines", slog.String("document_id", doc.DocumentID))
			return nil, err
		}
	}

	taxable, vat, err := s.documentRepo.SumDocumentLines(ctx, tx, doc.DocumentID)
	if err != nil {
		return nil, err
	}
	accounting.ApplyHeaderTotals(&doc, taxable, vat)
	if err := s.documentRepo.UpdateDocumentTotals(ctx, tx, doc.DocumentID, doc.TaxableAmount, doc.VATAmount, doc.TotalAmount); err != nil {
		return nil, err
	}

	if doc.Status == domain.DocumentConfirmed && doc.DocumentType.IsSales() && doc.Number == "" {
		if err := s.assignNumber(ctx, tx, &doc); err != nil {
			return nil, err
		}
	}

	if err := s.syncInstallments(ctx, tx, doc, actorID, now); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if req != nil {
		doc.Lines = lines
	} else if doc.Lines, err = s.documentRepo.FindDocumentLines(ctx, doc.DocumentID); err != nil {
		return nil, err
	}
	return &doc, nil
}

// applyHeader copies the editable header fields of req onto doc and checks
// the references they point at.
func (s *documentService) applyHeader(ctx context.Context, doc *domain.Document, req dto.SaveDocumentRequest, isNew bool) error {
	if !req.DocumentType.IsValid() {
		return apperrors.NewValidationError("documentType", fmt.Sprintf("unknown document type %q", req.DocumentType))
	}
	if !isNew && req.DocumentType != doc.DocumentType {
		return apperrors.NewValidationError("documentType", "document type cannot be changed")
	}
	if req.DocumentDate.IsZero() {
		return apperrors.NewValidationError("documentDate", "document date is required")
	}
	date := domain.DateOnly(req.DocumentDate.Time)
	if doc.Number != "" && doc.DocumentType.IsSales() && date.Year() != doc.Year() {
		return apperrors.NewValidationError("documentDate", "a numbered document cannot move to another year")
	}

	// Sales numbers are only ever assigned by the sequencer.
	if !doc.DocumentType.IsSales() {
		number := normalize.Upper(req.Number)
		if number != doc.Number && !isNew && doc.Status != domain.DocumentDraft {
			return apperrors.NewValidationError("number", "number can only be changed while the document is a draft")
		}
		doc.Number = number
	}

	customerID := blankToNil(req.CustomerID)
	supplierID := blankToNil(req.SupplierID)
	if customerID != nil && supplierID != nil {
		return apperrors.NewValidationError("supplierID", "a document has either a customer or a supplier")
	}
	if err := s.checkParty(ctx, "customerID", customerID, domain.PartyCustomer); err != nil {
		return err
	}
	if err := s.checkParty(ctx, "supplierID", supplierID, domain.PartySupplier); err != nil {
		return err
	}

	jobSiteID := blankToNil(req.JobSiteID)
	if jobSiteID != nil {
		if _, err := s.jobSiteRepo.FindJobSiteByID(ctx, *jobSiteID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("jobSiteID", "job site not found")
			}
			return err
		}
	}

	paymentTermID := blankToNil(req.PaymentTermID)
	if paymentTermID != nil && !sameID(paymentTermID, doc.PaymentTermID) {
		term, err := s.catalogRepo.FindPaymentTermByID(ctx, *paymentTermID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("paymentTermID", "payment term not found")
			}
			return err
		}
		if !term.IsActive {
			return apperrors.NewValidationError("paymentTermID", "payment term is inactive")
		}
	}

	doc.DocumentDate = date
	doc.CustomerID = customerID
	doc.SupplierID = supplierID
	doc.JobSiteID = jobSiteID
	doc.PaymentTermID = paymentTermID
	doc.Notes = strings.TrimSpace(req.Notes)
	return nil
}

func (s *documentService) checkParty(ctx context.Context, field string, partyID *string, kind domain.PartyKind) error {
	if partyID == nil {
		return nil
	}
	party, err := s.partyRepo.FindPartyByID(ctx, *partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError(field, "party not found")
		}
		return err
	}
	if party.Kind != kind {
		return apperrors.NewValidationError(field, fmt.Sprintf("party %s is a %s, not a %s", party.PartyID, party.Kind, kind))
	}
	return nil
}

// validateForStatus enforces what a document needs before it can hold status.
func validateForStatus(doc domain.Document) error {
	if !doc.Status.IsValid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown document status %q", doc.Status))
	}
	if doc.Status != domain.DocumentConfirmed {
		return nil
	}
	if doc.DocumentType.IsSales() && doc.CustomerID == nil {
		return apperrors.NewValidationError("customerID", "a customer is required to confirm a sales document")
	}
	if !doc.DocumentType.IsSales() {
		if doc.SupplierID == nil {
			return apperrors.NewValidationError("supplierID", "a supplier is required to confirm a purchase document")
		}
		if doc.Number == "" {
			return apperrors.NewValidationError("number", "number is required to confirm a purchase document")
		}
	}
	return nil
}

// buildLines validates the requested lines and computes their amounts.
func (s *documentService) buildLines(ctx context.Context, doc domain.Document, reqs []dto.DocumentLineRequest) ([]domain.DocumentLine, error) {
	if len(reqs) == 0 {
		return []domain.DocumentLine{}, nil
	}

	ids := make([]string, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		if _, ok := seen[r.VATRateID]; !ok {
			seen[r.VATRateID] = struct{}{}
			ids = append(ids, r.VATRateID)
		}
	}
	rates, err := s.catalogRepo.FindVATRatesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	allowNegative := doc.DocumentType.IsCreditNote()
	lines := make([]domain.DocumentLine, len(reqs))
	for i, r := range reqs {
		field := fmt.Sprintf("lines[%d]", i)
		rate, ok := rates[r.VATRateID]
		if !ok {
			return nil, apperrors.NewValidationError(field+".vatRateID", "VAT rate not found")
		}
		if !rate.IsActive {
			return nil, apperrors.NewValidationError(field+".vatRateID", "VAT rate is inactive")
		}

		line := domain.DocumentLine{
			LineID:      uuid.NewString(),
			DocumentID:  doc.DocumentID,
			Position:    i + 1,
			Description: normalize.Upper(r.Description),
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			VATRateID:   r.VATRateID,
		}
		if err := accounting.ValidateLineSigns(line, allowNegative); err != nil {
			if line.Quantity.IsNegative() {
				field += ".quantity"
			} else {
				field += ".unitPrice"
			}
			return nil, apperrors.NewValidationError(field, err.Error())
		}
		accounting.RecomputeLine(&line, rate)
		lines[i] = line
	}
	return lines, nil
}

// assignNumber stamps the next sales number while holding the (type, year)
// counter lock.
func (s *documentService) assignNumber(ctx context.Context, tx pgx.Tx, doc *domain.Document) error {
	prefix := doc.DocumentType.NumberPrefix()
	year := doc.Year()

	lastIssued, err := s.documentRepo.LockNumberSequence(ctx, tx, doc.DocumentType, year)
	if err != nil {
		return err
	}
	existing, err := s.documentRepo.ListDocumentNumbers(ctx, tx, doc.DocumentType, year)
	if err != nil {
		return err
	}

	seq := numbering.Next(existing, prefix, year, lastIssued)
	number := numbering.Format(prefix, year, seq)
	if err := s.documentRepo.AssignDocumentNumber(ctx, tx, doc.DocumentID, number); err != nil {
		return err
	}
	if err := s.documentRepo.StoreNumberSequence(ctx, tx, doc.DocumentType, year, seq); err != nil {
		return err
	}

	doc.Number = number
	s.LogDebug(ctx, "Document number assigned",
		slog.String("document_id", doc.DocumentID),
		slog.String("number", number))
	return nil
}

// syncInstallments voids the installments of an unconfirmed document and
// rebuilds them for a confirmed one. A confirmed document whose schedule is
// unchanged keeps its installments untouched. A replaced installment hands its
// linked movements to the new installment of the same direction.
func (s *documentService) syncInstallments(ctx context.Context, tx pgx.Tx, doc domain.Document, actorID string, now time.Time) error {
	if doc.Status != domain.DocumentConfirmed {
		return s.installmentRepo.VoidInstallmentsByDocument(ctx, tx, doc.DocumentID, actorID, now)
	}

	existing, err := s.installmentRepo.ListInstallmentsByDocumentForUpdate(ctx, tx, doc.DocumentID)
	if err != nil {
		return err
	}

	var term *domain.PaymentTerm
	if doc.PaymentTermID != nil {
		t, err := s.catalogRepo.FindPaymentTermByID(ctx, *doc.PaymentTermID)
		if err != nil {
			return err
		}
		term = t
	}

	generated := accounting.GenerateInstallments(doc, term)
	live := make([]domain.Installment, 0, len(existing))
	for _, inst := range existing {
		if inst.Status != domain.InstallmentVoided {
			live = append(live, inst)
		}
	}
	if len(live) > 0 && len(live) == len(existing) && sameSchedule(live, generated) {
		s.LogDebug(ctx, "Installments unchanged", slog.String("document_id", doc.DocumentID))
		return nil
	}

	for i := range generated {
		generated[i].InstallmentID = uuid.NewString()
		generated[i].AuditFields = domain.NewAuditFields(actorID, now)
	}
	if err := s.installmentRepo.SaveInstallments(ctx, tx, generated); err != nil {
		return err
	}

	var relinked []domain.Installment
	for _, inst := range generated {
		var from []string
		for _, old := range live {
			if old.Direction == inst.Direction {
				from = append(from, old.InstallmentID)
			}
		}
		if len(from) == 0 {
			continue
		}
		if err := s.movementRepo.RelinkMovements(ctx, tx, from, inst.InstallmentID); err != nil {
			return err
		}
		relinked = append(relinked, inst)
		// A single installment per direction receives the payments.
		live = removeDirection(live, inst.Direction)
	}

	ids := make([]string, len(existing))
	for i, inst := range existing {
		ids[i] = inst.InstallmentID
	}
	if err := s.installmentRepo.DeleteInstallments(ctx, tx, ids); err != nil {
		return err
	}

	for _, inst := range relinked {
		paid, err := s.movementRepo.SumMovementsByInstallment(ctx, tx, inst.InstallmentID)
		if err != nil {
			return err
		}
		if paid.IsZero() {
			continue
		}
		inst.ApplyPaid(paid)
		if err := s.installmentRepo.UpdateInstallmentSettlement(ctx, tx, inst); err != nil {
			return err
		}
		s.LogDebug(ctx, "Payments carried over to regenerated installment",
			slog.String("installment_id", inst.InstallmentID),
			slog.String("amount_paid", paid.StringFixed(2)))
	}
	return nil
}

// sameSchedule reports whether the stored installments already match the
// generated ones on amount, due date, party and direction.
func sameSchedule(stored, generated []domain.Installment) bool {
	if len(stored) != len(generated) {
		return false
	}
	for i := range stored {
		a, b := stored[i], generated[i]
		if a.Direction != b.Direction || !a.AmountDue.Equal(b.AmountDue) || !domain.DateOnly(a.DueDate).Equal(domain.DateOnly(b.DueDate)) {
			return false
		}
		if (a.Party == nil) != (b.Party == nil) {
			return false
		}
		if a.Party != nil && (a.Party.PartyKind() != b.Party.PartyKind() || a.Party.PartyID() != b.Party.PartyID()) {
			return false
		}
	}
	return true
}

func removeDirection(insts []domain.Installment, direction domain.InstallmentDirection) []domain.Installment {
	out := insts[:0]
	for _, inst := range insts {
		if inst.Direction != direction {
			out = append(out, inst)
		}
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

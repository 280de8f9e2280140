package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
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
	"github.com/SscSPs/biz_management_app/internal/utils/pagination"
)

// ledgerService records cash movements and keeps the installments they
// settle in step with them.
type ledgerService struct {
	BaseService
	movementRepo    portsrepo.MovementRepositoryWithTx
	installmentRepo portsrepo.InstallmentRepositoryFacade
	accountRepo     portsrepo.FinancialAccountReader
	catalogRepo     portsrepo.CatalogReader
	partyRepo       portsrepo.PartyReader
	jobSiteRepo     portsrepo.JobSiteReader
	now             func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerClock overrides the clock used for audit fields and overdue checks.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(
	movementRepo portsrepo.MovementRepositoryWithTx,
	installmentRepo portsrepo.InstallmentRepositoryFacade,
	accountRepo portsrepo.FinancialAccountReader,
	catalogRepo portsrepo.CatalogReader,
	partyRepo portsrepo.PartyReader,
	jobSiteRepo portsrepo.JobSiteReader,
	options ...LedgerServiceOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		movementRepo:    movementRepo,
		installmentRepo: installmentRepo,
		accountRepo:     accountRepo,
		catalogRepo:     catalogRepo,
		partyRepo:       partyRepo,
		jobSiteRepo:     jobSiteRepo,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetMovementByID(ctx context.Context, movementID string) (*domain.LedgerMovement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find movement", slog.String("movement_id", movementID))
		}
		return nil, err
	}
	return movement, nil
}

func (s *ledgerService) ListMovementsByAccount(ctx context.Context, accountID string, params dto.PageParams) ([]domain.LedgerMovement, *string, error) {
	if _, err := s.accountRepo.FindFinancialAccountByID(ctx, accountID); err != nil {
		return nil, nil, err
	}

	movements, next, err := s.movementRepo.ListMovementsByAccount(ctx, accountID, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list movements", slog.String("account_id", accountID))
		}
		return nil, nil, err
	}
	if movements == nil {
		movements = []domain.LedgerMovement{}
	}
	return movements, next, nil
}

func (s *ledgerService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest, actorID string) (*domain.LedgerMovement, error) {
	if err := s.validateMovementRequest(ctx, req); err != nil {
		return nil, err
	}

	now := s.now()
	movement := domain.LedgerMovement{
		MovementID:  uuid.NewString(),
		AuditFields: domain.NewAuditFields(actorID, now),
	}
	applyMovementRequest(&movement, req)

	tx, err := s.movementRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.movementRepo.Rollback(ctx, tx) }()

	locked, err := s.lockInstallments(ctx, tx, movement.InstallmentID)
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.SaveMovement(ctx, tx, movement); err != nil {
		s.LogError(ctx, err, "Failed to save movement", slog.String("movement_id", movement.MovementID))
		return nil, err
	}
	if err := s.settleInstallments(ctx, tx, locked, actorID, now); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Movement created",
		slog.String("movement_id", movement.MovementID),
		slog.String("account_id", movement.AccountID),
		slog.String("amount", movement.Amount.StringFixed(2)))
	return &movement, nil
}

func (s *ledgerService) UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, actorID string) (*domain.LedgerMovement, error) {
	if err := s.validateMovementRequest(ctx, req); err != nil {
		return nil, err
	}

	now := s.now()
	tx, err := s.movementRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.movementRepo.Rollback(ctx, tx) }()

	existing, err := s.movementRepo.FindMovementByIDForUpdate(ctx, tx, movementID)
	if err != nil {
		return nil, err
	}
	if existing.Direction == domain.Transfer {
		return nil, apperrors.NewValidationError("direction", "transfer legs cannot be edited, delete the transfer and record it again")
	}

	updated := *existing
	applyMovementRequest(&updated, req)
	updated.Touch(actorID, now)

	locked, err := s.lockInstallments(ctx, tx, existing.InstallmentID, updated.InstallmentID)
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.UpdateMovement(ctx, tx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update movement", slog.String("movement_id", movementID))
		return nil, err
	}
	if err := s.settleInstallments(ctx, tx, locked, actorID, now); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Movement updated", slog.String("movement_id", movementID))
	return &updated, nil
}

func (s *ledgerService) DeleteMovement(ctx context.Context, movementID string, actorID string) error {
	now := s.now()
	tx, err := s.movementRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.movementRepo.Rollback(ctx, tx) }()

	existing, err := s.movementRepo.FindMovementByIDForUpdate(ctx, tx, movementID)
	if err != nil {
		return err
	}

	locked, err := s.lockInstallments(ctx, tx, existing.InstallmentID)
	if err != nil {
		return err
	}
	if existing.LinkedMovementID != nil {
		if err := s.movementRepo.DeleteMovement(ctx, tx, *existing.LinkedMovementID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	if err := s.movementRepo.DeleteMovement(ctx, tx, movementID); err != nil {
		s.LogError(ctx, err, "Failed to delete movement", slog.String("movement_id", movementID))
		return err
	}
	if err := s.settleInstallments(ctx, tx, locked, actorID, now); err != nil {
		return err
	}
	if err := s.movementRepo.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "Movement deleted", slog.String("movement_id", movementID))
	return nil
}

func (s *ledgerService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, actorID string) (*domain.LedgerMovement, *domain.LedgerMovement, error) {
	if req.MovementDate.IsZero() {
		return nil, nil, apperrors.NewValidationError("movementDate", "movement date is required")
	}
	if !accounting.RoundMoney(req.Amount).IsPositive() {
		return nil, nil, apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, nil, apperrors.NewValidationError("toAccountID", "source and destination accounts must differ")
	}
	if err := s.checkActiveAccount(ctx, "fromAccountID", req.FromAccountID); err != nil {
		return nil, nil, err
	}
	if err := s.checkActiveAccount(ctx, "toAccountID", req.ToAccountID); err != nil {
		return nil, nil, err
	}

	amount := accounting.RoundMoney(req.Amount)
	audit := domain.NewAuditFields(actorID, s.now())
	description := strings.TrimSpace(req.Description)
	date := domain.DateOnly(req.MovementDate.Time)
	outgoing := domain.LedgerMovement{
		MovementID:   uuid.NewString(),
		MovementDate: date,
		Description:  description,
		Amount:       amount.Neg(),
		Direction:    domain.Transfer,
		AccountID:    req.FromAccountID,
		AuditFields:  audit,
	}
	incoming := domain.LedgerMovement{
		MovementID:   uuid.NewString(),
		MovementDate: date,
		Description:  description,
		Amount:       amount,
		Direction:    domain.Transfer,
		AccountID:    req.ToAccountID,
		AuditFields:  audit,
	}

	tx, err := s.movementRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = s.movementRepo.Rollback(ctx, tx) }()

	for _, leg := range []domain.LedgerMovement{outgoing, incoming} {
		if err := s.movementRepo.SaveMovement(ctx, tx, leg); err != nil {
			s.LogError(ctx, err, "Failed to save transfer leg", slog.String("movement_id", leg.MovementID))
			return nil, nil, err
		}
	}
	if err := s.movementRepo.LinkMovements(ctx, tx, outgoing.MovementID, incoming.MovementID); err != nil {
		return nil, nil, err
	}
	if err := s.movementRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	outgoing.LinkedMovementID = &incoming.MovementID
	incoming.LinkedMovementID = &outgoing.MovementID
	s.LogInfo(ctx, "Transfer created",
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
		slog.String("amount", amount.StringFixed(2)))
	return &outgoing, &incoming, nil
}

func (s *ledgerService) GetInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	inst, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find installment", slog.String("installment_id", installmentID))
		}
		return nil, err
	}
	return inst, nil
}

func (s *ledgerService) ListInstallments(ctx context.Context, params dto.ListInstallmentsParams) ([]domain.Installment, *string, error) {
	filter := domain.InstallmentFilter{
		DocumentID: params.DocumentID,
		PartyID:    params.PartyID,
		Direction:  params.Direction,
		Statuses:   params.Status,
	}
	if params.DueBefore != nil {
		d, err := dto.ParseDate(*params.DueBefore)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("dueBefore", err.Error())
		}
		filter.DueBefore = &d.Time
	}

	insts, next, err := s.installmentRepo.ListInstallments(ctx, filter, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list installments")
		}
		return nil, nil, err
	}
	if insts == nil {
		insts = []domain.Installment{}
	}
	return insts, next, nil
}

func (s *ledgerService) ListInstallmentsByDocument(ctx context.Context, documentID string) ([]domain.Installment, error) {
	insts, err := s.installmentRepo.ListInstallmentsByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list installments of document", slog.String("document_id", documentID))
		return nil, err
	}
	if insts == nil {
		insts = []domain.Installment{}
	}
	return insts, nil
}

// validateMovementRequest checks an inflow or outflow and the rows it references.
func (s *ledgerService) validateMovementRequest(ctx context.Context, req dto.CreateMovementRequest) error {
	if req.Direction != domain.Inflow && req.Direction != domain.Outflow {
		return apperrors.NewValidationError("direction", "direction must be INFLOW or OUTFLOW, transfers have their own endpoint")
	}
	if req.MovementDate.IsZero() {
		return apperrors.NewValidationError("movementDate", "movement date is required")
	}
	if !accounting.RoundMoney(req.Amount).IsPositive() {
		return apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if err := s.checkActiveAccount(ctx, "accountID", req.AccountID); err != nil {
		return err
	}

	if id := blankToNil(req.CategoryID); id != nil {
		if _, err := s.catalogRepo.FindOperatingCategoryByID(ctx, *id); err != nil {
			return asFieldError(err, "categoryID", "operating category not found")
		}
	}
	if id := blankToNil(req.PartyID); id != nil {
		if _, err := s.partyRepo.FindPartyByID(ctx, *id); err != nil {
			return asFieldError(err, "partyID", "party not found")
		}
	}
	if id := blankToNil(req.JobSiteID); id != nil {
		if _, err := s.jobSiteRepo.FindJobSiteByID(ctx, *id); err != nil {
			return asFieldError(err, "jobSiteID", "job site not found")
		}
	}
	if id := blankToNil(req.InstallmentID); id != nil {
		inst, err := s.installmentRepo.FindInstallmentByID(ctx, *id)
		if err != nil {
			return asFieldError(err, "installmentID", "installment not found")
		}
		if inst.Status == domain.InstallmentVoided {
			return apperrors.NewValidationError("installmentID", "installment is voided")
		}
		expected := domain.Inflow
		if inst.Direction == domain.Payable {
			expected = domain.Outflow
		}
		if req.Direction != expected {
			return apperrors.NewValidationError("direction", "a "+string(inst.Direction)+" installment is settled by "+string(expected)+" movements")
		}
	}
	return nil
}

func (s *ledgerService) checkActiveAccount(ctx context.Context, field, accountID string) error {
	account, err := s.accountRepo.FindFinancialAccountByID(ctx, accountID)
	if err != nil {
		return asFieldError(err, field, "financial account not found")
	}
	if !account.IsActive {
		return apperrors.NewValidationError(field, "financial account is inactive")
	}
	return nil
}

// lockInstallments locks the distinct installments among ids in id order.
// Ids that no longer resolve are skipped.
func (s *ledgerService) lockInstallments(ctx context.Context, tx pgx.Tx, ids ...*string) ([]domain.Installment, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == nil || *id == "" {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		unique = append(unique, *id)
	}
	sort.Strings(unique)

	locked := make([]domain.Installment, 0, len(unique))
	for _, id := range unique {
		inst, err := s.installmentRepo.FindInstallmentByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogDebug(ctx, "Installment to reconcile no longer exists", slog.String("installment_id", id))
				continue
			}
			return nil, err
		}
		locked = append(locked, *inst)
	}
	return locked, nil
}

// settleInstallments re-reads the movements linked to each locked installment
// and stores the resulting paid amount and status.
func (s *ledgerService) settleInstallments(ctx context.Context, tx pgx.Tx, locked []domain.Installment, actorID string, now time.Time) error {
	for _, inst := range locked {
		paid, err := s.movementRepo.SumMovementsByInstallment(ctx, tx, inst.InstallmentID)
		if err != nil {
			return err
		}
		inst.ApplyPaid(paid)
		inst.Touch(actorID, now)
		if err := s.installmentRepo.UpdateInstallmentSettlement(ctx, tx, inst); err != nil {
			s.LogError(ctx, err, "Failed to update installment settlement", slog.String("installment_id", inst.InstallmentID))
			return err
		}
		s.LogDebug(ctx, "Installment reconciled",
			slog.String("installment_id", inst.InstallmentID),
			slog.String("amount_paid", paid.StringFixed(2)),
			slog.String("status", string(inst.Status)))
	}
	return nil
}

func applyMovementRequest(m *domain.LedgerMovement, req dto.CreateMovementRequest) {
	m.MovementDate = domain.DateOnly(req.MovementDate.Time)
	m.Description = strings.TrimSpace(req.Description)
	m.Amount = accounting.RoundMoney(req.Amount)
	m.Direction = req.Direction
	m.AccountID = req.AccountID
	m.CategoryID = blankToNil(req.CategoryID)
	m.PartyID = blankToNil(req.PartyID)
	m.JobSiteID = blankToNil(req.JobSiteID)
	m.InstallmentID = blankToNil(req.InstallmentID)
}

// asFieldError turns a missing reference into a validation error on field.
func asFieldError(err error, field, message string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewValidationError(field, message)
	}
	return err
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
	"github.com/SscSPs/biz_management_app/internal/handlers"
	"github.com/SscSPs/biz_management_app/internal/platform/config"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testIssuer    = "bizledger-test"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	documentSvc  *MockDocumentService
	ledgerSvc    *MockLedgerService
	registrySvc  *MockRegistryService
	reportingSvc *MockReportingService
	userID       string
	token        string
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

// generateTestToken creates a signed JWT for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.documentSvc = new(MockDocumentService)
	suite.ledgerSvc = new(MockLedgerService)
	suite.registrySvc = new(MockRegistryService)
	suite.reportingSvc = new(MockReportingService)
	suite.userID = uuid.NewString()
	suite.token = suite.generateTestToken(suite.userID)

	cfg := &config.Config{
		IsProduction: true,
		JWTSecret:    testJWTSecret,
		JWTIssuer:    testIssuer,
	}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Document:  suite.documentSvc,
		Ledger:    suite.ledgerSvc,
		Registry:  suite.registrySvc,
		Reporting: suite.reportingSvc,
	})
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.documentSvc.AssertExpectations(suite.T())
	suite.ledgerSvc.AssertExpectations(suite.T())
	suite.registrySvc.AssertExpectations(suite.T())
	suite.reportingSvc.AssertExpectations(suite.T())
}

// do serves an authenticated request against the router.
func (suite *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Authorization", "Bearer "+suite.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleDocument(id string) *domain.Document {
	customerID := uuid.NewString()
	return &domain.Document{
		DocumentID:    id,
		DocumentType:  domain.SalesInvoice,
		Status:        domain.DocumentConfirmed,
		Number:        "FT-2025-000001",
		DocumentDate:  time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		CustomerID:    &customerID,
		TaxableAmount: decimal.RequireFromString("1000.00"),
		VATAmount:     decimal.RequireFromString("220.00"),
		TotalAmount:   decimal.RequireFromString("1220.00"),
		Lines: []domain.DocumentLine{{
			LineID:        uuid.NewString(),
			DocumentID:    id,
			Position:      1,
			Description:   "INSTALLAZIONE",
			Quantity:      decimal.NewFromInt(2),
			UnitPrice:     decimal.NewFromInt(500),
			VATRateID:     uuid.NewString(),
			TaxableAmount: decimal.RequireFromString("1000.00"),
			VATAmount:     decimal.RequireFromString("220.00"),
		}},
	}
}

// --- Auth and health ---

func (suite *HandlerTestSuite) TestHealth_NoAuth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestAPI_RequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.documentSvc.AssertNotCalled(suite.T(), "ListDocuments", mock.Anything, mock.Anything)
}

// --- Documents ---

func (suite *HandlerTestSuite) TestCreateDocument_Success() {
	docID := uuid.NewString()
	vatRateID := uuid.NewString()
	expected := sampleDocument(docID)

	suite.documentSvc.On("CreateDocument", mock.Anything,
		mock.MatchedBy(func(req dto.SaveDocumentRequest) bool {
			return req.DocumentType == domain.SalesInvoice &&
				req.Status == domain.DocumentConfirmed &&
				req.DocumentDate.Format(dto.DateLayout) == "2025-01-31" &&
				len(req.Lines) == 1 &&
				req.Lines[0].VATRateID == vatRateID &&
				req.Lines[0].UnitPrice.Equal(decimal.NewFromInt(500))
		}),
		suite.userID,
	).Return(expected, nil).Once()

	body := `{"documentType":"SALES_INVOICE","status":"CONFIRMED","documentDate":"2025-01-31",
		"lines":[{"description":"installazione","quantity":"2","unitPrice":"500","vatRateID":"` + vatRateID + `"}]}`
	w := suite.do(http.MethodPost, "/api/v1/documents", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(docID, resp.DocumentID)
	suite.Equal("FT-2025-000001", resp.Number)
	suite.True(resp.TotalAmount.Equal(decimal.RequireFromString("1220.00")))
	suite.Len(resp.Lines, 1)
}

func (suite *HandlerTestSuite) TestCreateDocument_BindErrorNamesLineField() {
	body := `{"documentType":"SALES_INVOICE","documentDate":"2025-01-31",
		"lines":[{"description":"x","quantity":"1","unitPrice":"10"}]}`
	w := suite.do(http.MethodPost, "/api/v1/documents", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("lines[0].vatRateID", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestCreateDocument_UnknownType() {
	w := suite.do(http.MethodPost, "/api/v1/documents", `{"documentType":"RECEIPT","documentDate":"2025-01-31"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("documentType", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestCreateDocument_ServiceValidationError() {
	suite.documentSvc.On("CreateDocument", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.NewValidationError("customerID", "a confirmed sales document needs a customer")).Once()

	w := suite.do(http.MethodPost, "/api/v1/documents", `{"documentType":"SALES_INVOICE","status":"CONFIRMED","documentDate":"2025-01-31"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("customerID", resp.Field)
	suite.Contains(resp.Error, "needs a customer")
}

func (suite *HandlerTestSuite) TestUpdateDocument_ConflictExhausted() {
	docID := uuid.NewString()
	suite.documentSvc.On("UpdateDocument", mock.Anything, docID, mock.Anything, suite.userID).
		Return(nil, apperrors.NewAppError(http.StatusConflict, "document save conflicted, please try again", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPut, "/api/v1/documents/"+docID, `{"documentType":"SALES_INVOICE","documentDate":"2025-01-31"}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.decodeError(w).Error, "try again")
}

func (suite *HandlerTestSuite) TestGetDocument_NotFound() {
	docID := uuid.NewString()
	suite.documentSvc.On("GetDocumentByID", mock.Anything, docID).
		Return(nil, apperrors.NewNotFoundError("document "+docID)).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/"+docID, "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetDocument_InternalError() {
	docID := uuid.NewString()
	suite.documentSvc.On("GetDocumentByID", mock.Anything, docID).
		Return(nil, apperrors.ErrInternal).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/"+docID, "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to get document", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestListDocuments_PassesFilters() {
	next := "token-2"
	suite.documentSvc.On("ListDocuments", mock.Anything,
		mock.MatchedBy(func(p dto.ListDocumentsParams) bool {
			return p.Limit == 5 && p.Year != nil && *p.Year == 2025 &&
				p.DocumentType != nil && *p.DocumentType == domain.PurchaseInvoice
		}),
	).Return([]domain.Document{*sampleDocument(uuid.NewString())}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents?limit=5&year=2025&documentType=PURCHASE_INVOICE", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDocumentsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Documents, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestChangeDocumentStatus() {
	docID := uuid.NewString()
	suite.documentSvc.On("ChangeDocumentStatus", mock.Anything, docID, domain.DocumentDraft, suite.userID).
		Return(&domain.Document{DocumentID: docID, DocumentType: domain.SalesInvoice, Status: domain.DocumentDraft}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/documents/"+docID+"/status", `{"status":"DRAFT"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"DRAFT"`)
}

func (suite *HandlerTestSuite) TestChangeDocumentStatus_InvalidStatus() {
	w := suite.do(http.MethodPost, "/api/v1/documents/"+uuid.NewString()+"/status", `{"status":"PAID"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("status", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestDeleteDocument() {
	docID := uuid.NewString()
	suite.documentSvc.On("DeleteDocument", mock.Anything, docID, suite.userID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/documents/"+docID, "")

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestListDocumentInstallments() {
	docID := uuid.NewString()
	customerID := uuid.NewString()
	suite.documentSvc.On("GetDocumentByID", mock.Anything, docID).Return(sampleDocument(docID), nil).Once()
	suite.ledgerSvc.On("ListInstallmentsByDocument", mock.Anything, docID).Return([]domain.Installment{{
		InstallmentID: uuid.NewString(),
		DocumentID:    docID,
		Party:         domain.CustomerRef{ID: customerID},
		Direction:     domain.Receivable,
		Status:        domain.InstallmentOpen,
		DueDate:       time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		AmountDue:     decimal.RequireFromString("1220.00"),
		AmountPaid:    decimal.Zero,
	}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/"+docID+"/installments", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.InstallmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("2025-03-02", resp[0].DueDate.Format(dto.DateLayout))
	suite.Equal(customerID, resp[0].Party.PartyID)
	suite.True(resp[0].Residual.Equal(decimal.RequireFromString("1220.00")))
}

// --- Installments ---

func (suite *HandlerTestSuite) TestGetInstallment_ResolvesPartyName() {
	instID := uuid.NewString()
	ref := domain.SupplierRef{ID: uuid.NewString()}
	suite.ledgerSvc.On("GetInstallmentByID", mock.Anything, instID).Return(&domain.Installment{
		InstallmentID: instID,
		Party:         ref,
		Direction:     domain.Payable,
		Status:        domain.InstallmentPartiallyPaid,
		AmountDue:     decimal.NewFromInt(100),
		AmountPaid:    decimal.NewFromInt(40),
	}, nil).Once()
	suite.registrySvc.On("ResolvePartyRef", mock.Anything, ref).Return(&domain.Party{PartyID: ref.ID, Name: "ACME SRL"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/installments/"+instID, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InstallmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ACME SRL", resp.Party.Name)
	suite.True(resp.Residual.Equal(decimal.NewFromInt(60)))
}

func (suite *HandlerTestSuite) TestListInstallments_BadDueBefore() {
	w := suite.do(http.MethodGet, "/api/v1/installments?dueBefore=31-01-2025", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("dueBefore", suite.decodeError(w).Field)
}

// --- Movements ---

func (suite *HandlerTestSuite) TestCreateMovement_Success() {
	accountID := uuid.NewString()
	instID := uuid.NewString()
	suite.ledgerSvc.On("CreateMovement", mock.Anything,
		mock.MatchedBy(func(req dto.CreateMovementRequest) bool {
			return req.AccountID == accountID && req.Direction == domain.Inflow &&
				req.InstallmentID != nil && *req.InstallmentID == instID &&
				req.Amount.Equal(decimal.RequireFromString("610.00"))
		}),
		suite.userID,
	).Return(&domain.LedgerMovement{
		MovementID:    uuid.NewString(),
		MovementDate:  time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.RequireFromString("610.00"),
		Direction:     domain.Inflow,
		AccountID:     accountID,
		InstallmentID: &instID,
	}, nil).Once()

	body := `{"movementDate":"2025-02-10","description":"incasso","amount":"610.00","direction":"INFLOW","accountID":"` +
		accountID + `","installmentID":"` + instID + `"}`
	w := suite.do(http.MethodPost, "/api/v1/movements", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2025-02-10", resp.MovementDate.Format(dto.DateLayout))
}

func (suite *HandlerTestSuite) TestCreateMovement_TransferDirectionRejected() {
	body := `{"movementDate":"2025-02-10","description":"x","amount":"1","direction":"TRANSFER","accountID":"` + uuid.NewString() + `"}`
	w := suite.do(http.MethodPost, "/api/v1/movements", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("direction", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestCreateTransfer_SameAccount() {
	accountID := uuid.NewString()
	body := `{"movementDate":"2025-02-10","description":"giroconto","amount":"100","fromAccountID":"` +
		accountID + `","toAccountID":"` + accountID + `"}`
	w := suite.do(http.MethodPost, "/api/v1/transfers", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("toAccountID", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestCreateTransfer_Success() {
	from, to := uuid.NewString(), uuid.NewString()
	outID, inID := uuid.NewString(), uuid.NewString()
	suite.ledgerSvc.On("CreateTransfer", mock.Anything, mock.Anything, suite.userID).Return(
		&domain.LedgerMovement{MovementID: outID, AccountID: from, Amount: decimal.NewFromInt(-100), Direction: domain.Transfer, LinkedMovementID: &inID},
		&domain.LedgerMovement{MovementID: inID, AccountID: to, Amount: decimal.NewFromInt(100), Direction: domain.Transfer, LinkedMovementID: &outID},
		nil,
	).Once()

	body := `{"movementDate":"2025-02-10","description":"giroconto","amount":"100","fromAccountID":"` +
		from + `","toAccountID":"` + to + `"}`
	w := suite.do(http.MethodPost, "/api/v1/transfers", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(outID, resp.Outgoing.MovementID)
	suite.Equal(inID, *resp.Outgoing.LinkedMovementID)
	suite.True(resp.Incoming.Amount.Equal(decimal.NewFromInt(100)))
}

func (suite *HandlerTestSuite) TestDeleteMovement_NotFound() {
	id := uuid.NewString()
	suite.ledgerSvc.On("DeleteMovement", mock.Anything, id, suite.userID).Return(apperrors.NewNotFoundError("movement " + id)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/movements/"+id, "")

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Accounts ---

func (suite *HandlerTestSuite) TestListAccountMovements() {
	accountID := uuid.NewString()
	suite.ledgerSvc.On("ListMovementsByAccount", mock.Anything, accountID,
		mock.MatchedBy(func(p dto.PageParams) bool { return p.Limit == 20 && p.NextToken == nil }),
	).Return([]domain.LedgerMovement{}, nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID+"/movements", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"movements":[]}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidIBAN() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"name":"cassa","iban":"IT60 X054"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("iban", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestListAccounts_ActiveOnly() {
	suite.registrySvc.On("ListFinancialAccounts", mock.Anything, true).Return([]domain.FinancialAccount{
		{AccountID: uuid.NewString(), Name: "CASSA", IsActive: true, Balance: decimal.NewFromInt(250)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?activeOnly=true", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"name":"CASSA"`)
}

// --- Registries ---

func (suite *HandlerTestSuite) TestCreateParty_Success() {
	suite.registrySvc.On("CreateParty", mock.Anything,
		mock.MatchedBy(func(req dto.SavePartyRequest) bool {
			return req.Kind == domain.PartyCustomer && req.VATNumber == "IT12345678903"
		}),
		suite.userID,
	).Return(&domain.Party{PartyID: uuid.NewString(), Kind: domain.PartyCustomer, Name: "ROSSI SPA", VATNumber: "IT12345678903", IsActive: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/parties", `{"kind":"CUSTOMER","name":"rossi spa","vatNumber":"IT12345678903"}`)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"name":"ROSSI SPA"`)
}

func (suite *HandlerTestSuite) TestCreateParty_BadVATNumber() {
	w := suite.do(http.MethodPost, "/api/v1/parties", `{"kind":"SUPPLIER","name":"x","vatNumber":"12345678901"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("vatNumber", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestCreateParty_Duplicate() {
	suite.registrySvc.On("CreateParty", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/parties", `{"kind":"CUSTOMER","name":"rossi"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListParties_Defaults() {
	suite.registrySvc.On("ListParties", mock.Anything,
		mock.MatchedBy(func(p dto.ListPartiesParams) bool {
			return p.Limit == 50 && p.Offset == 0 && p.Kind != nil && *p.Kind == domain.PartyEmployee
		}),
	).Return([]domain.Party{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/parties?kind=EMPLOYEE", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlerTestSuite) TestUpdateJobSite_ValidationField() {
	id := uuid.NewString()
	suite.registrySvc.On("UpdateJobSite", mock.Anything, id, mock.Anything, suite.userID).
		Return(nil, apperrors.NewValidationError("expectedEndDate", "must not be before startDate")).Once()

	body := `{"code":"c-1","name":"villa","customerID":"` + uuid.NewString() + `","startDate":"2025-05-01","expectedEndDate":"2025-04-01"}`
	w := suite.do(http.MethodPut, "/api/v1/job-sites/"+id, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("expectedEndDate", suite.decodeError(w).Field)
}

func (suite *HandlerTestSuite) TestCatalogs() {
	suite.registrySvc.On("ListVATRates", mock.Anything, false).
		Return([]domain.VATRate{{VATRateID: "v1", Description: "IVA 22%", Percentage: decimal.NewFromInt(22), IsActive: true}}, nil).Once()
	suite.registrySvc.On("CreatePaymentTerm", mock.Anything,
		mock.MatchedBy(func(req dto.SavePaymentTermRequest) bool { return req.DaysToDue == 30 }),
		suite.userID,
	).Return(&domain.PaymentTerm{PaymentTermID: "t1", Description: "30 GG DF", DaysToDue: 30, IsActive: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vat-rates", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"vatRateID":"v1"`)

	w = suite.do(http.MethodPost, "/api/v1/payment-terms", `{"description":"30 gg df","daysToDue":30}`)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/operating-categories", `{"name":"carburante","kind":"EXPENSE"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("kind", suite.decodeError(w).Field)
}

// --- Dashboard ---

func (suite *HandlerTestSuite) TestDashboard() {
	suite.reportingSvc.On("Dashboard", mock.Anything,
		mock.MatchedBy(func(p dto.DashboardParams) bool {
			return p.AsOf != nil && *p.AsOf == "2025-03-15" && len(p.Status) == 1 && p.Status[0] == domain.InstallmentOpen
		}),
	).Return(&domain.Dashboard{
		AsOf: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Receivables: domain.InstallmentTotals{
			Outstanding:      decimal.RequireFromString("1220.00"),
			Overdue:          decimal.RequireFromString("1220.00"),
			OutstandingCount: 1,
			OverdueCount:     1,
		},
		AccountBalances: []domain.AccountBalance{{AccountID: "a1", Name: "BANCA", Balance: decimal.NewFromInt(900)}},
		TotalLiquidity:  decimal.NewFromInt(900),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard?asOf=2025-03-15&status=OPEN", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DashboardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Receivables.OverdueCount)
	suite.True(resp.TotalLiquidity.Equal(decimal.NewFromInt(900)))
	suite.True(strings.HasPrefix(w.Body.String(), `{"asOf":"2025-03-15"`))
}

func (suite *HandlerTestSuite) TestDashboard_BadStatus() {
	w := suite.do(http.MethodGet, "/api/v1/dashboard?status=LATE", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("status[0]", suite.decodeError(w).Field)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

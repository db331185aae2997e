package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/core/services"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/tally"
	"github.com/goldloom/jewelshop_backend/pkg/crypto"
)

// --- Mock SyncLogRepository ---
type MockSyncLogRepository struct {
	mock.Mock
}

var _ portsrepo.SyncLogRepositoryFacade = (*MockSyncLogRepository)(nil)

func (m *MockSyncLogRepository) RecordAttempt(ctx context.Context, attempt portsrepo.SyncAttempt) (*domain.SyncLogEntry, error) {
	args := m.Called(ctx, attempt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncLogEntry), args.Error(1)
}

func (m *MockSyncLogRepository) ListFailed(ctx context.Context, maxAttempts int) ([]domain.SyncLogEntry, error) {
	args := m.Called(ctx, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncLogEntry), args.Error(1)
}

func (m *MockSyncLogRepository) ListRecent(ctx context.Context, limit int, status *domain.SyncStatus) ([]domain.SyncLogEntry, error) {
	args := m.Called(ctx, limit, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncLogEntry), args.Error(1)
}

// --- Mock SyncConfigRepository ---
type MockSyncConfigRepository struct {
	mock.Mock
}

var _ portsrepo.SyncConfigRepositoryFacade = (*MockSyncConfigRepository)(nil)

func (m *MockSyncConfigRepository) FindConfig(ctx context.Context) (*domain.SyncConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncConfig), args.Error(1)
}

func (m *MockSyncConfigRepository) SaveConfig(ctx context.Context, cfg domain.SyncConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// --- Mock SalesRepository ---
type MockSalesRepository struct {
	mock.Mock
}

var _ portsrepo.SalesRepositoryFacade = (*MockSalesRepository)(nil)

func (m *MockSalesRepository) SaveSalesBill(ctx context.Context, bill domain.SalesBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockSalesRepository) FindSalesBillByID(ctx context.Context, billID string) (*domain.SalesBill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesBill), args.Error(1)
}

func (m *MockSalesRepository) ListSalesBills(ctx context.Context, limit int, nextToken *string) ([]domain.SalesBill, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.SalesBill), nil, args.Error(2)
}

func (m *MockSalesRepository) SaveSalesReturn(ctx context.Context, ret domain.SalesReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockSalesRepository) FindSalesReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error) {
	args := m.Called(ctx, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesReturn), args.Error(1)
}

func (m *MockSalesRepository) ListSalesReturns(ctx context.Context, limit int, nextToken *string) ([]domain.SalesReturn, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.SalesReturn), nil, args.Error(2)
}

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaseRepositoryFacade = (*MockPurchaseRepository)(nil)

func (m *MockPurchaseRepository) SavePurchaseVoucher(ctx context.Context, voucher domain.PurchaseVoucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindPurchaseVoucherByID(ctx context.Context, voucherID string) (*domain.PurchaseVoucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseVoucher), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchaseVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.PurchaseVoucher, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.PurchaseVoucher), nil, args.Error(2)
}

// --- Mock CashRepository ---
type MockCashRepository struct {
	mock.Mock
}

var _ portsrepo.CashRepositoryFacade = (*MockCashRepository)(nil)

func (m *MockCashRepository) SaveCashEntry(ctx context.Context, entry domain.CashEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCashRepository) FindCashEntryByID(ctx context.Context, entryID string) (*domain.CashEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashEntry), args.Error(1)
}

func (m *MockCashRepository) ListCashEntries(ctx context.Context, limit int, nextToken *string) ([]domain.CashEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.CashEntry), nil, args.Error(2)
}

func (m *MockCashRepository) SavePaymentReceipt(ctx context.Context, receipt domain.PaymentReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockCashRepository) FindPaymentReceiptByID(ctx context.Context, receiptID string) (*domain.PaymentReceipt, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentReceipt), args.Error(1)
}

func (m *MockCashRepository) ListPaymentReceipts(ctx context.Context, limit int, nextToken *string) ([]domain.PaymentReceipt, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.PaymentReceipt), nil, args.Error(2)
}

// --- Mock TallyTransport ---
type MockTallyTransport struct {
	mock.Mock
}

var _ portssvc.TallyTransport = (*MockTallyTransport)(nil)

func (m *MockTallyTransport) Deliver(ctx context.Context, doc domain.VoucherDocument, cfg domain.ResolvedSyncConfig, timeout time.Duration) (*tally.DeliveryResult, error) {
	args := m.Called(ctx, doc, cfg, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tally.DeliveryResult), args.Error(1)
}

func (m *MockTallyTransport) TestConnection(ctx context.Context, cfg domain.ResolvedSyncConfig, timeout time.Duration) (*tally.DeliveryResult, error) {
	args := m.Called(ctx, cfg, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tally.DeliveryResult), args.Error(1)
}

// --- Suite ---
type TallySyncServiceTestSuite struct {
	suite.Suite
	ctx            context.Context
	syncLogRepo    *MockSyncLogRepository
	syncConfigRepo *MockSyncConfigRepository
	salesRepo      *MockSalesRepository
	purchaseRepo   *MockPurchaseRepository
	cashRepo       *MockCashRepository
	transport      *MockTallyTransport
	secrets        *crypto.SecretBox
	svc            portssvc.TallySvcFacade
}

func (s *TallySyncServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.syncLogRepo = new(MockSyncLogRepository)
	s.syncConfigRepo = new(MockSyncConfigRepository)
	s.salesRepo = new(MockSalesRepository)
	s.purchaseRepo = new(MockPurchaseRepository)
	s.cashRepo = new(MockCashRepository)
	s.transport = new(MockTallyTransport)

	var err error
	s.secrets, err = crypto.NewSecretBox("test-passphrase")
	s.Require().NoError(err)

	s.svc = services.NewTallySyncService(
		s.syncLogRepo,
		s.syncConfigRepo,
		s.salesRepo,
		s.purchaseRepo,
		s.cashRepo,
		s.transport,
		s.secrets,
	)
}

func TestTallySyncServiceSuite(t *testing.T) {
	suite.Run(t, new(TallySyncServiceTestSuite))
}

func (s *TallySyncServiceTestSuite) enabledConfig() *domain.SyncConfig {
	keyCipher, err := s.secrets.Encrypt("api-key")
	s.Require().NoError(err)
	secretCipher, err := s.secrets.Encrypt("api-secret")
	s.Require().NoError(err)

	return &domain.SyncConfig{
		TallyURL:        "http://tally.local:9000",
		CompanyName:     "Goldloom Jewellers",
		Enabled:         true,
		SyncMode:        domain.SyncModeAuto,
		AutoSyncEnabled: true,
		ConnectionType:  "http",
		APIKeyCipher:    keyCipher,
		APISecretCipher: secretCipher,
	}
}

func sampleBill() domain.SalesBill {
	return domain.SalesBill{
		BillID:   "bill-1",
		BillNo:   "SB-001",
		BillDate: time.Now(),
		NetTotal: decimal.NewFromInt(5000),
	}
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_Success() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(s.enabledConfig(), nil)
	s.transport.On("Deliver", s.ctx, mock.AnythingOfType("domain.VoucherDocument"), mock.MatchedBy(func(cfg domain.ResolvedSyncConfig) bool {
		// Credentials must arrive decrypted at the transport.
		return cfg.APIKey == "api-key" && cfg.APISecret == "api-secret"
	}), tally.DefaultDeliverTimeout).Return(&tally.DeliveryResult{StatusCode: 200, RawBody: "<ENVELOPE/>"}, nil)
	s.syncLogRepo.On("RecordAttempt", s.ctx, mock.MatchedBy(func(a portsrepo.SyncAttempt) bool {
		return a.Type == domain.KindSalesBill && a.ID == "bill-1" && a.Status == domain.SyncSuccess && a.ReferenceNo == "SB-001"
	})).Return(&domain.SyncLogEntry{}, nil)

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.True(result.Success)
	s.False(result.Disabled)
	s.Require().NotNil(result.TallyResponse)
	s.Equal("<ENVELOPE/>", *result.TallyResponse)
	s.syncLogRepo.AssertNumberOfCalls(s.T(), "RecordAttempt", 1)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_DisabledShortCircuit() {
	cfg := s.enabledConfig()
	cfg.Enabled = false
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(cfg, nil)

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.True(result.Disabled)
	s.False(result.Success)
	s.Nil(result.Error)
	s.transport.AssertNotCalled(s.T(), "Deliver", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.syncLogRepo.AssertNotCalled(s.T(), "RecordAttempt", mock.Anything, mock.Anything)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_DisabledSkipsCredentialDecryption() {
	// A disabled integration must short-circuit before the ciphers are
	// touched, so even garbage credentials leave the ledger alone.
	cfg := s.enabledConfig()
	cfg.Enabled = false
	cfg.APIKeyCipher = "not-a-valid-cipher"
	cfg.APISecretCipher = "also-broken"
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(cfg, nil)

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.True(result.Disabled)
	s.False(result.Success)
	s.Nil(result.Error)
	s.transport.AssertNotCalled(s.T(), "Deliver", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.syncLogRepo.AssertNotCalled(s.T(), "RecordAttempt", mock.Anything, mock.Anything)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_ConfigReadFailureWritesNoLedgerRow() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(nil, errors.New("connection refused"))

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.False(result.Success)
	s.False(result.Disabled)
	s.Require().NotNil(result.Error)
	s.Contains(*result.Error, "loading configuration")
	s.transport.AssertNotCalled(s.T(), "Deliver", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.syncLogRepo.AssertNotCalled(s.T(), "RecordAttempt", mock.Anything, mock.Anything)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_BadCipherOnEnabledConfigRecordsFailure() {
	cfg := s.enabledConfig()
	cfg.APIKeyCipher = "not-a-valid-cipher"
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(cfg, nil)
	s.syncLogRepo.On("RecordAttempt", s.ctx, mock.MatchedBy(func(a portsrepo.SyncAttempt) bool {
		return a.Status == domain.SyncFailed && a.Error != nil
	})).Return(&domain.SyncLogEntry{}, nil)

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.False(result.Success)
	s.Require().NotNil(result.Error)
	s.Contains(*result.Error, "resolving credentials")
	s.transport.AssertNotCalled(s.T(), "Deliver", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.syncLogRepo.AssertNumberOfCalls(s.T(), "RecordAttempt", 1)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_AutoAgainstManualMode() {
	cfg := s.enabledConfig()
	cfg.SyncMode = domain.SyncModeManual
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(cfg, nil)

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), true)

	s.True(result.Disabled)
	s.transport.AssertNotCalled(s.T(), "Deliver", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_ManualOverridesManualMode() {
	cfg := s.enabledConfig()
	cfg.SyncMode = domain.SyncModeManual
	cfg.AutoSyncEnabled = false
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(cfg, nil)
	s.transport.On("Deliver", s.ctx, mock.Anything, mock.Anything, tally.DefaultDeliverTimeout).
		Return(&tally.DeliveryResult{StatusCode: 200, RawBody: "ok"}, nil)
	s.syncLogRepo.On("RecordAttempt", s.ctx, mock.Anything).Return(&domain.SyncLogEntry{}, nil)

	// An explicit operator-triggered sync runs even in manual mode.
	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.True(result.Success)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_NeverConfigured() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(nil, apperrors.ErrNotFound)

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.True(result.Disabled)
	s.syncLogRepo.AssertNotCalled(s.T(), "RecordAttempt", mock.Anything, mock.Anything)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_DeliveryFailureRecorded() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(s.enabledConfig(), nil)
	s.transport.On("Deliver", s.ctx, mock.Anything, mock.Anything, tally.DefaultDeliverTimeout).
		Return(nil, errors.New("tally returned status 500: boom"))
	s.syncLogRepo.On("RecordAttempt", s.ctx, mock.MatchedBy(func(a portsrepo.SyncAttempt) bool {
		return a.Status == domain.SyncFailed && a.Error != nil
	})).Return(&domain.SyncLogEntry{}, nil)

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.False(result.Success)
	s.False(result.Disabled)
	s.Require().NotNil(result.Error)
	s.Contains(*result.Error, "500")
	s.syncLogRepo.AssertNumberOfCalls(s.T(), "RecordAttempt", 1)
}

func (s *TallySyncServiceTestSuite) TestSyncSalesBill_LedgerWriteFailureDoesNotFailSync() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(s.enabledConfig(), nil)
	s.transport.On("Deliver", s.ctx, mock.Anything, mock.Anything, tally.DefaultDeliverTimeout).
		Return(&tally.DeliveryResult{StatusCode: 200, RawBody: "ok"}, nil)
	s.syncLogRepo.On("RecordAttempt", s.ctx, mock.Anything).Return(nil, errors.New("db down"))

	result := s.svc.SyncSalesBill(s.ctx, sampleBill(), false)

	s.True(result.Success, "the voucher reached Tally")
}

func (s *TallySyncServiceTestSuite) TestRetryFailedSyncs_SkipsDeletedAndContinues() {
	failed := []domain.SyncLogEntry{
		{TransactionType: domain.KindSalesBill, TransactionID: "gone", ReferenceNo: "SB-404"},
		{TransactionType: domain.KindCashEntry, TransactionID: "cash-1", ReferenceNo: "CE-001"},
	}
	s.syncLogRepo.On("ListFailed", s.ctx, 5).Return(failed, nil)
	s.salesRepo.On("FindSalesBillByID", s.ctx, "gone").Return(nil, apperrors.ErrNotFound)

	entry := domain.CashEntry{
		EntryID:         "cash-1",
		EntryNo:         "CE-001",
		EntryDate:       time.Now(),
		CashType:        domain.CashTypeOne,
		TransactionType: domain.CashTxnReceived,
		Amount:          decimal.NewFromInt(100),
	}
	s.cashRepo.On("FindCashEntryByID", s.ctx, "cash-1").Return(&entry, nil)
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(s.enabledConfig(), nil)
	s.transport.On("Deliver", s.ctx, mock.Anything, mock.Anything, tally.DefaultDeliverTimeout).
		Return(&tally.DeliveryResult{StatusCode: 200, RawBody: "ok"}, nil)
	s.syncLogRepo.On("RecordAttempt", s.ctx, mock.Anything).Return(&domain.SyncLogEntry{}, nil)

	outcomes, err := s.svc.RetryFailedSyncs(s.ctx, 5)

	s.Require().NoError(err)
	s.Require().Len(outcomes, 2)
	s.True(outcomes[0].Skipped, "deleted transaction is skipped, not retried")
	s.False(outcomes[0].Success)
	s.False(outcomes[1].Skipped)
	s.True(outcomes[1].Success, "sweep continues past a skipped entry")
}

func (s *TallySyncServiceTestSuite) TestRetryFailedSyncs_DefaultsAttemptCap() {
	s.syncLogRepo.On("ListFailed", s.ctx, services.DefaultRetryAttemptCap).Return([]domain.SyncLogEntry{}, nil)

	outcomes, err := s.svc.RetryFailedSyncs(s.ctx, 0)

	s.Require().NoError(err)
	s.Empty(outcomes)
}

func (s *TallySyncServiceTestSuite) TestUpdateConfig_PreservesCredentialsWhenAbsent() {
	current := s.enabledConfig()
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(current, nil)

	var saved domain.SyncConfig
	s.syncConfigRepo.On("SaveConfig", s.ctx, mock.MatchedBy(func(cfg domain.SyncConfig) bool {
		saved = cfg
		return true
	})).Return(nil)

	newURL := "http://tally.local:9999"
	resp, err := s.svc.UpdateConfig(s.ctx, dto.UpdateTallyConfigRequest{TallyURL: &newURL}, "user-1")

	s.Require().NoError(err)
	s.Equal(newURL, saved.TallyURL)
	s.Equal(current.APIKeyCipher, saved.APIKeyCipher, "absent credential keeps stored ciphertext")
	s.Equal(current.APISecretCipher, saved.APISecretCipher)
	s.Equal("user-1", saved.UpdatedBy)
	s.True(resp.HasCredentials)
}

func (s *TallySyncServiceTestSuite) TestUpdateConfig_ReencryptsNewCredential() {
	current := s.enabledConfig()
	oldCipher := current.APIKeyCipher
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(current, nil)

	var saved domain.SyncConfig
	s.syncConfigRepo.On("SaveConfig", s.ctx, mock.MatchedBy(func(cfg domain.SyncConfig) bool {
		saved = cfg
		return true
	})).Return(nil)

	newKey := "rotated-key"
	_, err := s.svc.UpdateConfig(s.ctx, dto.UpdateTallyConfigRequest{APIKey: &newKey}, "user-1")

	s.Require().NoError(err)
	s.NotEqual(oldCipher, saved.APIKeyCipher)

	plain, err := s.secrets.Decrypt(saved.APIKeyCipher)
	s.Require().NoError(err)
	s.Equal("rotated-key", plain)
}

func (s *TallySyncServiceTestSuite) TestUpdateConfig_FirstTimeCreatesRecord() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(nil, apperrors.ErrNotFound)
	s.syncConfigRepo.On("SaveConfig", s.ctx, mock.Anything).Return(nil)

	url := "http://tally.local:9000"
	enabled := true
	resp, err := s.svc.UpdateConfig(s.ctx, dto.UpdateTallyConfigRequest{TallyURL: &url, Enabled: &enabled}, "user-1")

	s.Require().NoError(err)
	s.Equal(url, resp.TallyURL)
	s.True(resp.Enabled)
	s.False(resp.HasCredentials)
	s.Equal(domain.SyncModeManual, resp.SyncMode)
}

func (s *TallySyncServiceTestSuite) TestGetConfig_NeverExposesSecrets() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(s.enabledConfig(), nil)

	resp, err := s.svc.GetConfig(s.ctx)

	s.Require().NoError(err)
	s.True(resp.HasCredentials)
}

func (s *TallySyncServiceTestSuite) TestTestConnection_Success() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(s.enabledConfig(), nil)
	s.transport.On("TestConnection", s.ctx, mock.Anything, tally.DefaultProbeTimeout).
		Return(&tally.DeliveryResult{StatusCode: 200, RawBody: "<ENVELOPE>company</ENVELOPE>"}, nil)

	result := s.svc.TestConnection(s.ctx)

	s.True(result.Success)
	s.Require().NotNil(result.Response)
	s.Contains(*result.Response, "company")
}

func (s *TallySyncServiceTestSuite) TestTestConnection_NotConfigured() {
	s.syncConfigRepo.On("FindConfig", s.ctx).Return(nil, apperrors.ErrNotFound)

	result := s.svc.TestConnection(s.ctx)

	s.False(result.Success)
	s.Contains(result.Message, "not configured")
}

// Plain tests for the business services' sync hand-off.

func TestCreateSalesBill_SavesBeforeSync(t *testing.T) {
	salesRepo := new(MockSalesRepository)
	tallySvc := new(MockTallySvc)

	salesRepo.On("SaveSalesBill", mock.Anything, mock.Anything).Return(nil)
	tallySvc.On("SyncSalesBill", mock.Anything, mock.Anything, true).
		Return(dto.TallySyncResult{Success: true})

	svc := services.NewSalesService(salesRepo, tallySvc)
	bill, err := svc.CreateSalesBill(context.Background(), dto.CreateSalesBillRequest{
		BillNo:   "SB-100",
		BillDate: time.Now(),
		NetTotal: decimal.NewFromInt(100),
	}, "user-1")

	require.NoError(t, err)
	assert.NotEmpty(t, bill.BillID)
	assert.Equal(t, "user-1", bill.CreatedBy)
	salesRepo.AssertCalled(t, "SaveSalesBill", mock.Anything, mock.Anything)
	tallySvc.AssertCalled(t, "SyncSalesBill", mock.Anything, mock.Anything, true)
}

func TestCreateSalesBill_SyncFailureDoesNotFailCreate(t *testing.T) {
	salesRepo := new(MockSalesRepository)
	tallySvc := new(MockTallySvc)

	salesRepo.On("SaveSalesBill", mock.Anything, mock.Anything).Return(nil)
	msg := "tally unreachable"
	tallySvc.On("SyncSalesBill", mock.Anything, mock.Anything, true).
		Return(dto.TallySyncResult{Success: false, Error: &msg})

	svc := services.NewSalesService(salesRepo, tallySvc)
	bill, err := svc.CreateSalesBill(context.Background(), dto.CreateSalesBillRequest{
		BillNo:   "SB-101",
		BillDate: time.Now(),
		NetTotal: decimal.NewFromInt(100),
	}, "user-1")

	require.NoError(t, err, "sync failure must not fail the business operation")
	assert.NotEmpty(t, bill.BillID)
}

// MockTallySvc mocks the orchestrator for business service tests.
type MockTallySvc struct {
	mock.Mock
}

var _ portssvc.TallySvcFacade = (*MockTallySvc)(nil)

func (m *MockTallySvc) SyncSalesBill(ctx context.Context, bill domain.SalesBill, autoSync bool) dto.TallySyncResult {
	args := m.Called(ctx, bill, autoSync)
	return args.Get(0).(dto.TallySyncResult)
}

func (m *MockTallySvc) SyncPurchaseVoucher(ctx context.Context, voucher domain.PurchaseVoucher, autoSync bool) dto.TallySyncResult {
	args := m.Called(ctx, voucher, autoSync)
	return args.Get(0).(dto.TallySyncResult)
}

func (m *MockTallySvc) SyncCashEntry(ctx context.Context, entry domain.CashEntry, autoSync bool) dto.TallySyncResult {
	args := m.Called(ctx, entry, autoSync)
	return args.Get(0).(dto.TallySyncResult)
}

func (m *MockTallySvc) SyncPaymentReceipt(ctx context.Context, receipt domain.PaymentReceipt, autoSync bool) dto.TallySyncResult {
	args := m.Called(ctx, receipt, autoSync)
	return args.Get(0).(dto.TallySyncResult)
}

func (m *MockTallySvc) SyncSalesReturn(ctx context.Context, ret domain.SalesReturn, autoSync bool) dto.TallySyncResult {
	args := m.Called(ctx, ret, autoSync)
	return args.Get(0).(dto.TallySyncResult)
}

func (m *MockTallySvc) RetryFailedSyncs(ctx context.Context, maxAttempts int) ([]dto.TallyRetryOutcome, error) {
	args := m.Called(ctx, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TallyRetryOutcome), args.Error(1)
}

func (m *MockTallySvc) GetSyncLogs(ctx context.Context, limit int, status *domain.SyncStatus) ([]domain.SyncLogEntry, error) {
	args := m.Called(ctx, limit, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncLogEntry), args.Error(1)
}

func (m *MockTallySvc) TestConnection(ctx context.Context) dto.TallyConnectionResult {
	args := m.Called(ctx)
	return args.Get(0).(dto.TallyConnectionResult)
}

func (m *MockTallySvc) GetConfig(ctx context.Context) (*dto.TallyConfigResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TallyConfigResponse), args.Error(1)
}

func (m *MockTallySvc) UpdateConfig(ctx context.Context, req dto.UpdateTallyConfigRequest, updaterUserID string) (*dto.TallyConfigResponse, error) {
	args := m.Called(ctx, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TallyConfigResponse), args.Error(1)
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/core/services"
)

// MockQuotaRepository is a mock type for the QuotaRepositoryFacade interface
type MockQuotaRepository struct {
	mock.Mock
}

func (m *MockQuotaRepository) FindQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaRepository) ListQuotas(ctx context.Context, tenantID string) ([]domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaRepository) FindQuotasAboveUsage(ctx context.Context, tenantID string, thresholdPercent int) ([]domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, thresholdPercent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaRepository) SaveQuota(ctx context.Context, quota domain.TenantQuota) error {
	args := m.Called(ctx, quota)
	return args.Error(0)
}

func (m *MockQuotaRepository) UpdateQuotaLimit(ctx context.Context, tenantID string, quotaType domain.QuotaType, limit int64, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tenantID, quotaType, limit, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockQuotaRepository) ConsumeQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaRepository) ReleaseQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaRepository) IncrementQuotaUsage(ctx context.Context, tenantID string, quotaType domain.QuotaType, amount int64, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType, amount, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaRepository) ResetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaRepository) ResetQuotaUsage(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---

type QuotaServiceTestSuite struct {
	suite.Suite
	mockRepo *MockQuotaRepository
	service  portssvc.QuotaSvcFacade

	tenantID string
	userID   string
}

func (suite *QuotaServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockQuotaRepository)
	suite.service = services.NewQuotaService(suite.mockRepo, nil, 80.0)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *QuotaServiceTestSuite) quota(quotaType domain.QuotaType, limit, usage int64) *domain.TenantQuota {
	return &domain.TenantQuota{
		QuotaID:      uuid.NewString(),
		TenantID:     suite.tenantID,
		QuotaType:    quotaType,
		QuotaLimit:   limit,
		CurrentUsage: usage,
		Status:       domain.QuotaOK,
		NextResetAt:  time.Now().AddDate(0, 1, 0),
	}
}

// --- Test Cases ---

func (suite *QuotaServiceTestSuite) TestConsumeQuota_Success() {
	ctx := context.Background()
	updated := suite.quota(domain.QuotaWorkers, 10, 4)

	suite.mockRepo.On("ConsumeQuota", ctx, suite.tenantID, domain.QuotaWorkers, suite.userID, mock.AnythingOfType("time.Time")).Return(updated, nil).Once()

	quota, err := suite.service.ConsumeQuota(ctx, suite.tenantID, domain.QuotaWorkers, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(quota)
	suite.Equal(int64(4), quota.CurrentUsage)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *QuotaServiceTestSuite) TestConsumeQuota_Exceeded() {
	ctx := context.Background()

	suite.mockRepo.On("ConsumeQuota", ctx, suite.tenantID, domain.QuotaJobs, suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrQuotaExceeded).Once()

	quota, err := suite.service.ConsumeQuota(ctx, suite.tenantID, domain.QuotaJobs, suite.userID)

	suite.Require().Error(err)
	suite.Nil(quota)
	suite.ErrorIs(err, apperrors.ErrQuotaExceeded)
}

func (suite *QuotaServiceTestSuite) TestConsumeQuota_UnconfiguredTypeAllowed() {
	ctx := context.Background()

	suite.mockRepo.On("ConsumeQuota", ctx, suite.tenantID, domain.QuotaAssets, suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	quota, err := suite.service.ConsumeQuota(ctx, suite.tenantID, domain.QuotaAssets, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(quota)
}

func (suite *QuotaServiceTestSuite) TestConsumeQuota_UnknownType() {
	ctx := context.Background()

	quota, err := suite.service.ConsumeQuota(ctx, suite.tenantID, domain.QuotaType("widgets"), suite.userID)

	suite.Require().Error(err)
	suite.Nil(quota)
	suite.ErrorIs(err, services.ErrUnknownQuotaType)
	suite.mockRepo.AssertNotCalled(suite.T(), "ConsumeQuota", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuotaServiceTestSuite) TestCheckQuota_HasCapacity() {
	ctx := context.Background()

	suite.mockRepo.On("FindQuota", ctx, suite.tenantID, domain.QuotaUsers).Return(suite.quota(domain.QuotaUsers, 10, 9), nil).Once()

	allowed, err := suite.service.CheckQuota(ctx, suite.tenantID, domain.QuotaUsers)

	suite.Require().NoError(err)
	suite.True(allowed)
}

func (suite *QuotaServiceTestSuite) TestCheckQuota_AtLimit() {
	ctx := context.Background()

	suite.mockRepo.On("FindQuota", ctx, suite.tenantID, domain.QuotaUsers).Return(suite.quota(domain.QuotaUsers, 10, 10), nil).Once()

	allowed, err := suite.service.CheckQuota(ctx, suite.tenantID, domain.QuotaUsers)

	suite.Require().NoError(err)
	suite.False(allowed)
}

func (suite *QuotaServiceTestSuite) TestCheckQuota_UnlimitedNegativeLimit() {
	ctx := context.Background()

	suite.mockRepo.On("FindQuota", ctx, suite.tenantID, domain.QuotaUsers).Return(suite.quota(domain.QuotaUsers, domain.UnlimitedQuota, 100000), nil).Once()

	allowed, err := suite.service.CheckQuota(ctx, suite.tenantID, domain.QuotaUsers)

	suite.Require().NoError(err)
	suite.True(allowed)
}

func (suite *QuotaServiceTestSuite) TestCheckQuota_UnconfiguredAllowed() {
	ctx := context.Background()

	suite.mockRepo.On("FindQuota", ctx, suite.tenantID, domain.QuotaUsers).Return(nil, apperrors.ErrNotFound).Once()

	allowed, err := suite.service.CheckQuota(ctx, suite.tenantID, domain.QuotaUsers)

	suite.Require().NoError(err)
	suite.True(allowed)
}

func (suite *QuotaServiceTestSuite) TestReleaseQuota_MissingRowIgnored() {
	ctx := context.Background()

	suite.mockRepo.On("ReleaseQuota", ctx, suite.tenantID, domain.QuotaWorkers, suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ReleaseQuota(ctx, suite.tenantID, domain.QuotaWorkers, suite.userID)

	suite.Require().NoError(err)
}

func (suite *QuotaServiceTestSuite) TestSetQuotaLimit_CreatesRowWhenMissing() {
	ctx := context.Background()

	suite.mockRepo.On("UpdateQuotaLimit", ctx, suite.tenantID, domain.QuotaJobs, int64(25), suite.userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveQuota", ctx, mock.MatchedBy(func(q domain.TenantQuota) bool {
		return q.QuotaType == domain.QuotaJobs && q.QuotaLimit == 25 && q.CurrentUsage == 0
	})).Return(nil).Once()
	suite.mockRepo.On("FindQuota", ctx, suite.tenantID, domain.QuotaJobs).Return(suite.quota(domain.QuotaJobs, 25, 0), nil).Once()

	quota, err := suite.service.SetQuotaLimit(ctx, suite.tenantID, domain.QuotaJobs, 25, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(quota)
	suite.Equal(int64(25), quota.QuotaLimit)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *QuotaServiceTestSuite) TestSeedDefaultQuotas_OneRowPerType() {
	ctx := context.Background()

	suite.mockRepo.On("SaveQuota", ctx, mock.AnythingOfType("domain.TenantQuota")).Return(nil).Times(len(domain.MeteredQuotaTypes))

	err := suite.service.SeedDefaultQuotas(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *QuotaServiceTestSuite) TestListQuotaAlerts_Severities() {
	ctx := context.Background()
	warning := suite.quota(domain.QuotaUsers, 10, 8)
	critical := suite.quota(domain.QuotaJobs, 10, 10)

	suite.mockRepo.On("FindQuotasAboveUsage", ctx, suite.tenantID, 80).Return([]domain.TenantQuota{*warning, *critical}, nil).Once()

	alerts, err := suite.service.ListQuotaAlerts(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 2)
	suite.Equal(domain.SeverityWarning, alerts[0].Severity)
	suite.Equal(domain.SeverityCritical, alerts[1].Severity)
}

func (suite *QuotaServiceTestSuite) TestListQuotaAlerts_ZeroLimitExceeded() {
	ctx := context.Background()

	// A hard block: limit 0 with no usage. The percentage test can never
	// trip for it, so the exceeded status alone must carry it into alerts.
	blocked := suite.quota(domain.QuotaWorkers, 0, 0)
	blocked.Status = domain.QuotaExceeded

	suite.mockRepo.On("FindQuotasAboveUsage", ctx, suite.tenantID, 80).Return([]domain.TenantQuota{*blocked}, nil).Once()

	alerts, err := suite.service.ListQuotaAlerts(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1)
	suite.Equal(domain.QuotaWorkers, alerts[0].QuotaType)
	suite.Equal(domain.SeverityCritical, alerts[0].Severity)
}

func (suite *QuotaServiceTestSuite) TestIncrementQuota_MovesCounter() {
	ctx := context.Background()

	suite.mockRepo.On("IncrementQuotaUsage", ctx, suite.tenantID, domain.QuotaUsers, int64(3), suite.userID, mock.AnythingOfType("time.Time")).
		Return(suite.quota(domain.QuotaUsers, 10, 8), nil).Once()

	quota, err := suite.service.IncrementQuota(ctx, suite.tenantID, domain.QuotaUsers, 3, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(quota)
	suite.Equal(int64(8), quota.CurrentUsage)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *QuotaServiceTestSuite) TestIncrementQuota_NonPositiveAmountRejected() {
	ctx := context.Background()

	quota, err := suite.service.IncrementQuota(ctx, suite.tenantID, domain.QuotaUsers, 0, suite.userID)

	suite.Require().Error(err)
	suite.Nil(quota)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "IncrementQuotaUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuotaServiceTestSuite) TestResetQuota_ZeroesSingleRow() {
	ctx := context.Background()

	suite.mockRepo.On("ResetQuota", ctx, suite.tenantID, domain.QuotaJobs, suite.userID, mock.AnythingOfType("time.Time")).
		Return(suite.quota(domain.QuotaJobs, 10, 0), nil).Once()

	quota, err := suite.service.ResetQuota(ctx, suite.tenantID, domain.QuotaJobs, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(quota)
	suite.Equal(int64(0), quota.CurrentUsage)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *QuotaServiceTestSuite) TestResetDueQuotas() {
	ctx := context.Background()

	suite.mockRepo.On("ResetQuotaUsage", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	count, err := suite.service.ResetDueQuotas(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
}

func TestQuotaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuotaServiceTestSuite))
}

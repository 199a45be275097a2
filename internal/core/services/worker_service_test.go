package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/core/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

// MockWorkerRepository is a mock type for the WorkerRepositoryFacade interface
type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) FindWorkerByID(ctx context.Context, tenantID, workerID string) (*domain.Worker, error) {
	args := m.Called(ctx, tenantID, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListWorkers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Worker, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) MarkWorkerDeleted(ctx context.Context, tenantID, workerID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, tenantID, workerID, deletedAt, deletedBy)
	return args.Error(0)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, tenantID, userID string) (*domain.User, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, tenantID, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, tenantID, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// MockQuotaService is a mock type for the QuotaSvcFacade interface
type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) GetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaService) ListQuotas(ctx context.Context, tenantID string) ([]domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaService) CheckQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (bool, error) {
	args := m.Called(ctx, tenantID, quotaType)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuotaService) ListQuotaAlerts(ctx context.Context, tenantID string) ([]domain.QuotaAlert, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuotaAlert), args.Error(1)
}

func (m *MockQuotaService) ConsumeQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaService) ReleaseQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) error {
	args := m.Called(ctx, tenantID, quotaType, requestingUserID)
	return args.Error(0)
}

func (m *MockQuotaService) SetQuotaLimit(ctx context.Context, tenantID string, quotaType domain.QuotaType, limit int64, requestingUserID string) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType, limit, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaService) IncrementQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, amount int64, requestingUserID string) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType, amount, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaService) ResetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) (*domain.TenantQuota, error) {
	args := m.Called(ctx, tenantID, quotaType, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantQuota), args.Error(1)
}

func (m *MockQuotaService) SeedDefaultQuotas(ctx context.Context, tenantID string, creatorUserID string) error {
	args := m.Called(ctx, tenantID, creatorUserID)
	return args.Error(0)
}

func (m *MockQuotaService) ResetDueQuotas(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---

type WorkerServiceTestSuite struct {
	suite.Suite
	mockWorkerRepo  *MockWorkerRepository
	mockUserRepo    *MockUserRepository
	mockAssignments *MockAssignmentRepository
	mockQuota       *MockQuotaService
	service         portssvc.WorkerSvcFacade

	tenantID string
	userID   string
}

func (suite *WorkerServiceTestSuite) SetupTest() {
	suite.mockWorkerRepo = new(MockWorkerRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAssignments = new(MockAssignmentRepository)
	suite.mockQuota = new(MockQuotaService)
	suite.service = services.NewWorkerService(suite.mockWorkerRepo, suite.mockUserRepo, suite.mockAssignments, nil, suite.mockQuota, nil)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *WorkerServiceTestSuite) TestCreateWorker_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()
	req := dto.CreateWorkerRequest{
		UserID:     targetUserID,
		HireDate:   time.Now(),
		HourlyRate: decimal.NewFromFloat(32.50),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.tenantID, targetUserID).Return(&domain.User{UserID: targetUserID, TenantID: suite.tenantID}, nil).Once()
	suite.mockQuota.On("ConsumeQuota", ctx, suite.tenantID, domain.QuotaWorkers, suite.userID).Return(nil, nil).Once()
	suite.mockWorkerRepo.On("SaveWorker", ctx, mock.AnythingOfType("domain.Worker")).Return(nil).Once()

	worker, err := suite.service.CreateWorker(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(worker)
	suite.NotEmpty(worker.WorkerID)
	suite.Equal(targetUserID, worker.UserID)
	suite.Equal(domain.EmploymentActive, worker.EmploymentStatus)
	suite.True(worker.HourlyRate.Equal(decimal.NewFromFloat(32.50)))
	suite.mockQuota.AssertExpectations(suite.T())
}

func (suite *WorkerServiceTestSuite) TestCreateWorker_UserMissing() {
	ctx := context.Background()
	req := dto.CreateWorkerRequest{UserID: uuid.NewString(), HireDate: time.Now()}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.tenantID, req.UserID).Return(nil, apperrors.ErrNotFound).Once()

	worker, err := suite.service.CreateWorker(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(worker)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockQuota.AssertNotCalled(suite.T(), "ConsumeQuota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkerServiceTestSuite) TestCreateWorker_QuotaExceeded() {
	ctx := context.Background()
	req := dto.CreateWorkerRequest{UserID: uuid.NewString(), HireDate: time.Now()}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.tenantID, req.UserID).Return(&domain.User{UserID: req.UserID}, nil).Once()
	suite.mockQuota.On("ConsumeQuota", ctx, suite.tenantID, domain.QuotaWorkers, suite.userID).Return(nil, apperrors.ErrQuotaExceeded).Once()

	worker, err := suite.service.CreateWorker(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(worker)
	suite.ErrorIs(err, apperrors.ErrQuotaExceeded)
	suite.mockWorkerRepo.AssertNotCalled(suite.T(), "SaveWorker", mock.Anything, mock.Anything)
}

func (suite *WorkerServiceTestSuite) TestCreateWorker_SaveFailureReleasesQuota() {
	ctx := context.Background()
	req := dto.CreateWorkerRequest{UserID: uuid.NewString(), HireDate: time.Now()}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.tenantID, req.UserID).Return(&domain.User{UserID: req.UserID}, nil).Once()
	suite.mockQuota.On("ConsumeQuota", ctx, suite.tenantID, domain.QuotaWorkers, suite.userID).Return(nil, nil).Once()
	suite.mockWorkerRepo.On("SaveWorker", ctx, mock.AnythingOfType("domain.Worker")).Return(apperrors.ErrDuplicate).Once()
	suite.mockQuota.On("ReleaseQuota", ctx, suite.tenantID, domain.QuotaWorkers, suite.userID).Return(nil).Once()

	worker, err := suite.service.CreateWorker(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(worker)
	suite.mockQuota.AssertExpectations(suite.T())
}

func (suite *WorkerServiceTestSuite) TestDeactivateWorker_OpenAssignmentsBlock() {
	ctx := context.Background()
	workerID := uuid.NewString()

	suite.mockAssignments.On("CountOpenAssignmentsByWorker", ctx, suite.tenantID, workerID).Return(2, nil).Once()

	err := suite.service.DeactivateWorker(ctx, suite.tenantID, workerID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrWorkerHasOpenAssignments.Error())
	suite.mockWorkerRepo.AssertNotCalled(suite.T(), "MarkWorkerDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkerServiceTestSuite) TestDeactivateWorker_SuccessReleasesQuota() {
	ctx := context.Background()
	workerID := uuid.NewString()

	suite.mockAssignments.On("CountOpenAssignmentsByWorker", ctx, suite.tenantID, workerID).Return(0, nil).Once()
	suite.mockWorkerRepo.On("MarkWorkerDeleted", ctx, suite.tenantID, workerID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()
	suite.mockQuota.On("ReleaseQuota", ctx, suite.tenantID, domain.QuotaWorkers, suite.userID).Return(nil).Once()

	err := suite.service.DeactivateWorker(ctx, suite.tenantID, workerID, suite.userID)

	suite.Require().NoError(err)
	suite.mockWorkerRepo.AssertExpectations(suite.T())
	suite.mockQuota.AssertExpectations(suite.T())
}

func (suite *WorkerServiceTestSuite) TestUpdateWorker_InvalidStatusRejected() {
	ctx := context.Background()
	workerID := uuid.NewString()
	bad := "sabbatical"

	suite.mockWorkerRepo.On("FindWorkerByID", ctx, suite.tenantID, workerID).Return(&domain.Worker{WorkerID: workerID, EmploymentStatus: domain.EmploymentActive}, nil).Once()

	worker, err := suite.service.UpdateWorker(ctx, suite.tenantID, workerID, dto.UpdateWorkerRequest{EmploymentStatus: &bad}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(worker)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestWorkerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerServiceTestSuite))
}

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
	"github.com/crewstack/workforce_app/internal/dto"
)

// MockLocationReader is a mock type for the LocationReader interface
type MockLocationReader struct {
	mock.Mock
}

func (m *MockLocationReader) FindLocationByID(ctx context.Context, tenantID, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, tenantID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationReader) ListLocations(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Location, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

// --- Test Suite Setup ---

type JobServiceTestSuite struct {
	suite.Suite
	mockJobRepo     *MockJobRepository
	mockLocations   *MockLocationReader
	mockAssignments *MockAssignmentRepository
	mockQuota       *MockQuotaService
	service         portssvc.JobSvcFacade

	tenantID string
	userID   string
}

func (suite *JobServiceTestSuite) SetupTest() {
	suite.mockJobRepo = new(MockJobRepository)
	suite.mockLocations = new(MockLocationReader)
	suite.mockAssignments = new(MockAssignmentRepository)
	suite.mockQuota = new(MockQuotaService)
	suite.service = services.NewJobService(suite.mockJobRepo, suite.mockLocations, suite.mockAssignments, nil, suite.mockQuota, nil)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *JobServiceTestSuite) jobWithStatus(status domain.JobStatus) *domain.Job {
	return &domain.Job{
		JobID:      uuid.NewString(),
		TenantID:   suite.tenantID,
		LocationID: uuid.NewString(),
		Title:      "Night shift cleanup",
		Status:     status,
	}
}

// --- Test Cases ---

func (suite *JobServiceTestSuite) TestCreateJob_Success() {
	ctx := context.Background()
	locationID := uuid.NewString()
	req := dto.CreateJobRequest{LocationID: locationID, Title: "Inventory count"}

	suite.mockLocations.On("FindLocationByID", ctx, suite.tenantID, locationID).Return(&domain.Location{LocationID: locationID}, nil).Once()
	suite.mockQuota.On("ConsumeQuota", ctx, suite.tenantID, domain.QuotaJobs, suite.userID).Return(nil, nil).Once()
	suite.mockJobRepo.On("SaveJob", ctx, mock.AnythingOfType("domain.Job")).Return(nil).Once()

	job, err := suite.service.CreateJob(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(job)
	suite.NotEmpty(job.JobID)
	suite.Equal(domain.JobPending, job.Status)
	suite.Equal(locationID, job.LocationID)
	suite.mockQuota.AssertExpectations(suite.T())
}

func (suite *JobServiceTestSuite) TestCreateJob_ScheduleOutOfOrder() {
	ctx := context.Background()
	start := time.Now().Add(4 * time.Hour)
	end := start.Add(-time.Hour)
	req := dto.CreateJobRequest{LocationID: uuid.NewString(), Title: "Bad schedule", ScheduledStart: &start, ScheduledEnd: &end}

	job, err := suite.service.CreateJob(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(job)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrScheduleOutOfOrder.Error())
	suite.mockQuota.AssertNotCalled(suite.T(), "ConsumeQuota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JobServiceTestSuite) TestCreateJob_UnknownLocation() {
	ctx := context.Background()
	req := dto.CreateJobRequest{LocationID: uuid.NewString(), Title: "Orphan job"}

	suite.mockLocations.On("FindLocationByID", ctx, suite.tenantID, req.LocationID).Return(nil, apperrors.ErrNotFound).Once()

	job, err := suite.service.CreateJob(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(job)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockQuota.AssertNotCalled(suite.T(), "ConsumeQuota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JobServiceTestSuite) TestCreateJob_SaveFailureReleasesQuota() {
	ctx := context.Background()
	req := dto.CreateJobRequest{LocationID: uuid.NewString(), Title: "Doomed job"}

	suite.mockLocations.On("FindLocationByID", ctx, suite.tenantID, req.LocationID).Return(&domain.Location{LocationID: req.LocationID}, nil).Once()
	suite.mockQuota.On("ConsumeQuota", ctx, suite.tenantID, domain.QuotaJobs, suite.userID).Return(nil, nil).Once()
	suite.mockJobRepo.On("SaveJob", ctx, mock.AnythingOfType("domain.Job")).Return(apperrors.ErrDuplicate).Once()
	suite.mockQuota.On("ReleaseQuota", ctx, suite.tenantID, domain.QuotaJobs, suite.userID).Return(nil).Once()

	job, err := suite.service.CreateJob(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(job)
	suite.mockQuota.AssertExpectations(suite.T())
}

func (suite *JobServiceTestSuite) TestUpdateJob_TerminalJobRejected() {
	ctx := context.Background()
	existing := suite.jobWithStatus(domain.JobCompleted)
	title := "New title"

	suite.mockJobRepo.On("FindJobByID", ctx, suite.tenantID, existing.JobID).Return(existing, nil).Once()

	job, err := suite.service.UpdateJob(ctx, suite.tenantID, existing.JobID, dto.UpdateJobRequest{Title: &title}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(job)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrJobAlreadyFinished.Error())
	suite.mockJobRepo.AssertNotCalled(suite.T(), "UpdateJob", mock.Anything, mock.Anything)
}

func (suite *JobServiceTestSuite) TestUpdateJob_MergedScheduleStillValidated() {
	ctx := context.Background()
	start := time.Now().Add(2 * time.Hour)
	existing := suite.jobWithStatus(domain.JobPending)
	existing.ScheduledStart = &start
	badEnd := start.Add(-30 * time.Minute)

	suite.mockJobRepo.On("FindJobByID", ctx, suite.tenantID, existing.JobID).Return(existing, nil).Once()

	job, err := suite.service.UpdateJob(ctx, suite.tenantID, existing.JobID, dto.UpdateJobRequest{ScheduledEnd: &badEnd}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(job)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JobServiceTestSuite) TestCancelJob_OpenAssignmentsBlock() {
	ctx := context.Background()
	existing := suite.jobWithStatus(domain.JobActive)

	suite.mockJobRepo.On("FindJobByID", ctx, suite.tenantID, existing.JobID).Return(existing, nil).Once()
	suite.mockAssignments.On("CountOpenAssignmentsByJob", ctx, suite.tenantID, existing.JobID).Return(3, nil).Once()

	job, err := suite.service.CancelJob(ctx, suite.tenantID, existing.JobID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(job)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrJobHasOpenWork.Error())
	suite.mockJobRepo.AssertNotCalled(suite.T(), "UpdateJobStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JobServiceTestSuite) TestCancelJob_Success() {
	ctx := context.Background()
	existing := suite.jobWithStatus(domain.JobPending)

	suite.mockJobRepo.On("FindJobByID", ctx, suite.tenantID, existing.JobID).Return(existing, nil).Once()
	suite.mockAssignments.On("CountOpenAssignmentsByJob", ctx, suite.tenantID, existing.JobID).Return(0, nil).Once()
	suite.mockJobRepo.On("UpdateJobStatus", ctx, suite.tenantID, existing.JobID, domain.JobCancelled, (*time.Time)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	job, err := suite.service.CancelJob(ctx, suite.tenantID, existing.JobID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(job)
	suite.Equal(domain.JobCancelled, job.Status)
	suite.mockJobRepo.AssertExpectations(suite.T())
}

func (suite *JobServiceTestSuite) TestCancelJob_AlreadyFinished() {
	ctx := context.Background()
	existing := suite.jobWithStatus(domain.JobCancelled)

	suite.mockJobRepo.On("FindJobByID", ctx, suite.tenantID, existing.JobID).Return(existing, nil).Once()

	job, err := suite.service.CancelJob(ctx, suite.tenantID, existing.JobID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(job)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAssignments.AssertNotCalled(suite.T(), "CountOpenAssignmentsByJob", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JobServiceTestSuite) TestDeactivateJob_ActiveForbidden() {
	ctx := context.Background()
	existing := suite.jobWithStatus(domain.JobActive)

	suite.mockJobRepo.On("FindJobByID", ctx, suite.tenantID, existing.JobID).Return(existing, nil).Once()

	err := suite.service.DeactivateJob(ctx, suite.tenantID, existing.JobID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.ErrorContains(err, services.ErrJobNotRemovable.Error())
	suite.mockJobRepo.AssertNotCalled(suite.T(), "MarkJobDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JobServiceTestSuite) TestDeactivateJob_CancelledRemovedAndQuotaReleased() {
	ctx := context.Background()
	existing := suite.jobWithStatus(domain.JobCancelled)

	suite.mockJobRepo.On("FindJobByID", ctx, suite.tenantID, existing.JobID).Return(existing, nil).Once()
	suite.mockJobRepo.On("MarkJobDeleted", ctx, suite.tenantID, existing.JobID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()
	suite.mockQuota.On("ReleaseQuota", ctx, suite.tenantID, domain.QuotaJobs, suite.userID).Return(nil).Once()

	err := suite.service.DeactivateJob(ctx, suite.tenantID, existing.JobID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJobRepo.AssertExpectations(suite.T())
	suite.mockQuota.AssertExpectations(suite.T())
}

func (suite *JobServiceTestSuite) TestListJobs_InvalidStatusFilter() {
	ctx := context.Background()
	bad := "archived"

	resp, err := suite.service.ListJobs(ctx, suite.tenantID, dto.ListJobsParams{Status: &bad, Limit: 20})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJobRepo.AssertNotCalled(suite.T(), "ListJobs", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJobServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JobServiceTestSuite))
}

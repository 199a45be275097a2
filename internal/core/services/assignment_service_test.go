package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/core/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

// MockAssignmentRepository is a mock type for the AssignmentRepositoryFacade interface
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, tenantID, assignmentID string) (*domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentsByJob(ctx context.Context, tenantID, jobID string) ([]domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentsByWorker(ctx context.Context, tenantID, workerID string, limit int, nextToken *string) ([]domain.JobAssignment, *string, error) {
	args := m.Called(ctx, tenantID, workerID, limit, nextToken)
	var assignments []domain.JobAssignment
	if args.Get(0) != nil {
		assignments = args.Get(0).([]domain.JobAssignment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return assignments, token, args.Error(2)
}

func (m *MockAssignmentRepository) CountOpenAssignmentsByWorker(ctx context.Context, tenantID, workerID string) (int, error) {
	args := m.Called(ctx, tenantID, workerID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssignmentRepository) CountOpenAssignmentsByJob(ctx context.Context, tenantID, jobID string) (int, error) {
	args := m.Called(ctx, tenantID, jobID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.JobAssignment, audit domain.AuditLog) error {
	args := m.Called(ctx, assignment, audit)
	return args.Error(0)
}

func (m *MockAssignmentRepository) ApplyAssignmentTransition(ctx context.Context, params portsrepo.AssignmentTransitionParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateAssignmentNotes(ctx context.Context, tenantID, assignmentID, notes string, updatedBy string, updatedAt time.Time, audit domain.AuditLog) error {
	args := m.Called(ctx, tenantID, assignmentID, notes, updatedBy, updatedAt, audit)
	return args.Error(0)
}

func (m *MockAssignmentRepository) DeleteAssignment(ctx context.Context, tenantID, assignmentID string, audit domain.AuditLog) error {
	args := m.Called(ctx, tenantID, assignmentID, audit)
	return args.Error(0)
}

// MockJobRepository is a mock type for the JobRepositoryFacade interface
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindJobByID(ctx context.Context, tenantID, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ListJobs(ctx context.Context, tenantID string, statusFilter *domain.JobStatus, limit int, nextToken *string) ([]domain.Job, *string, error) {
	args := m.Called(ctx, tenantID, statusFilter, limit, nextToken)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return jobs, token, args.Error(2)
}

func (m *MockJobRepository) ListJobsByLocation(ctx context.Context, tenantID, locationID string, limit int, offset int) ([]domain.Job, error) {
	args := m.Called(ctx, tenantID, locationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateJobStatus(ctx context.Context, tenantID, jobID string, status domain.JobStatus, completedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tenantID, jobID, status, completedAt, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJobRepository) MarkJobDeleted(ctx context.Context, tenantID, jobID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, tenantID, jobID, deletedAt, deletedBy)
	return args.Error(0)
}

// MockWorkerReader is a mock type for the WorkerReader interface
type MockWorkerReader struct {
	mock.Mock
}

func (m *MockWorkerReader) FindWorkerByID(ctx context.Context, tenantID, workerID string) (*domain.Worker, error) {
	args := m.Called(ctx, tenantID, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerReader) ListWorkers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Worker, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

// --- Test Suite Setup ---

type AssignmentServiceTestSuite struct {
	suite.Suite
	mockAssignments *MockAssignmentRepository
	mockJobs        *MockJobRepository
	mockWorkers     *MockWorkerReader
	service         portssvc.AssignmentSvcFacade

	tenantID string
	userID   string
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.mockAssignments = new(MockAssignmentRepository)
	suite.mockJobs = new(MockJobRepository)
	suite.mockWorkers = new(MockWorkerReader)
	// nil tenant authorizer grants access by default, keeping these tests
	// focused on the lifecycle rules
	suite.service = services.NewAssignmentService(suite.mockAssignments, suite.mockJobs, suite.mockWorkers, nil, 2)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AssignmentServiceTestSuite) activeWorker(workerID string) *domain.Worker {
	return &domain.Worker{
		WorkerID:         workerID,
		TenantID:         suite.tenantID,
		EmploymentStatus: domain.EmploymentActive,
	}
}

func (suite *AssignmentServiceTestSuite) pendingJob(jobID string) *domain.Job {
	return &domain.Job{
		JobID:    jobID,
		TenantID: suite.tenantID,
		Status:   domain.JobPending,
	}
}

func (suite *AssignmentServiceTestSuite) assignment(status domain.AssignmentStatus) *domain.JobAssignment {
	return &domain.JobAssignment{
		AssignmentID: uuid.NewString(),
		TenantID:     suite.tenantID,
		JobID:        uuid.NewString(),
		WorkerID:     uuid.NewString(),
		Status:       status,
		AssignedAt:   time.Now().Add(-time.Hour),
		Data:         map[string]any{},
	}
}

// --- Create ---

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_Success() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{JobID: uuid.NewString(), WorkerID: uuid.NewString(), Role: "electrician"}

	suite.mockWorkers.On("FindWorkerByID", ctx, suite.tenantID, req.WorkerID).Return(suite.activeWorker(req.WorkerID), nil).Once()
	suite.mockAssignments.On("CountOpenAssignmentsByWorker", ctx, suite.tenantID, req.WorkerID).Return(0, nil).Once()
	suite.mockJobs.On("FindJobByID", ctx, suite.tenantID, req.JobID).Return(suite.pendingJob(req.JobID), nil).Once()
	suite.mockAssignments.On("SaveAssignment", ctx, mock.AnythingOfType("domain.JobAssignment"), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	created, err := suite.service.CreateAssignment(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AssignmentID)
	suite.Equal(domain.AssignmentAssigned, created.Status)
	suite.Equal(req.JobID, created.JobID)
	suite.Equal(req.WorkerID, created.WorkerID)
	suite.Equal("electrician", created.Role)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.AssignedAt, time.Second)
	suite.mockAssignments.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_WorkerNotAvailable() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{JobID: uuid.NewString(), WorkerID: uuid.NewString()}
	inactive := suite.activeWorker(req.WorkerID)
	inactive.EmploymentStatus = domain.EmploymentInactive

	suite.mockWorkers.On("FindWorkerByID", ctx, suite.tenantID, req.WorkerID).Return(inactive, nil).Once()

	created, err := suite.service.CreateAssignment(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrResourceUnavailable)
	suite.mockAssignments.AssertNotCalled(suite.T(), "SaveAssignment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_WorkerAtCap() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{JobID: uuid.NewString(), WorkerID: uuid.NewString()}

	suite.mockWorkers.On("FindWorkerByID", ctx, suite.tenantID, req.WorkerID).Return(suite.activeWorker(req.WorkerID), nil).Once()
	// the suite configures a cap of 2
	suite.mockAssignments.On("CountOpenAssignmentsByWorker", ctx, suite.tenantID, req.WorkerID).Return(2, nil).Once()

	created, err := suite.service.CreateAssignment(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrResourceUnavailable)
	suite.ErrorContains(err, services.ErrTooManyActiveAssignments.Error())
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_JobTerminal() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{JobID: uuid.NewString(), WorkerID: uuid.NewString()}
	job := suite.pendingJob(req.JobID)
	job.Status = domain.JobCompleted

	suite.mockWorkers.On("FindWorkerByID", ctx, suite.tenantID, req.WorkerID).Return(suite.activeWorker(req.WorkerID), nil).Once()
	suite.mockAssignments.On("CountOpenAssignmentsByWorker", ctx, suite.tenantID, req.WorkerID).Return(0, nil).Once()
	suite.mockJobs.On("FindJobByID", ctx, suite.tenantID, req.JobID).Return(job, nil).Once()

	created, err := suite.service.CreateAssignment(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrJobNotAcceptingAssignments.Error())
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_DuplicatePair() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{JobID: uuid.NewString(), WorkerID: uuid.NewString()}

	suite.mockWorkers.On("FindWorkerByID", ctx, suite.tenantID, req.WorkerID).Return(suite.activeWorker(req.WorkerID), nil).Once()
	suite.mockAssignments.On("CountOpenAssignmentsByWorker", ctx, suite.tenantID, req.WorkerID).Return(0, nil).Once()
	suite.mockJobs.On("FindJobByID", ctx, suite.tenantID, req.JobID).Return(suite.pendingJob(req.JobID), nil).Once()
	suite.mockAssignments.On("SaveAssignment", ctx, mock.AnythingOfType("domain.JobAssignment"), mock.AnythingOfType("domain.AuditLog")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAssignment(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.ErrorContains(err, services.ErrDuplicateAssignment.Error())
}

// --- Start ---

func (suite *AssignmentServiceTestSuite) TestStartAssignment_ActivatesPendingJob() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentAssigned)

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignments.On("ApplyAssignmentTransition", ctx, mock.MatchedBy(func(p portsrepo.AssignmentTransitionParams) bool {
		return p.FromStatus == domain.AssignmentAssigned && p.ToStatus == domain.AssignmentInProgress && !p.CascadeJob
	})).Return(nil).Once()
	suite.mockJobs.On("FindJobByID", ctx, suite.tenantID, assignment.JobID).Return(suite.pendingJob(assignment.JobID), nil).Once()
	suite.mockJobs.On("UpdateJobStatus", ctx, suite.tenantID, assignment.JobID, domain.JobActive, (*time.Time)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.StartAssignment(ctx, suite.tenantID, assignment.AssignmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentInProgress, updated.Status)
	suite.mockJobs.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestStartAssignment_AlreadyActiveJobLeftAlone() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentAssigned)
	job := suite.pendingJob(assignment.JobID)
	job.Status = domain.JobActive

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignments.On("ApplyAssignmentTransition", ctx, mock.AnythingOfType("repositories.AssignmentTransitionParams")).Return(nil).Once()
	suite.mockJobs.On("FindJobByID", ctx, suite.tenantID, assignment.JobID).Return(job, nil).Once()

	_, err := suite.service.StartAssignment(ctx, suite.tenantID, assignment.AssignmentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJobs.AssertNotCalled(suite.T(), "UpdateJobStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestStartAssignment_InvalidFromCompleted() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentCompleted)

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()

	updated, err := suite.service.StartAssignment(ctx, suite.tenantID, assignment.AssignmentID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrInvalidTransition.Error())
}

// --- Complete ---

func (suite *AssignmentServiceTestSuite) TestCompleteAssignment_SetsCompletedAtAndCascades() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentInProgress)

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignments.On("ApplyAssignmentTransition", ctx, mock.MatchedBy(func(p portsrepo.AssignmentTransitionParams) bool {
		return p.ToStatus == domain.AssignmentCompleted && p.CascadeJob && p.CompletedAt != nil
	})).Return(nil).Once()

	req := dto.CompleteAssignmentRequest{Data: map[string]any{"hours_logged": 7.5}}
	updated, err := suite.service.CompleteAssignment(ctx, suite.tenantID, assignment.AssignmentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentCompleted, updated.Status)
	suite.Equal(7.5, updated.Data["hours_logged"])
	suite.Require().NotNil(updated.CompletedAt)
	suite.WithinDuration(time.Now(), *updated.CompletedAt, time.Second)
	suite.mockAssignments.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestCompleteAssignment_ConcurrentTransitionConflict() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentInProgress)

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignments.On("ApplyAssignmentTransition", ctx, mock.AnythingOfType("repositories.AssignmentTransitionParams")).Return(apperrors.ErrConflict).Once()

	updated, err := suite.service.CompleteAssignment(ctx, suite.tenantID, assignment.AssignmentID, dto.CompleteAssignmentRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- Cancel ---

func (suite *AssignmentServiceTestSuite) TestCancelAssignment_StampsReasonIntoData() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentAssigned)
	assignment.Data = map[string]any{"shift": "night"}

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignments.On("ApplyAssignmentTransition", ctx, mock.MatchedBy(func(p portsrepo.AssignmentTransitionParams) bool {
		return p.ToStatus == domain.AssignmentCancelled &&
			p.Data[domain.DataKeyCancellationReason] == "weather delay" &&
			p.Data[domain.DataKeyCancelledBy] == suite.userID &&
			p.Data["shift"] == "night"
	})).Return(nil).Once()

	updated, err := suite.service.CancelAssignment(ctx, suite.tenantID, assignment.AssignmentID, dto.CancelAssignmentRequest{Reason: "weather delay"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentCancelled, updated.Status)
	suite.Equal("weather delay", updated.Data[domain.DataKeyCancellationReason])
	suite.mockAssignments.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestCancelAssignment_EmptyReasonRejected() {
	ctx := context.Background()

	updated, err := suite.service.CancelAssignment(ctx, suite.tenantID, uuid.NewString(), dto.CancelAssignmentRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssignments.AssertNotCalled(suite.T(), "FindAssignmentByID", mock.Anything, mock.Anything, mock.Anything)
}

// --- Reassign ---

func (suite *AssignmentServiceTestSuite) TestReassignAssignment_RequeuesCancelled() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentCancelled)

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockWorkers.On("FindWorkerByID", ctx, suite.tenantID, assignment.WorkerID).Return(suite.activeWorker(assignment.WorkerID), nil).Once()
	suite.mockAssignments.On("CountOpenAssignmentsByWorker", ctx, suite.tenantID, assignment.WorkerID).Return(1, nil).Once()
	suite.mockJobs.On("FindJobByID", ctx, suite.tenantID, assignment.JobID).Return(suite.pendingJob(assignment.JobID), nil).Once()
	suite.mockAssignments.On("ApplyAssignmentTransition", ctx, mock.MatchedBy(func(p portsrepo.AssignmentTransitionParams) bool {
		return p.FromStatus == domain.AssignmentCancelled && p.ToStatus == domain.AssignmentAssigned
	})).Return(nil).Once()

	updated, err := suite.service.ReassignAssignment(ctx, suite.tenantID, assignment.AssignmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentAssigned, updated.Status)
}

func (suite *AssignmentServiceTestSuite) TestReassignAssignment_CompletedRejected() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentCompleted)

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()

	updated, err := suite.service.ReassignAssignment(ctx, suite.tenantID, assignment.AssignmentID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- Notes ---

func (suite *AssignmentServiceTestSuite) TestUpdateAssignmentNotes_ReplacesAndAudits() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentInProgress)
	notes := "bring the second ladder"

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignments.On("UpdateAssignmentNotes", ctx, suite.tenantID, assignment.AssignmentID, notes, suite.userID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(a domain.AuditLog) bool {
		return a.Action == "assignment.notes_updated"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAssignmentNotes(ctx, suite.tenantID, assignment.AssignmentID, dto.UpdateAssignmentNotesRequest{Notes: notes}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(notes, updated.Notes)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockAssignments.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestUpdateAssignmentNotes_MissingAssignment() {
	ctx := context.Background()
	assignmentID := uuid.NewString()

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignmentID).
		Return(nil, fmt.Errorf("assignment not found: %w", apperrors.ErrNotFound)).Once()

	updated, err := suite.service.UpdateAssignmentNotes(ctx, suite.tenantID, assignmentID, dto.UpdateAssignmentNotesRequest{Notes: "x"}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAssignments.AssertNotCalled(suite.T(), "UpdateAssignmentNotes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Delete ---

func (suite *AssignmentServiceTestSuite) TestDeleteAssignment_CompletedForbidden() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentCompleted)

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()

	err := suite.service.DeleteAssignment(ctx, suite.tenantID, assignment.AssignmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAssignments.AssertNotCalled(suite.T(), "DeleteAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestDeleteAssignment_CancelledRemoved() {
	ctx := context.Background()
	assignment := suite.assignment(domain.AssignmentCancelled)

	suite.mockAssignments.On("FindAssignmentByID", ctx, suite.tenantID, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignments.On("DeleteAssignment", ctx, suite.tenantID, assignment.AssignmentID, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	err := suite.service.DeleteAssignment(ctx, suite.tenantID, assignment.AssignmentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAssignments.AssertExpectations(suite.T())
}

func TestAssignmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
	"github.com/crewstack/workforce_app/internal/handlers"
	"github.com/crewstack/workforce_app/internal/middleware"
	"github.com/crewstack/workforce_app/internal/utils"
)

// --- Mock AssignmentService ---
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) GetAssignmentByID(ctx context.Context, tenantID, assignmentID string) (*domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAssignment), args.Error(1)
}
func (m *MockAssignmentService) ListAssignmentsByJob(ctx context.Context, tenantID, jobID string) ([]domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobAssignment), args.Error(1)
}
func (m *MockAssignmentService) ListAssignmentsByWorker(ctx context.Context, tenantID, workerID string, params dto.ListAssignmentsParams) (*dto.ListAssignmentsResponse, error) {
	args := m.Called(ctx, tenantID, workerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAssignmentsResponse), args.Error(1)
}
func (m *MockAssignmentService) CreateAssignment(ctx context.Context, tenantID string, req dto.CreateAssignmentRequest, creatorUserID string) (*domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAssignment), args.Error(1)
}
func (m *MockAssignmentService) StartAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) (*domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, assignmentID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAssignment), args.Error(1)
}
func (m *MockAssignmentService) CompleteAssignment(ctx context.Context, tenantID, assignmentID string, req dto.CompleteAssignmentRequest, requestingUserID string) (*domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, assignmentID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAssignment), args.Error(1)
}
func (m *MockAssignmentService) CancelAssignment(ctx context.Context, tenantID, assignmentID string, req dto.CancelAssignmentRequest, requestingUserID string) (*domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, assignmentID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAssignment), args.Error(1)
}
func (m *MockAssignmentService) ReassignAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) (*domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, assignmentID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAssignment), args.Error(1)
}
func (m *MockAssignmentService) UpdateAssignmentNotes(ctx context.Context, tenantID, assignmentID string, req dto.UpdateAssignmentNotesRequest, requestingUserID string) (*domain.JobAssignment, error) {
	args := m.Called(ctx, tenantID, assignmentID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAssignment), args.Error(1)
}
func (m *MockAssignmentService) DeleteAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) error {
	args := m.Called(ctx, tenantID, assignmentID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AssignmentSvcFacade = (*MockAssignmentService)(nil)

// --- Test Suite ---
type AssignmentHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockAssignment *MockAssignmentService
	jwtSecret      string
	tenantID       string
	userID         string
}

func (suite *AssignmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAssignment = new(MockAssignmentService)

	// Mimic the production grouping, tenant guard included.
	tenant := suite.router.Group("/api/v1/tenants/:tenantID", middleware.RequireTenantMatch())
	handlers.RegisterAssignmentRoutes(tenant, suite.mockAssignment)
}

// generateTestToken creates a signed access token scoped to the suite's tenant.
func (suite *AssignmentHandlerTestSuite) generateTestToken(userID, tenantID string) string {
	token, err := utils.GenerateJWT(userID, tenantID, string(domain.RoleManager), suite.jwtSecret, time.Hour, "wfm-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *AssignmentHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID, suite.tenantID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AssignmentHandlerTestSuite) TestCreateAssignment_Success() {
	jobID := uuid.NewString()
	workerID := uuid.NewString()
	expected := &domain.JobAssignment{
		AssignmentID: uuid.NewString(),
		TenantID:     suite.tenantID,
		JobID:        jobID,
		WorkerID:     workerID,
		Role:         "lead",
		Status:       domain.AssignmentAssigned,
		AssignedAt:   time.Now(),
	}

	suite.mockAssignment.On("CreateAssignment",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(req dto.CreateAssignmentRequest) bool {
			return req.JobID == jobID && req.WorkerID == workerID && req.Role == "lead"
		}),
		suite.userID,
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/assignments", suite.tenantID)
	w := suite.doRequest(http.MethodPost, url, dto.CreateAssignmentRequest{JobID: jobID, WorkerID: workerID, Role: "lead"})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AssignmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.AssignmentID, resp.AssignmentID)
	suite.Equal(string(domain.AssignmentAssigned), resp.Status)
	suite.mockAssignment.AssertExpectations(suite.T())
}

func (suite *AssignmentHandlerTestSuite) TestCreateAssignment_MissingWorkerID() {
	url := fmt.Sprintf("/api/v1/tenants/%s/assignments", suite.tenantID)
	w := suite.doRequest(http.MethodPost, url, map[string]string{"jobID": uuid.NewString()})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAssignment.AssertNotCalled(suite.T(), "CreateAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentHandlerTestSuite) TestCreateAssignment_WorkerUnavailable() {
	suite.mockAssignment.On("CreateAssignment", mock.Anything, suite.tenantID, mock.AnythingOfType("dto.CreateAssignmentRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: worker is on_leave", apperrors.ErrResourceUnavailable)).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/assignments", suite.tenantID)
	w := suite.doRequest(http.MethodPost, url, dto.CreateAssignmentRequest{JobID: uuid.NewString(), WorkerID: uuid.NewString()})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockAssignment.AssertExpectations(suite.T())
}

func (suite *AssignmentHandlerTestSuite) TestCompleteAssignment_Conflict() {
	assignmentID := uuid.NewString()
	suite.mockAssignment.On("CompleteAssignment", mock.Anything, suite.tenantID, assignmentID, dto.CompleteAssignmentRequest{}, suite.userID).
		Return(nil, fmt.Errorf("%w: assignment changed concurrently", apperrors.ErrConflict)).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/assignments/%s/complete", suite.tenantID, assignmentID)
	w := suite.doRequest(http.MethodPost, url, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAssignment.AssertExpectations(suite.T())
}

func (suite *AssignmentHandlerTestSuite) TestCancelAssignment_ReasonRequired() {
	assignmentID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/tenants/%s/assignments/%s/cancel", suite.tenantID, assignmentID)
	w := suite.doRequest(http.MethodPost, url, map[string]string{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAssignment.AssertNotCalled(suite.T(), "CancelAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentHandlerTestSuite) TestCancelAssignment_Success() {
	assignmentID := uuid.NewString()
	expected := &domain.JobAssignment{
		AssignmentID: assignmentID,
		TenantID:     suite.tenantID,
		Status:       domain.AssignmentCancelled,
		Data:         map[string]any{domain.DataKeyCancellationReason: "site flooded"},
	}

	suite.mockAssignment.On("CancelAssignment",
		mock.Anything,
		suite.tenantID,
		assignmentID,
		dto.CancelAssignmentRequest{Reason: "site flooded"},
		suite.userID,
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/assignments/%s/cancel", suite.tenantID, assignmentID)
	w := suite.doRequest(http.MethodPost, url, dto.CancelAssignmentRequest{Reason: "site flooded"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AssignmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.AssignmentCancelled), resp.Status)
	suite.Equal("site flooded", resp.Data[domain.DataKeyCancellationReason])
	suite.mockAssignment.AssertExpectations(suite.T())
}

func (suite *AssignmentHandlerTestSuite) TestUpdateAssignmentNotes_ReturnsUpdated() {
	assignmentID := uuid.NewString()
	expected := &domain.JobAssignment{
		AssignmentID: assignmentID,
		TenantID:     suite.tenantID,
		Status:       domain.AssignmentInProgress,
		Notes:        "gate code changed to 4471",
	}

	suite.mockAssignment.On("UpdateAssignmentNotes",
		mock.Anything,
		suite.tenantID,
		assignmentID,
		dto.UpdateAssignmentNotesRequest{Notes: "gate code changed to 4471"},
		suite.userID,
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/assignments/%s/notes", suite.tenantID, assignmentID)
	w := suite.doRequest(http.MethodPatch, url, dto.UpdateAssignmentNotesRequest{Notes: "gate code changed to 4471"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AssignmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("gate code changed to 4471", resp.Notes)
	suite.mockAssignment.AssertExpectations(suite.T())
}

func (suite *AssignmentHandlerTestSuite) TestDeleteAssignment_NoContent() {
	assignmentID := uuid.NewString()
	suite.mockAssignment.On("DeleteAssignment", mock.Anything, suite.tenantID, assignmentID, suite.userID).Return(nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/assignments/%s", suite.tenantID, assignmentID)
	w := suite.doRequest(http.MethodDelete, url, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAssignment.AssertExpectations(suite.T())
}

func (suite *AssignmentHandlerTestSuite) TestTenantMismatch_Forbidden() {
	otherTenant := uuid.NewString()

	url := fmt.Sprintf("/api/v1/tenants/%s/assignments/%s", otherTenant, uuid.NewString())
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID, suite.tenantID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAssignment.AssertNotCalled(suite.T(), "GetAssignmentByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentHandlerTestSuite) TestMissingToken_Unauthorized() {
	url := fmt.Sprintf("/api/v1/tenants/%s/assignments/%s", suite.tenantID, uuid.NewString())
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestAssignmentHandler(t *testing.T) {
	suite.Run(t, new(AssignmentHandlerTestSuite))
}

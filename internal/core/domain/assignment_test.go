package domain_test

import (
	"testing"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAssignmentStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.AssignmentStatus
		to      domain.AssignmentStatus
		allowed bool
	}{
		{"assigned to in_progress", domain.AssignmentAssigned, domain.AssignmentInProgress, true},
		{"assigned to cancelled", domain.AssignmentAssigned, domain.AssignmentCancelled, true},
		{"assigned to completed skips in_progress", domain.AssignmentAssigned, domain.AssignmentCompleted, false},
		{"in_progress to completed", domain.AssignmentInProgress, domain.AssignmentCompleted, true},
		{"in_progress to cancelled", domain.AssignmentInProgress, domain.AssignmentCancelled, true},
		{"in_progress back to assigned", domain.AssignmentInProgress, domain.AssignmentAssigned, false},
		{"completed is terminal", domain.AssignmentCompleted, domain.AssignmentCancelled, false},
		{"completed cannot restart", domain.AssignmentCompleted, domain.AssignmentAssigned, false},
		{"cancelled can be re-queued", domain.AssignmentCancelled, domain.AssignmentAssigned, true},
		{"cancelled cannot jump to in_progress", domain.AssignmentCancelled, domain.AssignmentInProgress, false},
		{"cancelled cannot complete", domain.AssignmentCancelled, domain.AssignmentCompleted, false},
		{"no self transition", domain.AssignmentAssigned, domain.AssignmentAssigned, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestAssignmentStatus_IsOpen(t *testing.T) {
	assert.True(t, domain.AssignmentAssigned.IsOpen())
	assert.True(t, domain.AssignmentInProgress.IsOpen())
	assert.False(t, domain.AssignmentCompleted.IsOpen())
	assert.False(t, domain.AssignmentCancelled.IsOpen())
}

func TestAssignmentStatus_IsValid(t *testing.T) {
	assert.True(t, domain.AssignmentAssigned.IsValid())
	assert.True(t, domain.AssignmentCancelled.IsValid())
	assert.False(t, domain.AssignmentStatus("paused").IsValid())
	assert.False(t, domain.AssignmentStatus("").IsValid())
}

func TestJobAssignment_MergedData(t *testing.T) {
	a := domain.JobAssignment{
		Data: map[string]any{"shift": "night", "priority": "high"},
	}

	merged := a.MergedData(map[string]any{
		"priority":                "low",
		domain.DataKeyCancelledBy: "user-1",
		domain.DataKeyCancelledAt: "2026-01-02T15:04:05Z",
	})

	// extra keys win, originals survive, the receiver is untouched
	assert.Equal(t, "low", merged["priority"])
	assert.Equal(t, "night", merged["shift"])
	assert.Equal(t, "user-1", merged[domain.DataKeyCancelledBy])
	assert.Equal(t, "high", a.Data["priority"])
	assert.Len(t, merged, 4)
}

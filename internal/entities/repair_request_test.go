package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatusSetsDatesOnce(t *testing.T) {
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	req := &RepairRequest{Status: StatusPending}

	req.ApplyStatus(StatusAssigned, first)
	require.NotNil(t, req.AssignedDate)
	assert.Equal(t, first, *req.AssignedDate)

	// Re-assigning later must not move the original timestamp.
	req.ApplyStatus(StatusAssigned, later)
	assert.Equal(t, first, *req.AssignedDate)

	req.ApplyStatus(StatusCompleted, first)
	require.NotNil(t, req.CompletedDate)
	assert.Equal(t, first, *req.CompletedDate)

	req.ApplyStatus(StatusCompleted, later)
	assert.Equal(t, first, *req.CompletedDate)
}

func TestApplyStatusDatesSurviveRegression(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	req := &RepairRequest{Status: StatusPending}

	req.ApplyStatus(StatusCompleted, now)
	req.ApplyStatus(StatusInProgress, now.Add(time.Hour))

	assert.Equal(t, StatusInProgress, req.Status)
	require.NotNil(t, req.CompletedDate)
	assert.Equal(t, now, *req.CompletedDate)
}

func TestApplyStatusAllowsAnyTransition(t *testing.T) {
	now := time.Now()
	req := &RepairRequest{Status: StatusCompleted}

	req.ApplyStatus(StatusPending, now)
	assert.Equal(t, StatusPending, req.Status)

	req.ApplyStatus(StatusCancelled, now)
	assert.Equal(t, StatusCancelled, req.Status)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("done").Valid())
	assert.False(t, Status("").Valid())
}

func TestRoleCanBeAssigned(t *testing.T) {
	assert.True(t, RoleTechnician.CanBeAssigned())
	assert.True(t, RoleAdmin.CanBeAssigned())
	assert.False(t, RoleUser.CanBeAssigned())
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", (&User{FirstName: "Jane", LastName: "Doe"}).FullName())
	assert.Equal(t, "Jane", (&User{FirstName: "Jane"}).FullName())
	assert.Equal(t, "jdoe", (&User{Username: "jdoe"}).FullName())
}

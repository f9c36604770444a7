package authz

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repair-system/internal/entities"
)

func mustSQL(t *testing.T, s sq.Sqlizer) string {
	t.Helper()
	query, _, err := s.ToSql()
	require.NoError(t, err)
	return query
}

func TestRequestScope(t *testing.T) {
	t.Run("admin is unrestricted", func(t *testing.T) {
		assert.Nil(t, RequestScope(entities.RoleAdmin, true, 7))
	})

	t.Run("user sees own requests", func(t *testing.T) {
		scope := RequestScope(entities.RoleUser, true, 7)
		require.NotNil(t, scope)
		assert.Equal(t, "r.requester_id = ?", mustSQL(t, scope))
	})

	t.Run("technician sees assigned or pending", func(t *testing.T) {
		scope := RequestScope(entities.RoleTechnician, true, 7)
		require.NotNil(t, scope)
		query := mustSQL(t, scope)
		assert.Contains(t, query, "r.assigned_to = ?")
		assert.Contains(t, query, "r.status = ?")
		assert.Contains(t, query, " OR ")
	})

	t.Run("no profile falls back to own requests", func(t *testing.T) {
		scope := RequestScope(entities.RoleAdmin, false, 7)
		require.NotNil(t, scope)
		assert.Equal(t, "r.requester_id = ?", mustSQL(t, scope))
	})

	t.Run("unknown role falls back to own requests", func(t *testing.T) {
		scope := RequestScope(entities.Role("manager"), true, 7)
		require.NotNil(t, scope)
		assert.Equal(t, "r.requester_id = ?", mustSQL(t, scope))
	})
}

func TestCanAccessRequest(t *testing.T) {
	techID := uint64(5)
	req := &entities.RepairRequest{
		ID:          1,
		RequesterID: 10,
		Status:      entities.StatusInProgress,
		AssignedTo:  &techID,
	}

	t.Run("admin can access anything", func(t *testing.T) {
		assert.True(t, CanAccessRequest(entities.RoleAdmin, true, 99, req))
	})

	t.Run("requester can access own", func(t *testing.T) {
		assert.True(t, CanAccessRequest(entities.RoleUser, true, 10, req))
		assert.False(t, CanAccessRequest(entities.RoleUser, true, 11, req))
	})

	t.Run("technician can access own assignment", func(t *testing.T) {
		assert.True(t, CanAccessRequest(entities.RoleTechnician, true, 5, req))
		assert.False(t, CanAccessRequest(entities.RoleTechnician, true, 6, req))
	})

	t.Run("technician can access unclaimed pending", func(t *testing.T) {
		pending := &entities.RepairRequest{ID: 2, RequesterID: 10, Status: entities.StatusPending}
		assert.True(t, CanAccessRequest(entities.RoleTechnician, true, 6, pending))
	})

	t.Run("no profile is limited to own", func(t *testing.T) {
		assert.True(t, CanAccessRequest("", false, 10, req))
		assert.False(t, CanAccessRequest("", false, 5, req))
	})
}

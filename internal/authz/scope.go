// Package authz computes role-scoped visibility over repair requests.
//
// The resolver emits a squirrel predicate that list queries attach with
// Where(); narrowing filters (status, priority, equipment, search) are ANDed
// on afterwards and can therefore never widen the scope.
package authz

import (
	sq "github.com/Masterminds/squirrel"

	"repair-system/internal/entities"
)

// RequestScope returns the predicate limiting which repair requests the actor
// may see or act on. A nil result means unrestricted.
//
// Actors without a profile record (hasProfile == false) get the most
// restrictive rule: own requests only.
func RequestScope(role entities.Role, hasProfile bool, actorID uint64) sq.Sqlizer {
	if !hasProfile {
		return sq.Eq{"r.requester_id": actorID}
	}

	switch role {
	case entities.RoleAdmin:
		return nil
	case entities.RoleTechnician:
		// Own assignments plus the unclaimed queue.
		return sq.Or{
			sq.Eq{"r.assigned_to": actorID},
			sq.Eq{"r.status": entities.StatusPending},
		}
	case entities.RoleUser:
		return sq.Eq{"r.requester_id": actorID}
	}

	// Unknown role value in storage: treat as a plain user.
	return sq.Eq{"r.requester_id": actorID}
}

// OwnRequests limits a list to requests the actor filed. Used by the
// "my requests" convenience endpoint; it is a subset of every role scope.
func OwnRequests(actorID uint64) sq.Sqlizer {
	return sq.Eq{"r.requester_id": actorID}
}

// AssignedRequests limits a list to requests assigned to the actor.
func AssignedRequests(actorID uint64) sq.Sqlizer {
	return sq.Eq{"r.assigned_to": actorID}
}

// CanAccessRequest is the in-process mirror of RequestScope for single-target
// operations: loading, patching or transitioning one request.
func CanAccessRequest(role entities.Role, hasProfile bool, actorID uint64, req *entities.RepairRequest) bool {
	if !hasProfile {
		return req.RequesterID == actorID
	}

	switch role {
	case entities.RoleAdmin:
		return true
	case entities.RoleTechnician:
		if req.AssignedTo != nil && *req.AssignedTo == actorID {
			return true
		}
		return req.Status == entities.StatusPending
	case entities.RoleUser:
		return req.RequesterID == actorID
	}

	return req.RequesterID == actorID
}

package leave

import (
	"context"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"
	"github.com/google/uuid"
)

// Directory is the slice of the employee registry the visibility rules need
// to resolve manager references. employee.Repository satisfies it.
type Directory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

// maxChainDepth bounds the manager-chain walk so a corrupted directory with
// a reference cycle cannot spin forever.
const maxChainDepth = 16

// CanView reports whether the actor may read the request.
func CanView(ctx context.Context, dir Directory, actor employee.Employee, req LeaveRequest) bool {
	if req.EmployeeID == actor.ID {
		return true
	}
	return DecidesFor(ctx, dir, actor, req.EmployeeID)
}

// CanDecide reports whether the actor may approve or reject the request.
// It implies CanView and additionally requires pending status.
func CanDecide(ctx context.Context, dir Directory, actor employee.Employee, req LeaveRequest) bool {
	return req.Status == StatusPending && DecidesFor(ctx, dir, actor, req.EmployeeID)
}

// DecidesFor is the authorization half of CanDecide: whether the actor's
// role scopes over the owning employee, ignoring request status. Dispatch is
// exhaustive over the three roles; an unknown role decides for nobody.
func DecidesFor(ctx context.Context, dir Directory, actor employee.Employee, ownerID uuid.UUID) bool {
	if ownerID == actor.ID {
		// Nobody decides on their own requests.
		return false
	}

	switch actor.Role {
	case employee.RoleEmployee:
		return false

	case employee.RoleManager:
		owner, err := dir.FindByID(ctx, ownerID.String())
		if err != nil {
			return false
		}
		return owner.ManagerID != nil && *owner.ManagerID == actor.ID

	case employee.RoleDirector:
		owner, err := dir.FindByID(ctx, ownerID.String())
		if err != nil {
			return false
		}
		return chainReaches(ctx, dir, owner, actor.ID)
	}

	return false
}

// chainReaches walks the owner's manager chain upward. It returns true when
// the chain reaches rootID, and false when it reaches a different director
// first. A chain that cannot be resolved at all (no manager, dangling
// reference, cycle, over-deep) falls back to true: the director is the
// scoping root for everything outside a resolvable hierarchy.
func chainReaches(ctx context.Context, dir Directory, owner *employee.Employee, rootID uuid.UUID) bool {
	seen := map[uuid.UUID]bool{owner.ID: true}
	current := owner

	for i := 0; i < maxChainDepth; i++ {
		if current.ManagerID == nil {
			return true
		}
		next := *current.ManagerID
		if next == rootID {
			return true
		}
		if seen[next] {
			return true
		}
		seen[next] = true

		mgr, err := dir.FindByID(ctx, next.String())
		if err != nil {
			return true
		}
		if mgr.Role == employee.RoleDirector {
			// Resolved to another director's subtree.
			return false
		}
		current = mgr
	}

	return true
}

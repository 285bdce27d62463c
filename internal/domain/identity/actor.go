package identity

import (
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the coarse permission level carried in the actor's token
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RoleSalesman   Role = "salesman"
)

// IsValid returns true if the role is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAccountant, RoleSalesman:
		return true
	}
	return false
}

// IsElevated reports whether the role may perform destructive operations
// such as deleting orders
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanReview reports whether the role may advance an order's review status
func (r Role) CanReview() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleAccountant
}

// SeesOwnOrdersOnly reports whether the role is restricted to orders the
// actor created
func (r Role) SeesOwnOrdersOnly() bool {
	return r == RoleSalesman
}

// Actor is the authenticated caller: user identity, tenant and role as
// resolved from the bearer token. Every workflow operation takes an Actor
// and scopes all repository access by its tenant.
type Actor struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     Role
}

// NewActor builds an actor, failing when the actor carries no tenant
func NewActor(userID, tenantID uuid.UUID, role Role) (Actor, error) {
	if userID == uuid.Nil {
		return Actor{}, shared.ErrUnauthorized
	}
	if tenantID == uuid.Nil {
		return Actor{}, shared.ErrAccessDenied
	}
	if !role.IsValid() {
		return Actor{}, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	return Actor{UserID: userID, TenantID: tenantID, Role: role}, nil
}

package identity

import (
	"github.com/peeves/backend/internal/domain/shared"
)

// Event types for the identity domain
const (
	EventTypeUserRegistered    = "identity.user.registered"
	EventTypeAdminClaimChanged = "identity.user.admin_claim_changed"
)

const aggregateTypeUser = "User"

// UserRegisteredEvent is raised when an account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, aggregateTypeUser, u.ID),
		Email:           u.Email,
	}
}

// AdminClaimChangedEvent is raised when the admin flag flips
type AdminClaimChangedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// NewAdminClaimChangedEvent creates a new AdminClaimChangedEvent
func NewAdminClaimChangedEvent(u *User) *AdminClaimChangedEvent {
	return &AdminClaimChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdminClaimChanged, aggregateTypeUser, u.ID),
		Email:           u.Email,
		Admin:           u.Admin,
	}
}

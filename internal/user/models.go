package user

import (
	"time"

	"github.com/google/uuid"
)

// Role partitions principals into members and admins. Only admins may
// promote roles, grant statuses, or approve requests.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Subscription mirrors the premium progression of the account's biodata.
type Subscription string

const (
	SubscriptionFree    Subscription = "free"
	SubscriptionPending Subscription = "pending"
	SubscriptionPremium Subscription = "premium"
)

// User is an account record, created on first sign-in and keyed by email.
type User struct {
	ID               uuid.UUID    `json:"_id"`
	Email            string       `json:"email"`
	Name             string       `json:"name"`
	PhotoURL         string       `json:"photoURL,omitempty"`
	Role             Role         `json:"role"`
	SubscriptionType Subscription `json:"subscriptionType"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Info is the minimal identity view the frontend polls for.
type Info struct {
	Role             Role         `json:"role"`
	SubscriptionType Subscription `json:"subscriptionType"`
}

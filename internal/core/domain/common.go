package domain

import (
	"time"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Role is a job function granted by the identity provider.
type Role string

const (
	RoleRequester  Role = "Requester"
	RoleFinance    Role = "Finance"
	RoleAccounting Role = "Accounting"
	RoleTreasury   Role = "Treasury"
	RoleAdmin      Role = "Admin"
	RoleExecutive  Role = "Executive"
)

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleRequester, RoleFinance, RoleAccounting, RoleTreasury, RoleAdmin, RoleExecutive:
		return true
	}
	return false
}

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	UserID string `json:"userId"`
	Roles  []Role `json:"roles"`
}

// HasAnyRole reports whether the actor holds at least one of roles.
func (a Actor) HasAnyRole(roles ...Role) bool {
	for _, held := range a.Roles {
		for _, want := range roles {
			if held == want {
				return true
			}
		}
	}
	return false
}

// Money amounts are stored with two decimal places.
const MoneyScale = 2

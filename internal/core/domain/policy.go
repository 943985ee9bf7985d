package domain

import (
	"errors"
	"fmt"
)

// Action names a guarded operation.
type Action string

const (
	ActionViewCase         Action = "case:view"
	ActionCreateCase       Action = "case:create"
	ActionSubmitCase       Action = "case:submit"
	ActionApproveCase      Action = "case:approve"
	ActionRejectCase       Action = "case:reject"
	ActionPayCase          Action = "case:pay"
	ActionUploadReceipt    Action = "case:upload_receipt"
	ActionCloseCase        Action = "case:close"
	ActionCancelCase       Action = "case:cancel"
	ActionCreateJV         Action = "jv:create"
	ActionRecordAdjustment Action = "payment:adjust"
	ActionUploadAttachment Action = "attachment:upload"
	ActionManageCategory   Action = "category:manage"
	ActionViewAudit        Action = "audit:view"
)

// PrivilegedRoles may read every case regardless of ownership.
var PrivilegedRoles = []Role{RoleFinance, RoleAccounting, RoleAdmin, RoleExecutive, RoleTreasury}

// Capability grants an action to any listed role, and to the case's
// requester when Owner is set.
type Capability struct {
	Roles []Role
	Owner bool
}

// Policy is the single source of truth for who may do what.
var Policy = map[Action]Capability{
	ActionViewCase:         {Roles: PrivilegedRoles, Owner: true},
	ActionCreateCase:       {Roles: []Role{RoleRequester}},
	ActionSubmitCase:       {Owner: true},
	ActionApproveCase:      {Roles: []Role{RoleFinance, RoleAccounting, RoleAdmin}},
	ActionRejectCase:       {Roles: []Role{RoleFinance, RoleAccounting, RoleAdmin}},
	ActionPayCase:          {Roles: []Role{RoleTreasury, RoleAdmin}},
	ActionUploadReceipt:    {Owner: true},
	ActionCloseCase:        {Roles: []Role{RoleAdmin}, Owner: true},
	ActionCancelCase:       {Roles: []Role{RoleAdmin}},
	ActionCreateJV:         {Roles: []Role{RoleAccounting, RoleFinance, RoleAdmin}},
	ActionRecordAdjustment: {Roles: []Role{RoleTreasury, RoleAdmin}},
	ActionUploadAttachment: {Owner: true},
	ActionManageCategory:   {Roles: []Role{RoleAccounting, RoleAdmin}},
	ActionViewAudit:        {Roles: PrivilegedRoles},
}

// ErrNotPermitted is returned by Authorize when the actor lacks the capability.
var ErrNotPermitted = errors.New("action not permitted")

// Authorize evaluates the policy for action. c may be nil for actions that
// are not scoped to a case; ownership then never applies.
func Authorize(actor Actor, action Action, c *Case) error {
	capability, ok := Policy[action]
	if !ok {
		return fmt.Errorf("%w: unknown action %s", ErrNotPermitted, action)
	}
	if actor.HasAnyRole(capability.Roles...) {
		return nil
	}
	if capability.Owner && c != nil && actor.UserID != "" && c.RequesterID == actor.UserID {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotPermitted, action)
}

package domain

import (
	"errors"
	"fmt"
)

// CaseEvent is a workflow command applied to a case.
type CaseEvent string

const (
	EventSubmit        CaseEvent = "submit"
	EventApprove       CaseEvent = "approve"
	EventReject        CaseEvent = "reject"
	EventPay           CaseEvent = "pay"
	EventUploadReceipt CaseEvent = "upload_receipt"
	EventClose         CaseEvent = "close"
	EventCloseByJV     CaseEvent = "close_by_jv"
	EventCancel        CaseEvent = "cancel"
)

// ErrInvalidTransition is returned when an event is not permitted from the
// case's current status.
var ErrInvalidTransition = errors.New("invalid case transition")

type transitionKey struct {
	from  CaseStatus
	event CaseEvent
}

// caseTransitions is the complete state graph. Approval of a REVENUE or
// ASSET case is resolved to CLOSED by NextStatus.
var caseTransitions = map[transitionKey]CaseStatus{
	{CaseStatusDraft, EventSubmit}:       CaseStatusSubmitted,
	{CaseStatusSubmitted, EventApprove}:  CaseStatusApproved,
	{CaseStatusSubmitted, EventReject}:   CaseStatusRejected,
	{CaseStatusApproved, EventPay}:       CaseStatusPaid,
	{CaseStatusPaid, EventUploadReceipt}: CaseStatusPaid,
	{CaseStatusPaid, EventClose}:         CaseStatusClosed,
	{CaseStatusApproved, EventCloseByJV}: CaseStatusClosed,
	{CaseStatusPaid, EventCloseByJV}:     CaseStatusClosed,
	{CaseStatusDraft, EventCancel}:       CaseStatusCancelled,
	{CaseStatusSubmitted, EventCancel}:   CaseStatusCancelled,
	{CaseStatusApproved, EventCancel}:    CaseStatusCancelled,
	{CaseStatusPaid, EventCancel}:        CaseStatusCancelled,
}

// NextStatus returns the status a case moves to when event is applied.
// It has no side effects and no persistence dependency.
func NextStatus(from CaseStatus, event CaseEvent, categoryType CategoryType) (CaseStatus, error) {
	to, ok := caseTransitions[transitionKey{from: from, event: event}]
	if !ok {
		return from, fmt.Errorf("%w: cannot %s a case in status %s", ErrInvalidTransition, event, from)
	}
	if event == EventApprove && categoryType != CategoryExpense {
		// Revenue and asset money is already received; approval closes the case.
		return CaseStatusClosed, nil
	}
	return to, nil
}

// ExpectedStatuses lists the statuses from which event is legal, in graph order.
func ExpectedStatuses(event CaseEvent) []CaseStatus {
	order := []CaseStatus{CaseStatusDraft, CaseStatusSubmitted, CaseStatusApproved, CaseStatusPaid}
	var out []CaseStatus
	for _, s := range order {
		if _, ok := caseTransitions[transitionKey{from: s, event: event}]; ok {
			out = append(out, s)
		}
	}
	return out
}

// statusRank orders statuses along the forward path. Terminal side branches
// rank above every non-terminal status.
var statusRank = map[CaseStatus]int{
	CaseStatusDraft:     0,
	CaseStatusSubmitted: 1,
	CaseStatusApproved:  2,
	CaseStatusPaid:      3,
	CaseStatusClosed:    4,
	CaseStatusRejected:  4,
	CaseStatusCancelled: 4,
}

// IsForward reports whether moving from one status to another never regresses.
func IsForward(from, to CaseStatus) bool {
	return statusRank[to] >= statusRank[from] && !(from.IsTerminal() && from != to)
}

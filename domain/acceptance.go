package domain

// AcceptanceStatus is the supplier's answer to a trip assigned to them.
type AcceptanceStatus string

const (
	AcceptanceAssigned AcceptanceStatus = "Assigned"
	AcceptanceAccepted AcceptanceStatus = "Accepted"
	AcceptanceRejected AcceptanceStatus = "Rejected"
)

// RespondToAssignment records the supplier's answer. Only an assignment that
// has not been answered yet can change.
func RespondToAssignment(from AcceptanceStatus, accept bool) (AcceptanceStatus, error) {
	event := "reject"
	if accept {
		event = "accept"
	}
	if from != AcceptanceAssigned && from != "" {
		return from, &InvalidTransitionError{Track: "acceptance", From: string(from), Event: event}
	}
	if accept {
		return AcceptanceAccepted, nil
	}
	return AcceptanceRejected, nil
}

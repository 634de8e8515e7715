package audit

import "fmt"

// ActivateEvent represents an account activation audit event
type ActivateEvent struct {
	UserID  string
	Success bool
}

func (e ActivateEvent) MessageID() string {
	return "activate"
}

func (e ActivateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("account %s activated", e.UserID)
	}
	return fmt.Sprintf("account %s activation failed", e.UserID)
}

func (e ActivateEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ActivateEvent) Facility() int {
	return FacilityAuth
}

func (e ActivateEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": "activate",
			"result":    result,
		},
	}
}

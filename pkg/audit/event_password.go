package audit

import "fmt"

// PasswordEvent represents a password change audit event
type PasswordEvent struct {
	UserID  string
	Success bool
}

func (e PasswordEvent) MessageID() string {
	return "password"
}

func (e PasswordEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully changed their password", e.UserID)
	}
	return fmt.Sprintf("%s failed to change their password", e.UserID)
}

func (e PasswordEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e PasswordEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PasswordEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": "password",
			"result":    result,
		},
	}
}

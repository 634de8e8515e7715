package audit

import "fmt"

// SignupEvent represents an account creation audit event
type SignupEvent struct {
	UserID   string
	Email    string
	Role     string
	Provider string
}

func (e SignupEvent) MessageID() string {
	return "signup"
}

func (e SignupEvent) Message() string {
	return fmt.Sprintf("account %s created with role %s", e.UserID, e.Role)
}

func (e SignupEvent) Severity() Severity {
	return SeverityNotice
}

func (e SignupEvent) Facility() int {
	return FacilityAuth
}

func (e SignupEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user":     e.UserID,
			"role":     e.Role,
			"provider": e.Provider,
		},
		SDIDAction: {
			"operation": "signup",
			"result":    "success",
		},
	}
}

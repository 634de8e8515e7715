package audit

import "fmt"

// LogoutEvent represents a session termination audit event
type LogoutEvent struct {
	UserID string
	Forced bool
}

func (e LogoutEvent) MessageID() string {
	return "logout"
}

func (e LogoutEvent) Message() string {
	if e.Forced {
		return fmt.Sprintf("%s session forcibly terminated", e.UserID)
	}
	return fmt.Sprintf("%s logged out", e.UserID)
}

func (e LogoutEvent) Severity() Severity {
	if e.Forced {
		return SeverityWarning
	}
	return SeverityInfo
}

func (e LogoutEvent) Facility() int {
	return FacilityAuthPriv
}

func (e LogoutEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": "logout",
			"result":    "success",
		},
	}
	if e.Forced {
		sd[SDIDAction]["forced"] = "true"
	}
	return sd
}

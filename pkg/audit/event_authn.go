package audit

import "fmt"

// AuthenticateEvent represents a login attempt audit event
type AuthenticateEvent struct {
	UserID   string
	Email    string
	ClientIP string
	Success  bool
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	subject := e.UserID
	if subject == "" {
		subject = e.Email
	}
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", subject)
	}
	return fmt.Sprintf("%s failed to authenticate", subject)
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user":          e.UserID,
			"authenticator": "password",
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authenticate",
			"result":    result,
		},
	}
}

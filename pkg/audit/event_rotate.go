package audit

import "fmt"

// RotateEvent represents a refresh-token rotation audit event. Replayed
// marks reuse of an already-consumed refresh token, which forces a logout
// of the session.
type RotateEvent struct {
	UserID   string
	Success  bool
	Replayed bool
}

func (e RotateEvent) MessageID() string {
	return "rotate"
}

func (e RotateEvent) Message() string {
	if e.Replayed {
		return fmt.Sprintf("%s presented a consumed refresh token; session terminated", e.UserID)
	}
	if e.Success {
		return fmt.Sprintf("%s rotated tokens", e.UserID)
	}
	return fmt.Sprintf("%s failed to rotate tokens", e.UserID)
}

func (e RotateEvent) Severity() Severity {
	if e.Replayed {
		return SeverityError
	}
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RotateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RotateEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": "rotate",
			"result":    result,
		},
	}
	if e.Replayed {
		sd[SDIDAction]["replayed"] = "true"
	}
	return sd
}

package audit

import (
	"fmt"
	"strconv"
)

// CheckEvent represents a permission check audit event
type CheckEvent struct {
	UserID   string
	Role     string
	Resource string
	Action   string
	Allowed  bool
	Code     int
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s checked permission %s on %s: allowed", e.UserID, e.Action, e.Resource)
	}
	return fmt.Sprintf("%s checked permission %s on %s: denied", e.UserID, e.Action, e.Resource)
}

func (e CheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CheckEvent) Facility() int {
	return FacilityAuthPriv
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Allowed {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
			"role": e.Role,
		},
		SDIDSubject: {
			"resource": e.Resource,
			"action":   e.Action,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result,
		},
	}
	if e.Code != 0 {
		sd[SDIDAction]["code"] = strconv.Itoa(e.Code)
	}
	return sd
}

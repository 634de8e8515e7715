package audit

import "fmt"

// OTP event operations
const (
	OTPOperationSend   = "send"
	OTPOperationVerify = "verify"
)

// OTPEvent represents an OTP send or verification audit event
type OTPEvent struct {
	UserID    string
	Operation string
	Kind      string
	Success   bool
	Reason    string
}

func (e OTPEvent) MessageID() string {
	return "otp"
}

func (e OTPEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s otp %s (%s) succeeded", e.UserID, e.Operation, e.Kind)
	}
	return fmt.Sprintf("%s otp %s (%s) failed: %s", e.UserID, e.Operation, e.Kind, e.Reason)
}

func (e OTPEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e OTPEvent) Facility() int {
	return FacilityAuthPriv
}

func (e OTPEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": "otp-" + e.Operation,
			"kind":      e.Kind,
			"result":    result,
		},
	}
}

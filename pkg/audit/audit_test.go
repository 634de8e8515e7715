package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := AuthenticateEvent{
		UserID:   "u-1001",
		ClientIP: "192.168.1.1",
		Success:  true,
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.Contains(output, "gatehouse") {
		t.Error("Expected app name 'gatehouse' in output")
	}
	if !strings.Contains(output, "authn") {
		t.Error("Expected message ID 'authn' in output")
	}
	if !strings.Contains(output, "u-1001") {
		t.Error("Expected user id in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "successfully authenticated") {
		t.Error("Expected success message in output")
	}
}

func TestAuthenticateEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     AuthenticateEvent
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name: "successful authentication",
			event: AuthenticateEvent{
				UserID:   "u-1001",
				ClientIP: "10.0.0.1",
				Success:  true,
			},
			wantMsg:   "successfully authenticated",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
		{
			name: "failed authentication falls back to email",
			event: AuthenticateEvent{
				Email:    "jo@example.com",
				ClientIP: "10.0.0.1",
				Success:  false,
			},
			wantMsg:   "jo@example.com failed to authenticate",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != tt.wantFac {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), tt.wantFac)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestCheckEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   CheckEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "allowed",
			event: CheckEvent{
				UserID:   "u-1001",
				Role:     "User",
				Resource: "profiles",
				Action:   "readOwn",
				Allowed:  true,
			},
			wantMsg: "allowed",
			wantSev: SeverityInfo,
		},
		{
			name: "denied",
			event: CheckEvent{
				UserID:   "u-1002",
				Role:     "User",
				Resource: "roles",
				Action:   "deleteAny",
				Allowed:  false,
				Code:     1000204,
			},
			wantMsg: "denied",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "check" {
				t.Errorf("MessageID() = %v, want 'check'", tt.event.MessageID())
			}
		})
	}
}

func TestCheckEventDeniedStructuredData(t *testing.T) {
	event := CheckEvent{
		UserID:   "u-1002",
		Role:     "User",
		Resource: "roles",
		Action:   "deleteAny",
		Allowed:  false,
		Code:     1000204,
	}

	sd := event.StructuredData()

	if sd[SDIDAction]["result"] != "failure" {
		t.Errorf("StructuredData action.result = %v, want 'failure'", sd[SDIDAction]["result"])
	}
	if sd[SDIDAction]["code"] != "1000204" {
		t.Errorf("StructuredData action.code = %v, want '1000204'", sd[SDIDAction]["code"])
	}
	if sd[SDIDAuth]["role"] != "User" {
		t.Errorf("StructuredData auth.role = %v, want 'User'", sd[SDIDAuth]["role"])
	}
}

func TestRotateEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   RotateEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "rotation success",
			event:   RotateEvent{UserID: "u-1001", Success: true},
			wantMsg: "rotated tokens",
			wantSev: SeverityInfo,
		},
		{
			name:    "rotation failure",
			event:   RotateEvent{UserID: "u-1001", Success: false},
			wantMsg: "failed to rotate",
			wantSev: SeverityWarning,
		},
		{
			name:    "replay detected",
			event:   RotateEvent{UserID: "u-1001", Replayed: true},
			wantMsg: "consumed refresh token",
			wantSev: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "rotate" {
				t.Errorf("MessageID() = %v, want 'rotate'", tt.event.MessageID())
			}
		})
	}
}

func TestOTPEvent(t *testing.T) {
	event := OTPEvent{
		UserID:    "u-1001",
		Operation: OTPOperationSend,
		Kind:      "verify",
		Success:   false,
		Reason:    "hourly limit reached",
	}

	if event.MessageID() != "otp" {
		t.Errorf("MessageID() = %v, want 'otp'", event.MessageID())
	}
	if !strings.Contains(event.Message(), "hourly limit reached") {
		t.Errorf("Message() = %q, want to contain reason", event.Message())
	}

	sd := event.StructuredData()
	if sd[SDIDAction]["operation"] != "otp-send" {
		t.Errorf("StructuredData action.operation = %v, want 'otp-send'", sd[SDIDAction]["operation"])
	}
	if sd[SDIDAction]["kind"] != "verify" {
		t.Errorf("StructuredData action.kind = %v, want 'verify'", sd[SDIDAction]["kind"])
	}
}

func TestPasswordEvent(t *testing.T) {
	event := PasswordEvent{
		UserID:  "u-1001",
		Success: true,
	}

	if event.MessageID() != "password" {
		t.Errorf("MessageID() = %v, want 'password'", event.MessageID())
	}
	if !strings.Contains(event.Message(), "changed their password") {
		t.Errorf("Message() = %q, want to contain 'changed their password'", event.Message())
	}
}

func TestLogoutEvent(t *testing.T) {
	forced := LogoutEvent{UserID: "u-1001", Forced: true}
	if !strings.Contains(forced.Message(), "forcibly terminated") {
		t.Errorf("Message() = %q, want to contain 'forcibly terminated'", forced.Message())
	}
	if forced.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want SeverityWarning", forced.Severity())
	}

	voluntary := LogoutEvent{UserID: "u-1001"}
	if !strings.Contains(voluntary.Message(), "logged out") {
		t.Errorf("Message() = %q, want to contain 'logged out'", voluntary.Message())
	}
}

func TestActivateEvent(t *testing.T) {
	event := ActivateEvent{UserID: "u-1001", Success: true}

	if event.MessageID() != "activate" {
		t.Errorf("MessageID() = %v, want 'activate'", event.MessageID())
	}
	if !strings.Contains(event.Message(), "activated") {
		t.Errorf("Message() = %q, want to contain 'activated'", event.Message())
	}
	if event.Facility() != FacilityAuth {
		t.Errorf("Facility() = %v, want FacilityAuth", event.Facility())
	}
}

func TestSignupEventStructuredData(t *testing.T) {
	event := SignupEvent{
		UserID:   "u-1001",
		Email:    "jo@example.com",
		Role:     "User",
		Provider: "local",
	}

	sd := event.StructuredData()

	if sd[SDIDAuth]["user"] != "u-1001" {
		t.Errorf("StructuredData auth.user = %v, want 'u-1001'", sd[SDIDAuth]["user"])
	}
	if sd[SDIDAuth]["provider"] != "local" {
		t.Errorf("StructuredData auth.provider = %v, want 'local'", sd[SDIDAuth]["provider"])
	}
	if sd[SDIDAction]["operation"] != "signup" {
		t.Errorf("StructuredData action.operation = %v, want 'signup'", sd[SDIDAction]["operation"])
	}
}

func TestAuditToggle(t *testing.T) {
	originalEnabled := auditEnabled
	defer func() {
		auditEnabled = originalEnabled
	}()

	SetEnabled(false)
	if IsEnabled() {
		t.Error("Expected audit to be disabled")
	}

	SetEnabled(true)
	if !IsEnabled() {
		t.Error("Expected audit to be enabled")
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{`with"quote`, `"with\"quote"`},
		{`with\backslash`, `"with\\backslash"`},
		{`with]bracket`, `"with\]bracket"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeSDValue(tt.input)
			if got != tt.want {
				t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

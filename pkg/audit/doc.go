// Package audit provides audit logging for Gatehouse operations.
//
// This package implements structured audit logging for security-relevant
// operations: authentication attempts, permission checks, token rotations,
// OTP activity and password changes.
//
// # Event Types
//
//   - AuthenticateEvent: login success/failure
//   - SignupEvent: account creation
//   - RotateEvent: refresh-token rotation, including replay detection
//   - CheckEvent: permission middleware decisions
//   - OTPEvent: OTP sends and verifications
//   - PasswordEvent: password resets and changes
//   - LogoutEvent: session termination
//   - ActivateEvent: account activation
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{UserID: id, Success: true})
//
// Audit events are logged in RFC5424 syslog format suitable for security
// monitoring and compliance requirements.
package audit

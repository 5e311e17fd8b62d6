// Package jwtx seals the authenticated session into a compact signed token.
//
// The same token serves two jobs: it is the durable slot content that
// survives daemon restarts, and it is the bearer proof the dashboard sends
// back on every facade call. Tokens carry no expiry on purpose: a session
// lives until logout or slot loss, never past either.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the sealed session payload. Subject carries the account id and
// ID (jti) carries the per-login instance id, so a token minted by an older
// login stops verifying as proof once a fresh login replaces the session.
type Claims struct {
	jwt.RegisteredClaims

	// Role discriminant: "admin", "teacher", "supervisor" or "student".
	Role string `json:"role"`

	// Username the account logged in with.
	Username string `json:"username,omitempty"`

	// DisplayName shown in the dashboard header.
	DisplayName string `json:"display_name,omitempty"`

	// ClassID and ClassName, student sessions only.
	ClassID   string `json:"class_id,omitempty"`
	ClassName string `json:"class_name,omitempty"`

	// PasswordChanged tracks whether a student rotated the handed-out
	// initial password. Student sessions only.
	PasswordChanged bool `json:"password_changed,omitempty"`

	// AssignedClassIDs, supervisor sessions only.
	AssignedClassIDs []string `json:"assigned_class_ids,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a fresh login.
// Role-specific fields are set by the caller afterwards.
func NewSessionClaims(subject, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        NewInstanceID(),
		},
	}
}

// NewInstanceID returns the per-login identifier for the "jti" claim.
func NewInstanceID() string {
	return uuid.NewString()
}

// ValidateIssuer checks the issuer matches the expected value. Empty
// expected means nothing to enforce.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

package domain

import "errors"

// ============================================================================
// Startup / Load Errors (fatal: refuse to serve)
// ============================================================================

var (
	ErrDataLoad = errors.New("data file missing or unreadable")
	ErrSchema   = errors.New("schema mismatch")
)

// ============================================================================
// Request Validation Errors
// ============================================================================

var (
	ErrUnknownColumn        = errors.New("unknown feature column")
	ErrInvalidValue         = errors.New("invalid feature value")
	ErrMalformedFeaturePair = errors.New("feature override must be COLUMN=VALUE")
)

// ============================================================================
// Inference Errors
// ============================================================================

var (
	ErrInference = errors.New("inference failed")
)

// ============================================================================
// Auth Errors
// ============================================================================

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

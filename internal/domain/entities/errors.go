package entities

import "errors"

var (
	// ErrInvalidRoot means the scan root does not exist or is not a directory
	ErrInvalidRoot = errors.New("invalid scan root")

	// ErrRootAccess means the scan root exists but cannot be listed
	ErrRootAccess = errors.New("scan root not readable")

	// ErrInvalidPolicy means the policy file or catalog is malformed
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrUntrustedPolicy means the policy signature could not be verified
	ErrUntrustedPolicy = errors.New("policy signature not trusted")
)

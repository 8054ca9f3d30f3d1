package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrAlreadyInitialized is returned when initialize is attempted on an initialized NFT
	ErrAlreadyInitialized = errors.New("contract already initialized")

	// ErrNotInitialized is returned when the flag still reads false after initialize
	ErrNotInitialized = errors.New("contract not initialized after initialize call")

	// ErrChainIDMismatch is returned when the RPC endpoint serves a different chain
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)

// ConfigError reports malformed static configuration. It is always raised
// before any transaction is sent.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DeploymentError reports a contract creation that was rejected or never confirmed.
type DeploymentError struct {
	Contract ContractKind
	Artifact string
	Err      error
}

func (e *DeploymentError) Error() string {
	if e.Artifact != "" {
		return fmt.Sprintf("deploy %s (%s): %v", e.Contract, e.Artifact, e.Err)
	}
	return fmt.Sprintf("deploy %s: %v", e.Contract, e.Err)
}

func (e *DeploymentError) Unwrap() error { return e.Err }

// QueryError reports a failed read of contract state.
type QueryError struct {
	Contract ContractKind
	Method   string
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s.%s: %v", e.Contract, e.Method, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// InitializationError reports a rejected or failed initialize call, including
// attempts to initialize twice.
type InitializationError struct {
	Contract ContractKind
	Err      error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Contract, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

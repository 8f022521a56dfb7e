package data

import (
	"fmt"

	"github.com/pkg/errors"
)

// CredentialError - missing or invalid mnemonic, or address derivation failure
type CredentialError struct {
	Reason string
	Err    error
}

// NewCredentialError - creates a CredentialError carrying a stack trace
func NewCredentialError(reason string, err error) error {
	return errors.WithStack(&CredentialError{Reason: reason, Err: err})
}

func (e *CredentialError) Error() string {
	return joinCause("credential error: "+e.Reason, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// ConfigurationError - a required setting is absent or inconsistent
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError - creates a ConfigurationError carrying a stack trace
func NewConfigurationError(field, reason string) error {
	return errors.WithStack(&ConfigurationError{Field: field, Reason: reason})
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// ConnectionError - endpoint unreachable, handshake failure or broken transport
type ConnectionError struct {
	Endpoint string
	Err      error
}

// NewConnectionError - creates a ConnectionError carrying a stack trace
func NewConnectionError(endpoint string, err error) error {
	return errors.WithStack(&ConnectionError{Endpoint: endpoint, Err: err})
}

func (e *ConnectionError) Error() string {
	return joinCause("connection error: "+e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ArtifactNotFoundError - the contract bytecode can not be read
type ArtifactNotFoundError struct {
	Path string
	Err  error
}

// NewArtifactNotFoundError - creates an ArtifactNotFoundError carrying a stack trace
func NewArtifactNotFoundError(path string, err error) error {
	return errors.WithStack(&ArtifactNotFoundError{Path: path, Err: err})
}

func (e *ArtifactNotFoundError) Error() string {
	return joinCause("artifact not found: "+e.Path, e.Err)
}

func (e *ArtifactNotFoundError) Unwrap() error { return e.Err }

// ChainRejectionError - a transaction or query refused by the chain or the contract
type ChainRejectionError struct {
	Operation string
	TxHash    string
	Codespace string
	Code      uint32
	Log       string
}

// NewChainRejectionError - creates a ChainRejectionError carrying a stack trace
func NewChainRejectionError(operation, txHash, codespace string, code uint32, log string) error {
	return errors.WithStack(&ChainRejectionError{
		Operation: operation,
		TxHash:    txHash,
		Codespace: codespace,
		Code:      code,
		Log:       log,
	})
}

func (e *ChainRejectionError) Error() string {
	msg := fmt.Sprintf("chain rejected %s", e.Operation)
	if e.TxHash != "" {
		msg += " tx " + e.TxHash
	}
	if e.Code != 0 {
		msg += fmt.Sprintf(" (codespace %s, code %d)", e.Codespace, e.Code)
	}

	return msg + ": " + e.Log
}

func joinCause(msg string, err error) string {
	if err == nil {
		return msg
	}

	return msg + ": " + err.Error()
}

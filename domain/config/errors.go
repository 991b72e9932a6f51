package config

import "errors"

// Errors returned while loading an agentfs configuration.
var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidFormat indicates the file could not be decoded.
	ErrInvalidFormat = errors.New("invalid configuration format")

	// ErrUnsupportedFormat indicates an unrecognized file extension.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrValidationFailed wraps every validation error.
	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrMissingEnvVar indicates a referenced environment variable is unset
	// in strict mode, or a ${VAR:?message} reference is unset.
	ErrMissingEnvVar = errors.New("required environment variable not set")
)

package pack

import "errors"

// Domain errors for pack operations.
var (
	// ErrPackNotFound is returned when a pack does not exist.
	ErrPackNotFound = errors.New("pack not found")

	// ErrPackExists is returned when a pack already exists.
	ErrPackExists = errors.New("pack already exists")

	// ErrInvalidPack is returned when a pack is invalid.
	ErrInvalidPack = errors.New("invalid pack")

	// ErrUnknownTool is returned when a selection names a tool the pack
	// does not define.
	ErrUnknownTool = errors.New("unknown pack tool")
)

// Package data provides data management functionality for the Skillscape application.
// This file defines the sentinel errors returned by the data managers.
package data

import "errors"

// Validation errors. Operations check their inputs fully before touching any
// state, so receiving one of these means nothing was modified and the call
// can be retried with corrected input. Callers match them with errors.Is.
var (
	// ErrDuplicateCode is returned when a standard code, generated or
	// explicit, is already in use.
	ErrDuplicateCode = errors.New("standard code already in use")

	// ErrDuplicateGroup is returned when a group name or group letter is
	// already in use.
	ErrDuplicateGroup = errors.New("group name or code already in use")

	// ErrDuplicateName is returned when a staff member or user name is
	// already taken.
	ErrDuplicateName = errors.New("name already in use")

	// ErrCycle is returned when a move would make a standard its own
	// ancestor.
	ErrCycle = errors.New("operation would create a cycle")

	// ErrMissingRequiredField is returned when a required input is absent,
	// for example an empty name, or a new standard with neither a parent
	// code nor a group.
	ErrMissingRequiredField = errors.New("required field is missing")

	// ErrMalformedCode is returned when an explicitly supplied code does not
	// match the letter-dot-number grammar or the prefix its position
	// requires.
	ErrMalformedCode = errors.New("code does not match the required format")

	// ErrInvalidScore is returned when an assessment score is outside the
	// 1 to 5 range.
	ErrInvalidScore = errors.New("assessment score out of range")
)

// Referential errors.
var (
	// ErrReferentialIntegrity is returned when deleting an entity that is
	// still referenced, such as a group with member standards or a standard
	// with children when no cascade was requested.
	ErrReferentialIntegrity = errors.New("entity is still referenced")

	// ErrNotFound is returned when no entity matches the given identifier.
	ErrNotFound = errors.New("not found")
)

// Capacity errors.
var (
	// ErrGroupLettersExhausted is returned by group creation when all 26
	// letters are assigned.
	ErrGroupLettersExhausted = errors.New("all group letters are in use")
)

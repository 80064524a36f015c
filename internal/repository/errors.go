// Package repository provides MySQL data access for seats, users and
// refresh tokens. Sentinel errors defined here are reused across
// repositories so higher layers can distinguish failure scenarios
// without depending on driver details.
package repository

import "errors"

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrVersionConflict is returned by Save when the seat's version in the
// database no longer matches the loaded version, i.e. another writer
// persisted a transition first. Callers should reload and retry or
// report the operation as failed.
var ErrVersionConflict = errors.New("seat version conflict")

// ErrEmailExists is returned when registering a user with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")

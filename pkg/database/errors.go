package database

import "errors"

// Errors surfaced by the database system.
var (
	ErrNotConnected = errors.New("database connection not established")
)

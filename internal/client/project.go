package client

import "time"

// Project is the client-side project entity. IsActive is derived on every
// mapping and never sent back to the server.
type Project struct {
	ID       string
	Name     string
	Path     string
	AddedAt  time.Time
	IsActive bool
}

// PathValidation is the result of checking a candidate project path.
type PathValidation struct {
	Valid         bool
	SuggestedName string
}

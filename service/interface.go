// Package service runs the long-lived collaborators of the frame loop
// (audio, gesture tracking) under one ordered lifecycle.
package service

import "context"

// Service defines the lifecycle of an infrastructure subsystem
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration that may fail before anything runs
//  3. Start(ctx) - launch background goroutines bound to ctx
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must start before this one
	Dependencies() []string

	// Init configures the service; args are service-specific
	Init(args ...any) error

	// Start begins service operation
	Start(ctx context.Context) error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}

// Optional marks a service whose Init or Start failure is a capability loss
// rather than a fatal error; the hub logs it and carries on without it
type Optional interface {
	Optional() bool
}

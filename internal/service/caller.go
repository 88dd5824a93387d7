package service

import "tutorhub/internal/model"

// Caller is the authenticated identity an operation runs on behalf of.
// Handlers build it from validated token claims; services never reach into
// ambient request state.
type Caller struct {
	ID   uint
	Role model.Role
}

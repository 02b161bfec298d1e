// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth defines the authentication capability surface.
//
// No identity backend ships with the application. The interface exists
// so the UI can expose sign-in affordances; the only implementation
// fails every call with ErrNotConfigured until a real provider is wired
// in.
package auth

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates no authentication backend is available.
var ErrNotConfigured = errors.New("auth: no provider configured")

// User identifies an authenticated account.
type User struct {
	ID    string
	Email string
	Name  string
}

// Provider is the authentication capability.
type Provider interface {
	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*User, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// CurrentUser returns the signed-in user, or nil when signed out.
	CurrentUser() *User
}

// Unconfigured is the placeholder provider. Every operation fails with
// ErrNotConfigured; CurrentUser is always nil.
type Unconfigured struct{}

// NewUnconfigured returns the placeholder provider.
func NewUnconfigured() *Unconfigured {
	return &Unconfigured{}
}

// SignIn always fails with ErrNotConfigured.
func (*Unconfigured) SignIn(ctx context.Context, email, password string) (*User, error) {
	return nil, ErrNotConfigured
}

// SignOut always fails with ErrNotConfigured.
func (*Unconfigured) SignOut(ctx context.Context) error {
	return ErrNotConfigured
}

// CurrentUser always returns nil.
func (*Unconfigured) CurrentUser() *User {
	return nil
}

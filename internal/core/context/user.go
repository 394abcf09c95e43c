// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Role names used across the API surface.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID     string
	CustomerID string // linked customer record for customer accounts
	Email      string
	Roles      []string
	IsStaff    bool
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetCustomerID returns the linked customer ID from context or empty string.
func GetCustomerID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.CustomerID
	}
	return ""
}

// IsStaff reports whether the current user carries the staff role.
func IsStaff(ctx context.Context) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	if u.IsStaff {
		return true
	}
	for _, r := range u.Roles {
		if r == RoleStaff {
			return true
		}
	}
	return false
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// GetUserContext is an alias for GetUser for backwards compatibility.
func GetUserContext(ctx context.Context) *UserContext {
	return GetUser(ctx)
}

// Package gate provides role-profile based authorization.
//
// A Profile is a named set of Permissions ("resource:action" strings, with
// wildcard support). A ProfileResolver maps a subject to its Profile; the
// Gate combines the two into a single Authorize checkpoint. The package has
// no dependency on domain models and uses generics for the subject type:
//
//	gate.NewGate[uint](resolver)       // user-id based
//	gate.NewGate[*Claims](resolver)    // token-claims based
package gate

import "context"

// Gate is the central authorization checkpoint.
// U is the subject type and must be comparable for the zero-value check.
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
}

// NewGate creates a gate backed by the given profile resolver.
func NewGate[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver}
}

// Authorize returns nil if the subject's profile grants action on
// resourceType. A zero-value subject, a missing profile, or a profile
// without the permission all yield ErrUnauthorized.
func (g *Gate[U]) Authorize(ctx context.Context, subject U, action Action, resourceType string) error {
	var zero U
	if subject == zero {
		return ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil || profile == nil {
		return ErrUnauthorized
	}
	if !profile.HasPermission(NewPermission(resourceType, action)) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, subject U, action Action, resourceType string) bool {
	return g.Authorize(ctx, subject, action, resourceType) == nil
}

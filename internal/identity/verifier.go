// Package identity resolves bearer credentials to verified principals. The
// hosted token issuer is an external collaborator; this package only consumes
// its tokens.
package identity

import "context"

// Principal is the verified identity of an inbound call.
type Principal struct {
	Email string
	Name  string
}

// Verifier validates a bearer credential and returns the principal it was
// issued to.
type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// Package delivery defines the contract every transport entry point fulfills.
package delivery

import "context"

// Delivery is a long-running transport server, started once and stopped via
// the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}

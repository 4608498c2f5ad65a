// Package delivery defines the contract every transport front end fulfils.
package delivery

import "context"

// Delivery is a long-lived serving component started by the application
// runtime and stopped through its lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}

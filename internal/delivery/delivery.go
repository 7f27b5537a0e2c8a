// Package delivery defines the contract every transport front end
// satisfies so the application can start them uniformly.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the application
// lifecycle. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}

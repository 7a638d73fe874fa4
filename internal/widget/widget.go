// Package widget drives the open/closed refresh cycle shown on every
// display surface.
//
// All methods of Controller must be called from the Bubble Tea update loop.
// Fetches run inside the returned commands and come back as messages that
// the loop hands to Controller.Update.
package widget

import "context"

//go:generate mockgen -destination=mocks/mock_widget.go -package=mocks -source=widget.go StatusFetcher,SurfaceRegistry,Host

// StatusFetcher reports whether the café is currently open
type StatusFetcher interface {
	FetchOpenStatus(ctx context.Context) (bool, error)
}

// SurfaceRegistry enumerates the surfaces that exist right now
type SurfaceRegistry interface {
	Surfaces() []SurfaceID
}

// Host displays a rendered state on a surface. Pushing to a surface that no
// longer exists must be harmless.
type Host interface {
	Push(id SurfaceID, state RenderedState)
}

// Package service declares the contracts of the collaborators the orchestrator talks to.
package service

import (
	"context"
	"net/url"
)

// RemoteClient issues single JSON requests against the remote service's base URL.
// Every failure it returns satisfies errors.Is(err, domainerrors.ErrRemoteUnavailable).
type RemoteClient interface {
	// Call sends one request. body is JSON-encoded when non-nil; a 2xx JSON response
	// is decoded into out when out is non-nil.
	Call(ctx context.Context, method, endpoint string, query url.Values, body, out any) error

	// Probe performs the lightweight health request used by the status check.
	Probe(ctx context.Context) error
}

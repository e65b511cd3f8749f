// Package kit holds the transport plumbing shared by the HTTP service
// and the MCP tools: the endpoint shape, middleware chaining, request
// context accessors, and the MCP tool adapter.
package kit

import "context"

// Endpoint is the transport-agnostic unit of work: a decoded request
// in, a response out.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first one given is outermost.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

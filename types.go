package simplerpc

import (
	"context"
	"simplerpc/message"
)

//go:generate mockgen -source=types.go -destination=mock_proxy_gen.go -package=simplerpc

// Proxy is the client-side primitive every stub call bottoms out in:
// send one request, block for one response.
type Proxy interface {
	Invoke(ctx context.Context, request *message.Request) (*message.Response, error)
}

// Handler is the shape shared by server dispatch and the client
// transport: one request in, one response or error out. An error means
// the exchange could not produce a response at all; a business failure
// travels inside Response.Error instead.
type Handler func(ctx context.Context, req *message.Request) (*message.Response, error)

// Interceptor wraps a Handler. The first interceptor registered is the
// outermost one.
type Interceptor func(next Handler) Handler

func chainInterceptors(h Handler, ins []Interceptor) Handler {
	for i := len(ins) - 1; i >= 0; i-- {
		h = ins[i](h)
	}
	return h
}

// Package api is the contract shared by the greet provider and
// consumer: the interface declaration both ends derive descriptors
// from, and the client-side adapter that makes the remote service
// look local.
package api

import (
	"context"
	"simplerpc"

	"github.com/gotomicro/ekit/bean/option"
)

// GreeterInterface declares the greeter capability set. The provider
// registers handlers against the same names and types, which is what
// makes the wire signatures match.
func GreeterInterface() *simplerpc.Interface {
	i := simplerpc.NewInterface("greeter")
	simplerpc.Declare1[string, string](i, "Hello")
	simplerpc.Declare2[string, int, string](i, "Repeat")
	return i
}

// GreeterClient is the stub: every method forwards to the invoker and
// blocks for the round trip.
type GreeterClient struct {
	invoker *simplerpc.Invoker
}

func NewGreeterClient(host string, port int, opts ...option.Option[simplerpc.Invoker]) (*GreeterClient, error) {
	invoker, err := simplerpc.Refer(GreeterInterface(), host, port, opts...)
	if err != nil {
		return nil, err
	}
	return &GreeterClient{invoker: invoker}, nil
}

func (c *GreeterClient) Hello(ctx context.Context, name string) (string, error) {
	return simplerpc.Call1[string, string](ctx, c.invoker, "Hello", name)
}

func (c *GreeterClient) Repeat(ctx context.Context, greeting string, times int) (string, error) {
	return simplerpc.Call2[string, int, string](ctx, c.invoker, "Repeat", greeting, times)
}

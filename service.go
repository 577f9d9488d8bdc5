package simplerpc

import (
	"context"
	"fmt"
	"simplerpc/internal/errs"
	"simplerpc/serialize"
)

// methodFunc executes one dispatched call: it decodes the raw argument
// values with the request's serializer, runs the registered function
// and hands back the result to be serialized.
type methodFunc func(ctx context.Context, serializer serialize.Serializer, args [][]byte) (any, error)

type method struct {
	spec MethodSpec
	fn   methodFunc
}

// Service is a dispatch table: an interface plus one bound function
// per declared method. The table is populated through the Handle
// helpers before Export and never mutated afterwards, so dispatch
// needs no locking.
type Service struct {
	name    string
	methods map[string]method
}

func NewService(name string) *Service {
	return &Service{
		name:    name,
		methods: make(map[string]method, 8),
	}
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) NumMethods() int {
	return len(s.methods)
}

// Interface derives the capability set of the registered methods, for
// callers that refer to the service they also export.
func (s *Service) Interface() *Interface {
	i := NewInterface(s.name)
	for _, m := range s.methods {
		i.declare(m.spec)
	}
	return i
}

func (s *Service) resolve(methodName string, paramTypes []string) (method, bool) {
	m, ok := s.methods[signature(methodName, paramTypes)]
	return m, ok
}

func (s *Service) register(spec MethodSpec, fn methodFunc) {
	s.methods[spec.Signature()] = method{spec: spec, fn: fn}
}

// decodeArg tags serializer failures as malformed-message errors so
// the server can tell an undecodable request from a failing handler:
// the former is dropped without a response.
func decodeArg[A any](serializer serialize.Serializer, data []byte) (A, error) {
	var a A
	if err := serializer.Decode(data, &a); err != nil {
		return a, fmt.Errorf("%w: %v", errs.MalformedMessageError, err)
	}
	return a, nil
}

// Handle0 binds a parameterless function to a method name.
func Handle0[R any](s *Service, name string, fn func(ctx context.Context) (R, error)) {
	spec := MethodSpec{
		Name:       name,
		ResultType: descriptorFor[R](),
	}
	s.register(spec, func(ctx context.Context, _ serialize.Serializer, _ [][]byte) (any, error) {
		return fn(ctx)
	})
}

func Handle1[A, R any](s *Service, name string, fn func(ctx context.Context, a A) (R, error)) {
	spec := MethodSpec{
		Name:       name,
		ParamTypes: []string{descriptorFor[A]()},
		ResultType: descriptorFor[R](),
	}
	s.register(spec, func(ctx context.Context, serializer serialize.Serializer, args [][]byte) (any, error) {
		a, err := decodeArg[A](serializer, args[0])
		if err != nil {
			return nil, err
		}
		return fn(ctx, a)
	})
}

func Handle2[A, B, R any](s *Service, name string, fn func(ctx context.Context, a A, b B) (R, error)) {
	spec := MethodSpec{
		Name:       name,
		ParamTypes: []string{descriptorFor[A](), descriptorFor[B]()},
		ResultType: descriptorFor[R](),
	}
	s.register(spec, func(ctx context.Context, serializer serialize.Serializer, args [][]byte) (any, error) {
		a, err := decodeArg[A](serializer, args[0])
		if err != nil {
			return nil, err
		}
		b, err := decodeArg[B](serializer, args[1])
		if err != nil {
			return nil, err
		}
		return fn(ctx, a, b)
	})
}

func Handle3[A, B, C, R any](s *Service, name string, fn func(ctx context.Context, a A, b B, c C) (R, error)) {
	spec := MethodSpec{
		Name:       name,
		ParamTypes: []string{descriptorFor[A](), descriptorFor[B](), descriptorFor[C]()},
		ResultType: descriptorFor[R](),
	}
	s.register(spec, func(ctx context.Context, serializer serialize.Serializer, args [][]byte) (any, error) {
		a, err := decodeArg[A](serializer, args[0])
		if err != nil {
			return nil, err
		}
		b, err := decodeArg[B](serializer, args[1])
		if err != nil {
			return nil, err
		}
		c, err := decodeArg[C](serializer, args[2])
		if err != nil {
			return nil, err
		}
		return fn(ctx, a, b, c)
	})
}

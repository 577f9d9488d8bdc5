package simplerpc

import (
	"context"
	"simplerpc/internal/errs"
	"simplerpc/message"
	"sync/atomic"
)

// RemoteError is a failure raised by the remote method and carried
// back in the response. The message is the remote error's verbatim
// text; matching is by class, via errors.Is(err, &RemoteError{}).
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Is(target error) bool {
	_, ok := target.(*RemoteError)
	return ok
}

// Call0 invokes a parameterless method through the invoker.
func Call0[R any](ctx context.Context, invoker *Invoker, method string) (R, error) {
	return call[R](ctx, invoker, method, nil, nil)
}

// Call1 invokes a one-parameter method through the invoker. The type
// parameters must repeat the declaration exactly: the descriptors they
// produce are the wire-side signature.
func Call1[A, R any](ctx context.Context, invoker *Invoker, method string, a A) (R, error) {
	return call[R](ctx, invoker, method,
		[]string{descriptorFor[A]()}, []any{a})
}

func Call2[A, B, R any](ctx context.Context, invoker *Invoker, method string, a A, b B) (R, error) {
	return call[R](ctx, invoker, method,
		[]string{descriptorFor[A](), descriptorFor[B]()}, []any{a, b})
}

func Call3[A, B, C, R any](ctx context.Context, invoker *Invoker, method string, a A, b B, c C) (R, error) {
	return call[R](ctx, invoker, method,
		[]string{descriptorFor[A](), descriptorFor[B](), descriptorFor[C]()}, []any{a, b, c})
}

func call[R any](ctx context.Context, invoker *Invoker, method string,
	paramTypes []string, args []any) (R, error) {
	var zero R
	sig := signature(method, paramTypes)
	spec, ok := invoker.iface.lookup(sig)
	if !ok {
		return zero, errs.MethodNotDeclared(invoker.iface.Name(), sig)
	}
	resultType := descriptorFor[R]()
	if spec.ResultType != resultType {
		return zero, errs.ResultTypeMismatch(sig, spec.ResultType, resultType)
	}
	req, err := invoker.buildRequest(spec, args)
	if err != nil {
		return zero, err
	}
	resp, err := invoker.Invoke(ctx, req)
	if err != nil {
		return zero, err
	}
	if len(resp.Error) > 0 {
		return zero, &RemoteError{Method: method, Message: string(resp.Error)}
	}
	if len(resp.Data) == 0 {
		return zero, nil
	}
	data, err := invoker.compressor.Uncompress(resp.Data)
	if err != nil {
		return zero, err
	}
	var result R
	if err = invoker.serializer.Decode(data, &result); err != nil {
		return zero, err
	}
	return result, nil
}

// buildRequest serializes the arguments and assembles a ready-to-send
// request, lengths included.
func (c *Invoker) buildRequest(spec MethodSpec, args []any) (*message.Request, error) {
	encoded := make([][]byte, 0, len(args))
	for _, arg := range args {
		data, err := c.serializer.Encode(arg)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, data)
	}
	body, err := c.compressor.Compress(message.EncodeArgs(encoded))
	if err != nil {
		return nil, err
	}
	req := &message.Request{
		MessageId:  atomic.AddUint32(&messageId, +1),
		Version:    message.CurrentVersion,
		Compresser: c.compressor.Code(),
		Serializer: c.serializer.Code(),
		MethodName: spec.Name,
		ParamTypes: spec.ParamTypes,
		Data:       body,
	}
	req.CalculateHeaderLength()
	req.CalculateBodyLength()
	return req, nil
}

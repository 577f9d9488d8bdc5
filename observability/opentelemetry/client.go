package opentelemetry

import (
	"context"
	"fmt"
	"simplerpc"
	"simplerpc/message"
	"simplerpc/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "simplerpc/observability/opentelemetry"

// ClientInterceptorBuilder builds an invoker-side interceptor that
// opens one client span per call. The wire format has no metadata
// slot, so spans are not propagated to the server; the two sides are
// correlated by time and method name only.
type ClientInterceptorBuilder struct {
	port   int
	tracer trace.Tracer
}

func NewClientInterceptorBuilder(port int, tracer trace.Tracer) *ClientInterceptorBuilder {
	return &ClientInterceptorBuilder{port: port, tracer: tracer}
}

func (b *ClientInterceptorBuilder) Build() simplerpc.Interceptor {
	if b.tracer == nil {
		b.tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	address := observability.GetOutboundIP()
	if b.port != 0 {
		address = fmt.Sprintf("%s:%d", address, b.port)
	}
	attrs := []attribute.KeyValue{
		attribute.String("rpc.system", "simplerpc"),
		attribute.String("rpc.component", "client"),
		attribute.String("address", address),
	}
	return func(next simplerpc.Handler) simplerpc.Handler {
		return func(ctx context.Context, req *message.Request) (resp *message.Response, err error) {
			ctx, span := b.tracer.Start(ctx, req.MethodName,
				trace.WithAttributes(attrs...),
				trace.WithSpanKind(trace.SpanKindClient))
			defer func() {
				if err != nil {
					span.SetStatus(codes.Error, "client failed")
					span.RecordError(err)
				} else {
					span.SetStatus(codes.Ok, "OK")
				}
				span.End()
			}()
			resp, err = next(ctx, req)
			return
		}
	}
}

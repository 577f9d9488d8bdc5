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

// ServerInterceptorBuilder builds an exporter-side interceptor that
// opens one server span per dispatched call.
type ServerInterceptorBuilder struct {
	port   int
	tracer trace.Tracer
}

func NewServerInterceptorBuilder(port int, tracer trace.Tracer) *ServerInterceptorBuilder {
	return &ServerInterceptorBuilder{port: port, tracer: tracer}
}

func (b *ServerInterceptorBuilder) Build() simplerpc.Interceptor {
	if b.tracer == nil {
		b.tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	address := observability.GetOutboundIP()
	if b.port != 0 {
		address = fmt.Sprintf("%s:%d", address, b.port)
	}
	return func(next simplerpc.Handler) simplerpc.Handler {
		return func(ctx context.Context, req *message.Request) (resp *message.Response, err error) {
			ctx, span := b.tracer.Start(ctx, req.MethodName,
				trace.WithSpanKind(trace.SpanKindServer))
			span.SetAttributes(attribute.String("address", address))
			defer func() {
				if err != nil {
					span.SetStatus(codes.Error, "server failed")
					span.RecordError(err)
				}
				span.End()
			}()
			resp, err = next(ctx, req)
			return
		}
	}
}

package prometheus

import (
	"context"
	"errors"
	"simplerpc/message"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerInterceptorBuilder(t *testing.T) {
	builder := &ServerInterceptorBuilder{
		Namespace: "simplerpc",
		Subsystem: "test",
		Name:      "interceptor",
		Help:      "interceptor test metrics",
	}
	interceptor := builder.Build()

	req := &message.Request{MethodName: "Hello"}
	wantResp := &message.Response{Data: []byte(`"Hello, World"`)}
	handler := interceptor(func(ctx context.Context, r *message.Request) (*message.Response, error) {
		assert.Same(t, req, r)
		return wantResp, nil
	})

	resp, err := handler(context.Background(), req)
	require.NoError(t, err)
	// observation must never alter the exchange
	assert.Same(t, wantResp, resp)

	failing := interceptor(func(ctx context.Context, r *message.Request) (*message.Response, error) {
		return nil, errors.New("dropped")
	})
	_, err = failing(context.Background(), req)
	assert.Error(t, err)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["simplerpc_test_interceptor_response"])
	assert.True(t, names["simplerpc_test_interceptor_error_cnt"])
	assert.True(t, names["simplerpc_test_interceptor_active_req_cnt"])
}

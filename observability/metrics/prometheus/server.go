package prometheus

import (
	"context"
	"simplerpc"
	"simplerpc/message"
	"simplerpc/observability"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ServerInterceptorBuilder builds a server-side interceptor that
// tracks active requests, failures and response time per method.
type ServerInterceptorBuilder struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string

	// Port distinguishes several exporters inside one process; left
	// empty, the address label is the bare outbound IP.
	Port string
}

func (b *ServerInterceptorBuilder) Build() simplerpc.Interceptor {
	address := observability.GetOutboundIP()
	if b.Port != "" {
		address = address + ":" + b.Port
	}
	summaryVec := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      b.Name + "_response",
		Help:      b.Help,
		ConstLabels: map[string]string{
			"address": address,
			"kind":    "server",
		},
		Objectives: map[float64]float64{
			0.5:   0.01,
			0.75:  0.01,
			0.9:   0.01,
			0.99:  0.001,
			0.999: 0.0001,
		},
	}, []string{"method"})

	errCntVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      b.Name + "_error_cnt",
		Help:      b.Help,
		ConstLabels: map[string]string{
			"address": address,
			"kind":    "server",
		},
	}, []string{"method"})

	activeReqVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      b.Name + "_active_req_cnt",
		Help:      b.Help,
		ConstLabels: map[string]string{
			"address": address,
			"kind":    "server",
		},
	}, []string{"method"})
	prometheus.MustRegister(summaryVec, errCntVec, activeReqVec)
	return func(next simplerpc.Handler) simplerpc.Handler {
		return func(ctx context.Context, req *message.Request) (resp *message.Response, err error) {
			method := req.MethodName
			activeReq := activeReqVec.WithLabelValues(method)
			activeReq.Add(1)
			startTime := time.Now()
			defer func() {
				activeReq.Sub(1)
				// a dropped request and a failure carried in the
				// response head both count as errors
				if err != nil || (resp != nil && len(resp.Error) > 0) {
					errCntVec.WithLabelValues(method).Add(1)
				}
				duration := float64(time.Since(startTime).Milliseconds())
				summaryVec.WithLabelValues(method).Observe(duration)
			}()
			resp, err = next(ctx, req)
			return
		}
	}
}

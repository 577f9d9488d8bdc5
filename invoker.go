package simplerpc

import (
	"context"
	"net"
	"simplerpc/compress"
	"simplerpc/internal/errs"
	"simplerpc/message"
	"simplerpc/serialize"
	"simplerpc/serialize/json"
	"strconv"

	"github.com/gotomicro/ekit/bean/option"
	"go.uber.org/zap"
)

var _ Proxy = (*Invoker)(nil)

// messageId
var messageId uint32 = 0

// Invoker is the stub side of the framework: it holds the declared
// interface and the wire settings, and moves one request and one
// response over a fresh connection per call. Typed stubs forward to
// it through the Call helpers.
type Invoker struct {
	iface      *Interface
	addr       string
	serializer serialize.Serializer
	compressor compress.Compressor

	interceptors []Interceptor
	// send is the interceptor chain around the raw exchange, built
	// once by Refer.
	send   Handler
	logger *zap.Logger
}

// Refer validates the target and returns an Invoker bound to
// host:port. No connection is made until the first call.
func Refer(iface *Interface, host string, port int, opts ...option.Option[Invoker]) (*Invoker, error) {
	if iface == nil {
		return nil, errs.NilInterfaceError
	}
	if iface.NumMethods() == 0 {
		return nil, errs.NoMethodsError
	}
	if host == "" {
		return nil, errs.EmptyHostError
	}
	if port < 1 || port > 65535 {
		return nil, errs.InvalidPort(port)
	}
	invoker := &Invoker{
		iface:      iface,
		addr:       net.JoinHostPort(host, strconv.Itoa(port)),
		serializer: json.Serializer{},
		// saves a nil check on every call
		compressor: compress.DoNothingCompressor{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(invoker)
	}
	invoker.send = chainInterceptors(invoker.exchange, invoker.interceptors)
	return invoker, nil
}

// InvokerWithSerializer -> option
func InvokerWithSerializer(s serialize.Serializer) option.Option[Invoker] {
	return func(invoker *Invoker) {
		invoker.serializer = s
	}
}

// InvokerWithCompressor -> option
func InvokerWithCompressor(c compress.Compressor) option.Option[Invoker] {
	return func(invoker *Invoker) {
		invoker.compressor = c
	}
}

// InvokerWithLogger -> option
func InvokerWithLogger(logger *zap.Logger) option.Option[Invoker] {
	return func(invoker *Invoker) {
		invoker.logger = logger
	}
}

// InvokerWithInterceptor -> option
func InvokerWithInterceptor(ins ...Interceptor) option.Option[Invoker] {
	return func(invoker *Invoker) {
		invoker.interceptors = append(invoker.interceptors, ins...)
	}
}

// Invoke sends one request and blocks until its response is read. A
// connect failure fails this call only; the Invoker stays usable.
func (c *Invoker) Invoke(ctx context.Context, request *message.Request) (*message.Response, error) {
	return c.send(ctx, request)
}

// exchange is the raw two-message conversation: dial, write, read,
// close. Fully synchronous, no retry, no timeout; a hung server
// blocks the caller.
func (c *Invoker) exchange(_ context.Context, request *message.Request) (*message.Response, error) {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		c.logger.Debug("simplerpc: dial failed", zap.String("addr", c.addr), zap.Error(err))
		return nil, errs.ConnectFailed(c.addr, err)
	}
	defer func() {
		_ = conn.Close()
	}()
	if _, err = conn.Write(message.EncodeReq(request)); err != nil {
		return nil, errs.SendReqFailed(err)
	}
	bs, err := ReadMsg(conn)
	if err != nil {
		// a stream the server severed without answering lands here
		return nil, errs.ReadRespFailed(err)
	}
	resp, err := message.DecodeResp(bs)
	if err != nil {
		return nil, errs.ReadRespFailed(err)
	}
	if resp.MessageId != request.MessageId {
		return nil, errs.StrayResponseError
	}
	return resp, nil
}

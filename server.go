package simplerpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"simplerpc/compress"
	"simplerpc/internal/errs"
	"simplerpc/message"
	"simplerpc/serialize"
	"simplerpc/serialize/json"
	"strconv"

	"go.uber.org/zap"
)

type ServerOption func(server *Server)

// Server is the exporter: it binds one port, serves one Service and
// answers exactly one call per accepted connection.
type Server struct {
	listener     net.Listener
	service      *Service
	serializers  []serialize.Serializer
	compressors  []compress.Compressor
	interceptors []Interceptor
	// dispatch is the interceptor chain around invoke, built once
	// when Export starts.
	dispatch Handler
	logger   *zap.Logger
}

// NewServer instance
func NewServer(opts ...ServerOption) *Server {
	res := &Server{
		// a byte indexes at most 256 implementations, so a flat
		// array beats a map here
		serializers: make([]serialize.Serializer, 256),
		compressors: make([]compress.Compressor, 256),
		logger:      zap.NewNop(),
	}
	res.RegisterSerializer(json.Serializer{})
	res.RegisterCompressor(compress.DoNothingCompressor{})
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// ServerWithLogger -> option
func ServerWithLogger(logger *zap.Logger) ServerOption {
	return func(server *Server) {
		server.logger = logger
	}
}

// ServerWithInterceptor -> option
func ServerWithInterceptor(ins ...Interceptor) ServerOption {
	return func(server *Server) {
		server.interceptors = append(server.interceptors, ins...)
	}
}

// RegisterSerializer -> register serializer
func (s *Server) RegisterSerializer(serializer serialize.Serializer) {
	s.serializers[serializer.Code()] = serializer
}

// RegisterCompressor -> register compressor
func (s *Server) RegisterCompressor(compressor compress.Compressor) {
	s.compressors[compressor.Code()] = compressor
}

// Close -> close net.Listener
func (s *Server) Close() error {
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Export binds the service on the port and serves until Close. It
// does not return under normal operation.
func Export(service *Service, port int, opts ...ServerOption) error {
	return NewServer(opts...).Export(service, port)
}

// Export -> run server
func (s *Server) Export(service *Service, port int) error {
	if service == nil {
		return errs.NilServiceError
	}
	if service.NumMethods() == 0 {
		return errs.NoMethodsError
	}
	if port < 1 || port > 65535 {
		return errs.InvalidPort(port)
	}
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return errs.BindFailed(port, err)
	}
	s.listener = listener
	s.service = service
	s.dispatch = chainInterceptors(s.invoke, s.interceptors)
	for {
		conn, err := listener.Accept()
		// closed
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		if err != nil {
			s.logger.Error("simplerpc: accept connection failed", zap.Error(err))
			continue
		}
		go s.serveConn(conn)
	}
}

// serveConn handles the full lifecycle of one accepted connection:
// one request, one response, close. Any failure before the handler
// runs closes the connection without a response; the client sees a
// severed stream, never a structured error.
func (s *Server) serveConn(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()
	bs, err := ReadMsg(conn)
	if err != nil {
		s.logger.Warn("simplerpc: reading request failed", zap.Error(err))
		return
	}
	req, err := message.DecodeReq(bs)
	if err != nil {
		s.logger.Warn("simplerpc: malformed request", zap.Error(err))
		return
	}
	resp, err := s.dispatch(context.Background(), req)
	if err != nil {
		s.logger.Warn("simplerpc: dropping request",
			zap.String("method", req.MethodName), zap.Error(err))
		return
	}
	resp.CalculateHeaderLength()
	resp.CalculateBodyLength()
	if _, err = conn.Write(message.EncodeResp(resp)); err != nil {
		s.logger.Error("simplerpc: sending response failed",
			zap.String("method", req.MethodName), zap.Error(err))
	}
}

// invoke resolves and runs the target method. A handler failure is a
// valid outcome and rides back inside the response; everything before
// the handler runs is a decode-level error and yields no response.
func (s *Server) invoke(ctx context.Context, req *message.Request) (*message.Response, error) {
	serializer := s.serializers[req.Serializer]
	if serializer == nil {
		return nil, errs.UnknownSerializer(req.Serializer)
	}
	compressor := s.compressors[req.Compresser]
	if compressor == nil {
		return nil, errs.UnknownCompressor(req.Compresser)
	}
	m, ok := s.service.resolve(req.MethodName, req.ParamTypes)
	if !ok {
		// deliberately no response: the original design never
		// answers an unresolvable call
		return nil, errs.MethodNotFound(signature(req.MethodName, req.ParamTypes))
	}
	body, err := compressor.Uncompress(req.Data)
	if err != nil {
		return nil, err
	}
	args, err := message.DecodeArgs(body)
	if err != nil {
		return nil, err
	}
	if len(args) != len(m.spec.ParamTypes) {
		return nil, errs.BadArgumentCount(m.spec.Signature(), len(args))
	}
	resp := &message.Response{
		MessageId:  req.MessageId,
		Version:    message.CurrentVersion,
		Compresser: req.Compresser,
		Serializer: req.Serializer,
	}
	result, err := s.call(ctx, m, serializer, args)
	if err != nil {
		// an undecodable argument is a protocol failure, not an
		// invocation failure; it gets no response
		if errors.Is(err, errs.MalformedMessageError) {
			return nil, err
		}
		resp.Error = []byte(err.Error())
		return resp, nil
	}
	data, err := serializer.Encode(result)
	if err != nil {
		resp.Error = []byte(err.Error())
		return resp, nil
	}
	data, err = compressor.Compress(data)
	if err != nil {
		resp.Error = []byte(err.Error())
		return resp, nil
	}
	resp.Data = data
	return resp, nil
}

// call runs the handler with a recover so a panicking handler takes
// down its own call, not the whole process.
func (s *Server) call(ctx context.Context, m method, serializer serialize.Serializer,
	args [][]byte) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("simplerpc: handler panicked",
				zap.String("method", m.spec.Name), zap.Any("panic", r))
			err = fmt.Errorf("simplerpc: %s panicked: %v", m.spec.Name, r)
		}
	}()
	return m.fn(ctx, serializer, args)
}

package simplerpc

import (
	"context"
	"errors"
	"io"
	"net"
	"simplerpc/compress"
	"simplerpc/compress/gzip"
	"simplerpc/internal/errs"
	"simplerpc/message"
	"simplerpc/serialize/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestServer_serveConn(t *testing.T) {
	testServerServeConn(t, compress.DoNothingCompressor{})
	testServerServeConn(t, gzip.GzipCompressor{})
}

func testServerServeConn(t *testing.T, c compress.Compressor) {
	testCases := []struct {
		name string
		conn *mockConn

		wantData  []byte
		wantError []byte
		// a dropped request writes nothing back at all
		wantSilence bool
	}{
		{
			name: "hello",
			conn: &mockConn{
				readData: newRequestBytes(t, c, "Hello", []string{"string"}, "World"),
			},
			wantData: []byte(`"Hello, World"`),
		},
		{
			name: "hello empty name",
			conn: &mockConn{
				readData: newRequestBytes(t, c, "Hello", []string{"string"}, ""),
			},
			wantData: []byte(`"Hello, "`),
		},
		{
			name: "handler failure travels back",
			conn: &mockConn{
				readData: newRequestBytes(t, c, "Fail", []string{"string"}, "boom"),
			},
			wantError: []byte("something went wrong"),
		},
		{
			name: "handler panic becomes failure",
			conn: &mockConn{
				readData: newRequestBytes(t, c, "Panic", []string{"string"}, "x"),
			},
			wantError: []byte("simplerpc: Panic panicked: kaboom"),
		},
		{
			name: "unknown method",
			conn: &mockConn{
				readData: newRequestBytes(t, c, "NoSuchMethod", []string{"string"}, "x"),
			},
			wantSilence: true,
		},
		{
			name: "signature mismatch",
			conn: &mockConn{
				readData: newRequestBytes(t, c, "Hello", []string{"int64"}, "x"),
			},
			wantSilence: true,
		},
		{
			name: "truncated frame",
			conn: &mockConn{
				readData: newRequestBytes(t, c, "Hello", []string{"string"}, "World")[:10],
			},
			wantSilence: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, greetService())
			server.RegisterCompressor(c)
			server.serveConn(tc.conn)
			if tc.wantSilence {
				assert.Empty(t, tc.conn.writeData)
				return
			}
			require.NotEmpty(t, tc.conn.writeData)
			resp, err := message.DecodeResp(tc.conn.writeData)
			require.NoError(t, err)
			assert.Equal(t, tc.wantError, resp.Error)
			if tc.wantData != nil {
				data, er := c.Uncompress(resp.Data)
				require.NoError(t, er)
				assert.Equal(t, tc.wantData, data)
			}
		})
	}
}

func TestServer_serveConn_unknownCodes(t *testing.T) {
	testCases := []struct {
		name   string
		mangle func(req *message.Request)
	}{
		{
			name: "unknown serializer",
			mangle: func(req *message.Request) {
				req.Serializer = 77
			},
		},
		{
			name: "unknown compressor",
			mangle: func(req *message.Request) {
				req.Compresser = 77
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			serializer := json.Serializer{}
			arg, err := serializer.Encode("World")
			require.NoError(t, err)
			req := &message.Request{
				MessageId:  7,
				Version:    message.CurrentVersion,
				Serializer: serializer.Code(),
				MethodName: "Hello",
				ParamTypes: []string{"string"},
				Data:       message.EncodeArgs([][]byte{arg}),
			}
			tc.mangle(req)
			req.CalculateHeaderLength()
			req.CalculateBodyLength()
			conn := &mockConn{readData: message.EncodeReq(req)}
			server := newTestServer(t, greetService())
			server.serveConn(conn)
			assert.Empty(t, conn.writeData)
		})
	}
}

func TestServer_serveConn_undecodableArgument(t *testing.T) {
	req := &message.Request{
		MessageId:  3,
		Version:    message.CurrentVersion,
		Serializer: 1,
		MethodName: "Hello",
		ParamTypes: []string{"string"},
		Data:       message.EncodeArgs([][]byte{[]byte("{not json")}),
	}
	req.CalculateHeaderLength()
	req.CalculateBodyLength()
	conn := &mockConn{readData: message.EncodeReq(req)}
	server := newTestServer(t, greetService())
	server.serveConn(conn)
	// a protocol-level failure never produces a response
	assert.Empty(t, conn.writeData)
}

func TestServer_Export_validation(t *testing.T) {
	testCases := []struct {
		name    string
		service *Service
		port    int
		wantErr error
	}{
		{
			name:    "nil service",
			service: nil,
			port:    1234,
			wantErr: errs.NilServiceError,
		},
		{
			name:    "service without methods",
			service: NewService("empty"),
			port:    1234,
			wantErr: errs.NoMethodsError,
		},
		{
			name:    "port too small",
			service: greetService(),
			port:    0,
			wantErr: errs.InvalidPortError,
		},
		{
			name:    "port too large",
			service: greetService(),
			port:    70000,
			wantErr: errs.InvalidPortError,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewServer().Export(tc.service, tc.port)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestServer_interceptors(t *testing.T) {
	var order []string
	trace := func(name string) Interceptor {
		return func(next Handler) Handler {
			return func(ctx context.Context, req *message.Request) (*message.Response, error) {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}
	conn := &mockConn{
		readData: newRequestBytes(t, compress.DoNothingCompressor{}, "Hello", []string{"string"}, "World"),
	}
	server := newTestServer(t, greetService(), ServerWithInterceptor(trace("outer"), trace("inner")))
	server.serveConn(conn)
	assert.Equal(t, []string{"outer", "inner"}, order)
	require.NotEmpty(t, conn.writeData)
}

func greetService() *Service {
	svc := NewService("greeter")
	Handle1(svc, "Hello", func(ctx context.Context, name string) (string, error) {
		return "Hello, " + name, nil
	})
	Handle1(svc, "Fail", func(ctx context.Context, name string) (string, error) {
		return "", errors.New("something went wrong")
	})
	Handle1(svc, "Panic", func(ctx context.Context, name string) (string, error) {
		panic("kaboom")
	})
	return svc
}

func newTestServer(t *testing.T, svc *Service, opts ...ServerOption) *Server {
	opts = append(opts, ServerWithLogger(zaptest.NewLogger(t)))
	server := NewServer(opts...)
	server.service = svc
	server.dispatch = chainInterceptors(server.invoke, server.interceptors)
	return server
}

func newRequestBytes(t *testing.T, c compress.Compressor, method string,
	paramTypes []string, arg any) []byte {
	serializer := json.Serializer{}
	data, err := serializer.Encode(arg)
	require.NoError(t, err)
	body, err := c.Compress(message.EncodeArgs([][]byte{data}))
	require.NoError(t, err)
	req := &message.Request{
		MessageId:  1,
		Version:    message.CurrentVersion,
		Compresser: c.Code(),
		Serializer: serializer.Code(),
		MethodName: method,
		ParamTypes: paramTypes,
		Data:       body,
	}
	req.CalculateHeaderLength()
	req.CalculateBodyLength()
	return message.EncodeReq(req)
}

type mockConn struct {
	net.Conn
	readData  []byte
	readIndex int
	readErr   error

	writeData []byte
	writeErr  error
	closed    bool
}

func (m *mockConn) Read(bs []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.readIndex >= len(m.readData) {
		return 0, io.EOF
	}
	n := copy(bs, m.readData[m.readIndex:])
	m.readIndex += n
	return n, nil
}

func (m *mockConn) Write(bs []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writeData = append(m.writeData, bs...)
	return len(bs), nil
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

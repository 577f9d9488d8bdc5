package message

import (
	"simplerpc/internal/errs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeReq(t *testing.T) {
	testCases := []struct {
		name string
		req  *Request
	}{
		{
			name: "single argument",
			req: &Request{
				MessageId:  7,
				Version:    CurrentVersion,
				Serializer: 1,
				MethodName: "Hello",
				ParamTypes: []string{"string"},
				Data:       EncodeArgs([][]byte{[]byte(`"World"`)}),
			},
		},
		{
			name: "several arguments",
			req: &Request{
				MessageId:  8,
				Version:    CurrentVersion,
				Compresser: 1,
				Serializer: 2,
				MethodName: "Add",
				ParamTypes: []string{"int64", "int64"},
				Data:       EncodeArgs([][]byte{[]byte("2"), []byte("40")}),
			},
		},
		{
			name: "no arguments no body",
			req: &Request{
				MessageId:  9,
				Version:    CurrentVersion,
				Serializer: 1,
				MethodName: "Version",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.CalculateHeaderLength()
			tc.req.CalculateBodyLength()
			decoded, err := DecodeReq(EncodeReq(tc.req))
			require.NoError(t, err)
			assert.Equal(t, tc.req, decoded)
		})
	}
}

func TestDecodeReq_malformed(t *testing.T) {
	valid := &Request{
		MessageId:  1,
		Version:    CurrentVersion,
		Serializer: 1,
		MethodName: "Hello",
		ParamTypes: []string{"string"},
		Data:       EncodeArgs([][]byte{[]byte(`"x"`)}),
	}
	valid.CalculateHeaderLength()
	valid.CalculateBodyLength()
	encoded := EncodeReq(valid)

	testCases := []struct {
		name    string
		bs      []byte
		wantErr error
	}{
		{
			name:    "shorter than the fixed head",
			bs:      encoded[:10],
			wantErr: errs.MalformedMessageError,
		},
		{
			name: "wrong version",
			bs: func() []byte {
				bs := append([]byte(nil), encoded...)
				bs[12] = CurrentVersion + 1
				return bs
			}(),
			wantErr: errs.VersionMismatchError,
		},
		{
			name: "head length beyond the frame",
			bs: func() []byte {
				bs := append([]byte(nil), encoded...)
				bs[0] = 0xff
				return bs
			}(),
			wantErr: errs.MalformedMessageError,
		},
		{
			name: "body length disagrees with the frame",
			bs: func() []byte {
				bs := append([]byte(nil), encoded...)
				bs[7] = bs[7] + 1
				return bs
			}(),
			wantErr: errs.MalformedMessageError,
		},
		{
			name: "head without a name terminator",
			bs: func() []byte {
				req := &Request{
					MessageId:  1,
					Version:    CurrentVersion,
					MethodName: "Hello",
				}
				req.CalculateHeaderLength()
				bs := EncodeReq(req)
				// overwrite the splitter that closes the name
				bs[len(bs)-1] = 'x'
				return bs
			}(),
			wantErr: errs.MalformedMessageError,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeReq(tc.bs)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

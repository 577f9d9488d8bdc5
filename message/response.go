package message

import (
	"encoding/binary"
	"simplerpc/internal/errs"
)

// Response is the server-to-client message. Error carries the failure
// raised by the handler; it shares the head because the head length
// alone separates it from the body.
type Response struct {
	HeadLength uint32
	BodyLength uint32
	MessageId  uint32
	Version    uint8
	Compresser uint8
	Serializer uint8

	Error []byte

	// Data -> response body, the serialized and compressed result
	Data []byte
}

// EncodeResp writes the full frame. Lengths must have been calculated.
func EncodeResp(resp *Response) []byte {
	bs := make([]byte, resp.HeadLength+resp.BodyLength)
	binary.BigEndian.PutUint32(bs[:4], resp.HeadLength)
	binary.BigEndian.PutUint32(bs[4:8], resp.BodyLength)
	binary.BigEndian.PutUint32(bs[8:12], resp.MessageId)
	bs[12] = resp.Version
	bs[13] = resp.Compresser
	bs[14] = resp.Serializer

	cur := bs[fixedHeadLength:]
	copy(cur, resp.Error)
	cur = cur[len(resp.Error):]
	copy(cur, resp.Data)
	return bs
}

func DecodeResp(bs []byte) (*Response, error) {
	if len(bs) < fixedHeadLength {
		return nil, errs.MalformedMessageError
	}
	resp := &Response{}
	resp.HeadLength = binary.BigEndian.Uint32(bs[:4])
	resp.BodyLength = binary.BigEndian.Uint32(bs[4:8])
	resp.MessageId = binary.BigEndian.Uint32(bs[8:12])
	resp.Version = bs[12]
	resp.Compresser = bs[13]
	resp.Serializer = bs[14]
	if resp.Version != CurrentVersion {
		return nil, errs.VersionMismatchError
	}
	if resp.HeadLength < fixedHeadLength || uint64(resp.HeadLength) > uint64(len(bs)) {
		return nil, errs.MalformedMessageError
	}
	if uint64(resp.BodyLength) != uint64(len(bs))-uint64(resp.HeadLength) {
		return nil, errs.MalformedMessageError
	}
	if resp.HeadLength > fixedHeadLength {
		resp.Error = bs[fixedHeadLength:resp.HeadLength]
	}
	if resp.BodyLength != 0 {
		resp.Data = bs[resp.HeadLength:]
	}
	return resp, nil
}

func (resp *Response) CalculateHeaderLength() {
	resp.HeadLength = fixedHeadLength + uint32(len(resp.Error))
}

func (resp *Response) CalculateBodyLength() {
	resp.BodyLength = uint32(len(resp.Data))
}

package message

import (
	"bytes"
	"encoding/binary"
	"simplerpc/internal/errs"
)

// CurrentVersion is stamped into every message this build produces.
// Decoding rejects anything else.
const CurrentVersion uint8 = 1

const (
	splitter = '\n'
	// fixed section: HeadLength, BodyLength, MessageId, Version,
	// Compresser, Serializer
	fixedHeadLength = 15
)

// Request is the client-to-server message. The head carries the
// routing data, the body the serialized and compressed arguments.
type Request struct {
	// HeadLength counts from the start of the frame, fixed section
	// included.
	HeadLength uint32
	BodyLength uint32
	MessageId  uint32
	Version    uint8
	Compresser uint8
	Serializer uint8

	// MethodName plus the ordered parameter descriptors identify the
	// target method exactly.
	MethodName string
	ParamTypes []string

	// Data -> request body, already packed and compressed
	Data []byte
}

// EncodeReq writes the full frame. Lengths must have been calculated.
func EncodeReq(req *Request) []byte {
	bs := make([]byte, req.HeadLength+req.BodyLength)
	binary.BigEndian.PutUint32(bs[:4], req.HeadLength)
	binary.BigEndian.PutUint32(bs[4:8], req.BodyLength)
	binary.BigEndian.PutUint32(bs[8:12], req.MessageId)
	bs[12] = req.Version
	bs[13] = req.Compresser
	bs[14] = req.Serializer

	cur := bs[fixedHeadLength:]
	copy(cur, req.MethodName)
	cur = cur[len(req.MethodName):]
	cur[0] = splitter
	cur = cur[1:]
	for _, pt := range req.ParamTypes {
		copy(cur, pt)
		cur = cur[len(pt):]
		cur[0] = splitter
		cur = cur[1:]
	}
	copy(cur, req.Data)
	return bs
}

func DecodeReq(bs []byte) (*Request, error) {
	if len(bs) < fixedHeadLength {
		return nil, errs.MalformedMessageError
	}
	req := &Request{}
	req.HeadLength = binary.BigEndian.Uint32(bs[:4])
	req.BodyLength = binary.BigEndian.Uint32(bs[4:8])
	req.MessageId = binary.BigEndian.Uint32(bs[8:12])
	req.Version = bs[12]
	req.Compresser = bs[13]
	req.Serializer = bs[14]
	if req.Version != CurrentVersion {
		return nil, errs.VersionMismatchError
	}
	// the method name token makes the head at least one byte longer
	// than the fixed section
	if req.HeadLength <= fixedHeadLength || uint64(req.HeadLength) > uint64(len(bs)) {
		return nil, errs.MalformedMessageError
	}
	if uint64(req.BodyLength) != uint64(len(bs))-uint64(req.HeadLength) {
		return nil, errs.MalformedMessageError
	}

	header := bs[fixedHeadLength:req.HeadLength]
	index := bytes.IndexByte(header, splitter)
	if index < 0 {
		return nil, errs.MalformedMessageError
	}
	req.MethodName = string(header[:index])
	header = header[index+1:]
	for len(header) > 0 {
		index = bytes.IndexByte(header, splitter)
		if index < 0 {
			return nil, errs.MalformedMessageError
		}
		req.ParamTypes = append(req.ParamTypes, string(header[:index]))
		header = header[index+1:]
	}
	if req.BodyLength != 0 {
		req.Data = bs[req.HeadLength:]
	}
	return req, nil
}

func (req *Request) CalculateHeaderLength() {
	// every token, method name included, is closed by a splitter
	headLength := fixedHeadLength + len(req.MethodName) + 1
	for _, pt := range req.ParamTypes {
		headLength += len(pt) + 1
	}
	req.HeadLength = uint32(headLength)
}

func (req *Request) CalculateBodyLength() {
	req.BodyLength = uint32(len(req.Data))
}

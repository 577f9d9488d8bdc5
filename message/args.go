package message

import (
	"encoding/binary"
	"simplerpc/internal/errs"
)

// EncodeArgs packs serialized argument values into one body: each
// value is preceded by its length in four bytes. The pack runs through
// the compressor as a whole, so individual values never are.
func EncodeArgs(args [][]byte) []byte {
	size := 0
	for _, arg := range args {
		size += 4 + len(arg)
	}
	bs := make([]byte, size)
	cur := bs
	for _, arg := range args {
		binary.BigEndian.PutUint32(cur[:4], uint32(len(arg)))
		copy(cur[4:], arg)
		cur = cur[4+len(arg):]
	}
	return bs
}

func DecodeArgs(data []byte) ([][]byte, error) {
	var args [][]byte
	for len(data) > 0 {
		if len(data) < 4 {
			return nil, errs.MalformedMessageError
		}
		n := binary.BigEndian.Uint32(data[:4])
		data = data[4:]
		if uint64(n) > uint64(len(data)) {
			return nil, errs.MalformedMessageError
		}
		args = append(args, data[:n])
		data = data[n:]
	}
	return args, nil
}

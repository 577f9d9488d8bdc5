package simplerpc

import (
	"encoding/binary"
	"io"
	"net"
	"simplerpc/internal/errs"
)

const lenBytes = 8

// maxMessageBytes caps head plus body so a corrupt or hostile length
// field cannot make ReadMsg allocate unbounded memory.
const maxMessageBytes = 64 << 20

// ReadMsg reads one full frame. The first eight bytes carry the head
// and body lengths; the head length counts from the start of the
// frame, so the length bytes themselves are part of the head.
func ReadMsg(conn net.Conn) ([]byte, error) {
	lenBs := make([]byte, lenBytes)
	if _, err := io.ReadFull(conn, lenBs); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, errs.ReadLenDataError
		}
		return nil, err
	}
	headLength := binary.BigEndian.Uint32(lenBs[:4])
	bodyLength := binary.BigEndian.Uint32(lenBs[4:8])
	if headLength < lenBytes {
		return nil, errs.MalformedMessageError
	}
	total := uint64(headLength) + uint64(bodyLength)
	if total > maxMessageBytes {
		return nil, errs.OversizeMessageError
	}
	bs := make([]byte, total)
	copy(bs[:lenBytes], lenBs)
	if _, err := io.ReadFull(conn, bs[lenBytes:]); err != nil {
		return nil, err
	}
	return bs, nil
}

package zlib

import (
	"bytes"
	"compress/zlib"
	"io"
	"simplerpc/compress"
)

var _ compress.Compressor = ZlibCompressor{}

// ZlibCompressor implements the Compressor interface
type ZlibCompressor struct{}

func (_ ZlibCompressor) Code() byte {
	return 4
}

func (_ ZlibCompressor) Compress(data []byte) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	w := zlib.NewWriter(buf)
	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}
	// Close must run before the buffer is read. Flush alone leaves the
	// final block and checksum unwritten.
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (_ ZlibCompressor) Uncompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()
	res, err := io.ReadAll(r)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return res, nil
}

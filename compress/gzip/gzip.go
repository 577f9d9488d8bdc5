package gzip

import (
	"bytes"
	"compress/gzip"
	"io"
	"simplerpc/compress"
)

var _ compress.Compressor = GzipCompressor{}

// GzipCompressor implements the Compressor interface
type GzipCompressor struct{}

func (_ GzipCompressor) Code() byte {
	return 1
}

func (_ GzipCompressor) Compress(data []byte) ([]byte, error) {
	res := bytes.NewBuffer(nil)
	gw := gzip.NewWriter(res)
	_, err := gw.Write(data)
	if err != nil {
		return nil, err
	}
	// Close must run before the buffer is read. Flush alone leaves the
	// trailing block and footer unwritten.
	if err = gw.Close(); err != nil {
		return nil, err
	}
	return res.Bytes(), nil
}

func (_ GzipCompressor) Uncompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = gr.Close()
	}()
	return io.ReadAll(gr)
}

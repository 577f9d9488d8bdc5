package snappy

import (
	"github.com/golang/snappy"
	"simplerpc/compress"
)

var _ compress.Compressor = SnappyCompressor{}

// SnappyCompressor uses snappy's block format, which records the
// uncompressed length up front and needs no buffer guessing.
type SnappyCompressor struct{}

func (_ SnappyCompressor) Code() byte {
	return 3
}

func (_ SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (_ SnappyCompressor) Uncompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}

package zstd

import (
	"github.com/klauspost/compress/zstd"
	"simplerpc/compress"
)

var _ compress.Compressor = ZstdCompressor{}

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// ZstdCompressor rides on the shared encoder and decoder above;
// EncodeAll and DecodeAll are safe for concurrent use.
type ZstdCompressor struct{}

func (_ ZstdCompressor) Code() byte {
	return 5
}

func (_ ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return encoder.EncodeAll(data, nil), nil
}

func (_ ZstdCompressor) Uncompress(data []byte) ([]byte, error) {
	return decoder.DecodeAll(data, nil)
}

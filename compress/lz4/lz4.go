package lz4

import (
	"github.com/pierrec/lz4/v4"
	"simplerpc/compress"
)

var _ compress.Compressor = Lz4Compressor{}

const maxBlockSize = 64 << 20

// Lz4Compressor compresses in lz4 block mode. The embedded state is
// copied per call by the value receiver, which keeps concurrent calls
// from sharing the hash table.
type Lz4Compressor struct {
	lz4.Compressor
}

func (c Lz4Compressor) Code() byte {
	return 2
}

func (c Lz4Compressor) Compress(data []byte) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := c.CompressBlock(data, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Uncompress guesses the output size and grows it until the block
// fits. Blocks do not record the uncompressed length.
func (c Lz4Compressor) Uncompress(data []byte) ([]byte, error) {
	size := 10 * len(data)
	if size == 0 {
		size = 16
	}
	for {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if size >= maxBlockSize {
			return nil, err
		}
		size *= 2
	}
}

package compress

// Compressor -> body compression algorithm abstract
type Compressor interface {
	Code() byte
	Compress(data []byte) ([]byte, error)
	Uncompress(data []byte) ([]byte, error)
}

// DoNothingCompressor passes the body through untouched. Code zero is
// what an unset compression byte decodes to, so it is the default on
// both sides.
type DoNothingCompressor struct{}

func (_ DoNothingCompressor) Code() byte {
	return 0
}

func (_ DoNothingCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (_ DoNothingCompressor) Uncompress(data []byte) ([]byte, error) {
	return data, nil
}

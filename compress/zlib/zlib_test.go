package zlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZlibCompressor(t *testing.T) {
	c := ZlibCompressor{}
	assert.Equal(t, byte(4), c.Code())

	data := []byte(`{"name":"World","repeat":3}`)
	compressed, err := c.Compress(data)
	require.NoError(t, err)
	uncompressed, err := c.Uncompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, uncompressed)

	_, err = c.Uncompress([]byte("not a zlib stream"))
	assert.Error(t, err)
}

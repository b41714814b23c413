package memory

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Compressor reshapes a payload into a smaller representation and back. The
// manager is agnostic to the codec; implementations are injected via Config.
type Compressor interface {
	Compress([]byte) ([]byte, error)
	Decompress([]byte) ([]byte, error)
	Name() string
}

// Compression level for pooled encoders. Level 3 balances speed and ratio.
const zstdLevel = 3

// encoderPool reuses zstd encoders, which are expensive to construct and
// hold large internal buffers.
var encoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(zstdLevel)))
		if err != nil {
			panic("zstd encoder: " + err.Error())
		}
		return enc
	},
}

// zstdDecoder is shared; DecodeAll with a nil destination is safe for
// concurrent use on one decoder.
var zstdDecoder = func() *zstd.Decoder {
	d, err := zstd.NewReader(nil)
	if err != nil {
		panic("zstd decoder: " + err.Error())
	}
	return d
}()

// ZstdCompressor is the default payload codec.
type ZstdCompressor struct{}

func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	enc := encoderPool.Get().(*zstd.Encoder)
	defer func() {
		enc.Reset(nil)
		encoderPool.Put(enc)
	}()
	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

func (ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return zstdDecoder.DecodeAll(data, nil)
}

func (ZstdCompressor) Name() string { return "zstd" }

// NopCompressor passes payloads through unchanged. Useful in tests and when
// a deployment disables compression by policy.
type NopCompressor struct{}

func (NopCompressor) Compress(data []byte) ([]byte, error) { return data, nil }

func (NopCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

func (NopCompressor) Name() string { return "none" }

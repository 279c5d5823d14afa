package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"refcoco/instances.json", None},
		{"refcoco/instances.json.zst", Zstd},
		{"refcoco/refs(unc).json.gz", Gzip},
		{"refcoco/refs(unc).json.lz4", LZ4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, Detect("x.json"+got.Suffix()))
		})
	}
}

func TestCompressDecompress(t *testing.T) {
	data := bytes.Repeat([]byte(`{"ref_id": 1, "split": "train"},`), 256)

	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			packed, err := Compress(typ, data)
			require.NoError(t, err)
			if typ != None {
				assert.Less(t, len(packed), len(data))
			}

			out, err := Decompress(typ, packed)
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	for _, typ := range []Type{Zstd, Gzip} {
		_, err := Decompress(typ, []byte("definitely not compressed"))
		assert.Error(t, err, typ.String())
	}
}

func TestUnsupportedType(t *testing.T) {
	_, err := Decompress(Type(42), nil)
	assert.Error(t, err)
	_, err = Compress(Type(42), nil)
	assert.Error(t, err)
	assert.Equal(t, "Type(42)", Type(42).String())
}

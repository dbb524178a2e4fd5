package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedText(t *testing.T) {
	t.Run("NotPNG", func(t *testing.T) {
		_, err := embedText([]byte("short"), "k", "v")
		assert.Error(t, err)
	})

	t.Run("TruncatedAfterSignature", func(t *testing.T) {
		data := append([]byte{}, pngSignature...)
		data = append(data, 0, 0, 0, 99, 'I', 'H', 'D', 'R')
		_, err := embedText(data, "k", "v")
		assert.Error(t, err)
	})

	t.Run("ChunkOrderPreserved", func(t *testing.T) {
		out, err := embedText(minimalPNG(), "parameters", "{}")
		require.NoError(t, err)

		chunks, err := TextChunks(out)
		require.NoError(t, err)
		assert.Equal(t, "{}", chunks["parameters"])

		// tEXt sits between IHDR and IEND.
		assert.Equal(t, "tEXt", string(out[8+12+4:8+12+8]))
	})

	t.Run("Latin1ValueUsesTEXt", func(t *testing.T) {
		out, err := embedText(minimalPNG(), "fooocus_scheme", "café")
		require.NoError(t, err)
		assert.Equal(t, "tEXt", string(out[8+12+4:8+12+8]))

		chunks, err := TextChunks(out)
		require.NoError(t, err)
		assert.Equal(t, "café", chunks["fooocus_scheme"])
	})

	t.Run("NonLatin1ValueUsesITXt", func(t *testing.T) {
		out, err := embedText(minimalPNG(), "parameters", `{"prompt":"a cat ☕"}`)
		require.NoError(t, err)
		assert.Equal(t, "iTXt", string(out[8+12+4:8+12+8]))

		chunks, err := TextChunks(out)
		require.NoError(t, err)
		assert.Equal(t, `{"prompt":"a cat ☕"}`, chunks["parameters"])
	})
}

func TestTextChunks_OversizedLength(t *testing.T) {
	// A chunk claiming 2^32-1 payload bytes must be rejected, not sliced.
	data := minimalPNG()
	data = append(data[:8+12], append([]byte{0xFF, 0xFF, 0xFF, 0xFF, 't', 'E', 'X', 't'}, data[8+12:]...)...)

	_, err := TextChunks(data)
	assert.Error(t, err)
}

// minimalPNG builds signature + zero-length IHDR + IEND framing.
func minimalPNG() []byte {
	data := append([]byte{}, pngSignature...)
	data = append(data, 0, 0, 0, 0, 'I', 'H', 'D', 'R', 0, 0, 0, 0)
	data = append(data, 0, 0, 0, 0, 'I', 'E', 'N', 'D', 0, 0, 0, 0)
	return data
}

package ingest

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitedReader(t *testing.T) {
	tests := []struct {
		summary  string
		contents string
		limit    int64
		err      error
	}{
		{"under limit", "abc", 4, nil},
		{"at limit", "abcd", 4, nil},
		{"over limit", "abcde", 4, errPayloadTooLarge},
		{"empty", "", 0, nil},
		{"zero limit", "a", 0, errPayloadTooLarge},
	}

	for _, test := range tests {
		t.Run(test.summary, func(t *testing.T) {
			out, err := io.ReadAll(newLimitedReader(bytes.NewReader([]byte(test.contents)), test.limit))
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.contents, string(out))
		})
	}
}

func TestExtensionForContentType(t *testing.T) {
	ext, err := extensionForContentType("video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "mp4", ext)

	ext, err = extensionForContentType("image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", ext)

	_, err = extensionForContentType("nonsense")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

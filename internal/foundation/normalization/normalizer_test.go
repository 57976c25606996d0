package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testFormat string

const (
	formatWebP testFormat = "webp"
	formatJPEG testFormat = "jpeg"
)

func newTestNormalizer() *Normalizer[testFormat] {
	return NewNormalizer(map[string]testFormat{
		"webp": formatWebP,
		"jpeg": formatJPEG,
		"JPG":  formatJPEG,
	}, formatWebP)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		input    string
		expected testFormat
	}{
		{"exact match", "jpeg", formatJPEG},
		{"alias", "jpg", formatJPEG},
		{"case and spaces", "  WebP ", formatWebP},
		{"unknown falls back", "gif", formatWebP},
		{"empty falls back", "", formatWebP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeStrict(t *testing.T) {
	n := newTestNormalizer()

	v, err := n.NormalizeStrict("JPG")
	require.NoError(t, err)
	require.Equal(t, formatJPEG, v)

	v, err = n.NormalizeStrict("")
	require.NoError(t, err)
	require.Equal(t, formatWebP, v)

	_, err = n.NormalizeStrict("avif")
	require.Error(t, err)
	require.Contains(t, err.Error(), "jpeg, jpg, webp")
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	n := newTestNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	require.Equal(t, []string{"jpeg", "jpg", "webp"}, n.ValidKeys())
}

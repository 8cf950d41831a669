// SPDX-License-Identifier: GPL-3.0-or-later

package dnswalk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeUncompressed encodes name as length-prefixed labels with the
// terminating zero byte and no compression.
func encodeUncompressed(name string) []byte {
	var out []byte
	start := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == '.' {
			out = append(out, byte(i-start))
			out = append(out, name[start:i]...)
			start = i + 1
		}
	}
	out = append(out, 0)
	return out
}

func TestDecodeNameUncompressed(t *testing.T) {
	msg := encodeUncompressed("www.example.com")

	name, next, err := decodeName(msg, 0)
	require.NoError(t, err)
	require.Equal(t, "www.example.com", name)
	require.Equal(t, len(msg), next)
}

func TestDecodeNamePreservesCase(t *testing.T) {
	msg := encodeUncompressed("WwW.Example.COM")

	name, _, err := decodeName(msg, 0)
	require.NoError(t, err)
	require.Equal(t, "WwW.Example.COM", name)
}

func TestDecodeNameCompression(t *testing.T) {
	// Offset 0: "example.com" spelled out in full.
	msg := encodeUncompressed("example.com")
	base := len(msg)

	// Offset base: "www" followed by a pointer to offset 0.
	msg = append(msg, 3, 'w', 'w', 'w', 0xC0, 0x00)

	name, next, err := decodeName(msg, base)
	require.NoError(t, err)
	require.Equal(t, "www.example.com", name)

	// The resume offset follows the pointer bytes, not the pointed-to
	// terminator.
	require.Equal(t, base+6, next)

	// The compressed spelling decodes to the same name as the full one.
	full, _, err := decodeName(append(encodeUncompressed("www.example.com"), msg...), 0)
	require.NoError(t, err)
	require.Equal(t, full, name)
}

func TestDecodeNamePointerOnly(t *testing.T) {
	msg := encodeUncompressed("example.com")
	base := len(msg)
	msg = append(msg, 0xC0, 0x00)

	name, next, err := decodeName(msg, base)
	require.NoError(t, err)
	require.Equal(t, "example.com", name)
	require.Equal(t, base+2, next)
}

func TestDecodeNameNestedPointers(t *testing.T) {
	// Offset 0: "com". Offset 5: "example" + pointer to 0. Offset 15:
	// "www" + pointer to 5. Only the first jump fixes the resume offset.
	msg := encodeUncompressed("com")               // 0..4
	msg = append(msg, 7)                           // 5
	msg = append(msg, "example"...)                // 6..12
	msg = append(msg, 0xC0, 0x00)                  // 13..14
	msg = append(msg, 3, 'w', 'w', 'w', 0xC0, 5)   // 15..20

	name, next, err := decodeName(msg, 15)
	require.NoError(t, err)
	require.Equal(t, "www.example.com", name)
	require.Equal(t, 21, next)
}

func TestDecodeNameErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		off  int
	}{
		{"OffsetPastEnd", encodeUncompressed("example.com"), 100},
		{"NegativeOffset", encodeUncompressed("example.com"), -1},
		{"TruncatedLabel", []byte{5, 'a', 'a'}, 0},
		{"MissingTerminator", []byte{3, 'a', 'a', 'a'}, 0},
		{"TruncatedPointer", []byte{0xC0}, 0},
		{"PointerPastEnd", []byte{0xC0, 0x50}, 0},
		{"PointerLoop", []byte{0xC0, 0x00}, 0},
		{"MutualPointerLoop", []byte{0xC0, 0x02, 0xC0, 0x00}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeName(tt.msg, tt.off)
			require.ErrorIs(t, err, ErrMalformedMessage)
		})
	}
}

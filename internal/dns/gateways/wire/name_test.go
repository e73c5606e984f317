package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// header returns 12 zero bytes so names can sit at realistic offsets.
func header() []byte {
	return make([]byte, 12)
}

func TestDecodeName_Simple(t *testing.T) {
	data := append(header(), []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
	}...)

	name, next, err := decodeName(data, 12)
	require.NoError(t, err)
	assert.Equal(t, "example.com", name)
	assert.Equal(t, len(data), next)
}

func TestDecodeName_Root(t *testing.T) {
	data := append(header(), 0)

	name, next, err := decodeName(data, 12)
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, 13, next)
}

func TestDecodeName_PreservesCase(t *testing.T) {
	data := append(header(), []byte{
		7, 'E', 'x', 'A', 'm', 'P', 'l', 'E',
		3, 'C', 'o', 'M',
		0,
	}...)

	name, _, err := decodeName(data, 12)
	require.NoError(t, err)
	assert.Equal(t, "ExAmPlE.CoM", name)
}

func TestDecodeName_CompressionPointer(t *testing.T) {
	// "example.com" at offset 12, then "www" + pointer back to it.
	data := append(header(), []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
	}...)
	ptrStart := len(data)
	data = append(data, 3, 'w', 'w', 'w', 0xC0, 12)

	name, next, err := decodeName(data, ptrStart)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", name)
	// The cursor resumes just past the pointer, not past the target.
	assert.Equal(t, ptrStart+6, next)
}

func TestDecodeName_PointerChain(t *testing.T) {
	// name A at 12, pointer B at 25 -> A, pointer C -> B.
	data := append(header(), []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
	}...)
	bOff := len(data)
	data = append(data, 0xC0, 12)
	cOff := len(data)
	data = append(data, 0xC0, byte(bOff))

	name, next, err := decodeName(data, cOff)
	require.NoError(t, err)
	assert.Equal(t, "example.com", name)
	assert.Equal(t, cOff+2, next)
}

func TestDecodeName_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		off  int
		want error
	}{
		{
			name: "self referencing pointer",
			data: append(header(), 0xC0, 12),
			off:  12,
			want: ErrCompressionLoop,
		},
		{
			name: "two pointer cycle",
			data: append(header(), 0xC0, 14, 0xC0, 12),
			off:  12,
			want: ErrCompressionLoop,
		},
		{
			name: "offset past end",
			data: header(),
			off:  12,
			want: ErrTruncated,
		},
		{
			name: "label runs past end",
			data: append(header(), 7, 'e', 'x'),
			off:  12,
			want: ErrTruncated,
		},
		{
			name: "pointer cut short",
			data: append(header(), 0xC0),
			off:  12,
			want: ErrTruncated,
		},
		{
			name: "reserved label type",
			data: append(header(), 0x40, 'a', 0),
			off:  12,
			want: ErrBadLabel,
		},
		{
			name: "missing terminator",
			data: append(header(), 3, 'c', 'o', 'm'),
			off:  12,
			want: ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeName(tt.data, tt.off)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{
			name:  "two labels",
			input: "example.com",
			want:  []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0},
		},
		{
			name:  "trailing dot stripped",
			input: "example.com.",
			want:  []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0},
		},
		{
			name:  "root",
			input: "",
			want:  []byte{0},
		},
		{
			name:  "max length label",
			input: strings.Repeat("a", 63) + ".com",
			want: append(append([]byte{63}, []byte(strings.Repeat("a", 63))...),
				3, 'c', 'o', 'm', 0),
		},
		{
			name:    "label too long",
			input:   strings.Repeat("a", 64) + ".com",
			wantErr: true,
		},
		{
			name:    "empty label",
			input:   "example..com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeName(&buf, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.Bytes())
		})
	}
}

func TestNameRoundTrip(t *testing.T) {
	names := []string{"example.com", "www.example.com", "a.b.c.d.e.example.org", ""}
	for _, want := range names {
		var buf bytes.Buffer
		buf.Write(header())
		require.NoError(t, writeName(&buf, want))

		got, next, err := decodeName(buf.Bytes(), 12)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, buf.Len(), next)
	}
}

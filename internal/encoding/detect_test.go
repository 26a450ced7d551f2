package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintra/fintra/internal/encoding"
)

func TestDecodeText_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Portuguese characters should pass through unchanged.
	input := "Descrição;Montante\nCafé;12,50\nOperação;-3,00\n"

	got, err := encoding.DecodeText([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestDecodeText_Latin1(t *testing.T) {
	// Windows-1252 encoded "Descrição;Montante\n".
	// In Windows-1252: ç = 0xE7, ã = 0xE3
	latin1Bytes := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	got, err := encoding.DecodeText(latin1Bytes)
	require.NoError(t, err)
	assert.Equal(t, "Descrição;Montante\n", got)
}

func TestDecodeText_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Descrição;Montante\n")

	got, err := encoding.DecodeText(append(bom, content...))
	require.NoError(t, err)
	assert.Equal(t, "Descrição;Montante\n", got)
}

func TestDecodeText_UTF16LE(t *testing.T) {
	// UTF-16LE with BOM: "Café\n".
	input := []byte{
		0xFF, 0xFE,
		'C', 0x00, 'a', 0x00, 'f', 0x00, 0xE9, 0x00, '\n', 0x00,
	}

	got, err := encoding.DecodeText(input)
	require.NoError(t, err)
	assert.Equal(t, "Café\n", got)
}

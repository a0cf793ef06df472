package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wayfare/internal/encoding"
)

func TestToUTF8_Passthrough(t *testing.T) {
	input := []byte(`{"status":"confirmed","currency":"KHR","note":"Café Phnom Penh"}`)

	got, err := encoding.ToUTF8(input)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestToUTF8_Latin1(t *testing.T) {
	// Windows-1252 encoded {"note":"payé"}; é = 0xE9.
	latin1 := []byte{'{', '"', 'n', 'o', 't', 'e', '"', ':', '"', 'p', 'a', 'y', 0xE9, '"', '}'}

	got, err := encoding.ToUTF8(latin1)
	require.NoError(t, err)
	assert.Equal(t, `{"note":"payé"}`, string(got))
}

func TestToUTF8_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"status":"paid"}`)...)

	got, err := encoding.ToUTF8(input)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"paid"}`, string(got))
}

func TestToUTF8_UTF16LE(t *testing.T) {
	input := []byte{0xFF, 0xFE, '{', 0, '}', 0}

	got, err := encoding.ToUTF8(input)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

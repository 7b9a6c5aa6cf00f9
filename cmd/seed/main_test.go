package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReader_Latin1(t *testing.T) {
	// "Camisón" en ISO-8859-1: ó = 0xF3
	raw := []byte{'C', 'a', 'm', 'i', 's', 0xF3, 'n'}
	r, err := decodeReader(bytes.NewReader(raw), "latin1")
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Camisón", string(out))

	_, err = decodeReader(bytes.NewReader(raw), "ebcdic")
	assert.Error(t, err)
}

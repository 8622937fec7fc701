package filetype

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffKeepsDeclaredType(t *testing.T) {
	r, ct, err := Sniff(bytes.NewReader([]byte("x")), "application/pdf; charset=binary", "a.bin")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	got, _ := io.ReadAll(r)
	assert.Equal(t, []byte("x"), got)
}

func TestSniffDetectsContent(t *testing.T) {
	pdf := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("0"), 5000)...)

	r, ct, err := Sniff(bytes.NewReader(pdf), "application/octet-stream", "scan")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, pdf, got, "sniffing must not consume bytes")
}

func TestSniffFallsBackToExtension(t *testing.T) {
	_, ct, err := Sniff(bytes.NewReader([]byte("a,b,c\n1,2,3\n")), "", "ponto.csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", ct)
}

// Package filetype resolves the MIME type of uploaded streams.
package filetype

import (
	"bufio"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

const octetStream = "application/octet-stream"

// Sniff returns a reader that still yields every byte of r, plus the content
// type. A specific declared type wins; otherwise the leading bytes are sniffed
// and the file extension is the last resort.
func Sniff(r io.Reader, declared, filename string) (io.Reader, string, error) {
	if ct := normalize(declared); ct != "" && ct != octetStream {
		return r, ct, nil
	}

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", err
	}

	ct := normalize(mimetype.Detect(head).String())
	if ct == "" || ct == octetStream || ct == "text/plain" {
		if byExt := normalize(mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))); byExt != "" {
			ct = byExt
		}
	}
	if ct == "" {
		ct = octetStream
	}
	return br, ct, nil
}

func normalize(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mediaType
}

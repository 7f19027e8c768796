package mediafile

import (
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen matches the default read limit of mimetype.
const sniffLen = 3072

// sniffingWriter passes writes through to the destination while keeping the
// leading bytes for content type detection.
type sniffingWriter struct {
	io.WriteCloser
	head []byte
}

func (w *sniffingWriter) Write(p []byte) (int, error) {
	n, err := w.WriteCloser.Write(p)
	if rem := sniffLen - len(w.head); rem > 0 && n > 0 {
		if n < rem {
			rem = n
		}
		w.head = append(w.head, p[:rem]...)
	}
	return n, err
}

// MimeType detects the content type from the bytes seen so far.
func (w *sniffingWriter) MimeType() string {
	return mimetype.Detect(w.head).String()
}

package f29

import (
	"mime"
	"strings"

	"tributo/internal/domain"
)

// DefaultMaxBytes is the upload ceiling: 10 MiB.
const DefaultMaxBytes int64 = 10 << 20

// Loader validates an upload before any parsing happens.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a Loader. A non-positive maxBytes selects DefaultMaxBytes.
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{maxBytes: maxBytes}
}

// MaxBytes returns the configured ceiling.
func (l *Loader) MaxBytes() int64 {
	return l.maxBytes
}

// Load checks the declared media type and length and returns the bytes unchanged.
func (l *Loader) Load(content []byte, mediaType string, size int64) (*domain.TaxDocument, error) {
	if !IsPDFMediaType(mediaType) {
		return nil, domain.ErrInvalidMediaType
	}
	if size > l.maxBytes || int64(len(content)) > l.maxBytes {
		return nil, domain.ErrPayloadTooLarge
	}
	return &domain.TaxDocument{
		RawBytes:  content,
		MediaType: domain.MediaTypePDF,
		Size:      size,
	}, nil
}

// IsPDFMediaType reports whether a declared Content-Type is application/pdf,
// ignoring parameters and case.
func IsPDFMediaType(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		mt = strings.TrimSpace(strings.SplitN(mediaType, ";", 2)[0])
	}
	return strings.EqualFold(mt, domain.MediaTypePDF)
}

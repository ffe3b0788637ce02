package port

import (
	"context"

	"tributo/internal/domain"
)

// TextExtractor turns raw PDF bytes into flat text.
type TextExtractor interface {
	Extract(ctx context.Context, raw []byte) (*domain.ExtractedText, error)
}

// DocumentInspector reports what a PDF contains without extracting it.
type DocumentInspector interface {
	Inspect(raw []byte) (*domain.DocumentProfile, error)
}

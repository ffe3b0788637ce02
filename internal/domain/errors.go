package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidMediaType    = errors.New("declared media type is not application/pdf")
	ErrPayloadTooLarge     = errors.New("payload exceeds maximum allowed size")
	ErrExtractionFailed    = errors.New("document has no extractable text layer")
	ErrNoCodesRecognized   = errors.New("no catalogue codes recognized")
	ErrOCRUnavailable      = errors.New("optical extraction is not available")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrArchiveFailed       = errors.New("declaration could not be archived")
	ErrArchiveDisabled     = errors.New("declaration archive is disabled")
	ErrInvalidPayrollInput = errors.New("payroll input does not match expected format")
)

// Failure codes reported in ParseOutcome.Error.
const (
	FailureInvalidMediaType  = "InvalidMediaType"
	FailurePayloadTooLarge   = "PayloadTooLarge"
	FailureExtractionFailed  = "ExtractionFailed"
	FailureNoCodesRecognized = "NoCodesRecognized"
)

// FailureCode maps a pipeline error to its taxonomy name.
// Errors outside the taxonomy are reported as extraction failures since they
// can only originate from the extraction stage.
func FailureCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidMediaType):
		return FailureInvalidMediaType
	case errors.Is(err, ErrPayloadTooLarge):
		return FailurePayloadTooLarge
	case errors.Is(err, ErrNoCodesRecognized):
		return FailureNoCodesRecognized
	default:
		return FailureExtractionFailed
	}
}

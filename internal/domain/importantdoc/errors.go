package importantdoc

import "atrium/internal/domain"

var (
	ErrDocumentNotFound = &domain.NotFoundError{Message: "important document not found"}

	ErrNameRequired  = &domain.ValidationError{Message: "name is required"}
	ErrFileRequired  = &domain.ValidationError{Message: "a file is required"}
	ErrEmptyFile     = &domain.ValidationError{Message: "file is empty"}
	ErrUnknownType   = &domain.ValidationError{Message: "document type does not exist or is inactive"}
	ErrExpiryBefore  = &domain.ValidationError{Message: "expiry date cannot be earlier than the issue date"}
	ErrInvalidDate   = &domain.ValidationError{Message: "dates must use the YYYY-MM-DD format"}
	ErrInvalidTypeID = &domain.ValidationError{Message: "invalid document type id"}
)

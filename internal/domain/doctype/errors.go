package doctype

import "atrium/internal/domain"

var (
	ErrTypeNotFound = &domain.NotFoundError{Message: "document type not found"}
	ErrNameTaken    = &domain.ConflictError{Message: "a document type with this name already exists"}
)

package explorer

import "atrium/internal/domain"

var (
	ErrFolderNotFound   = &domain.NotFoundError{Message: "folder not found"}
	ErrDocumentNotFound = &domain.NotFoundError{Message: "document not found"}

	ErrInvalidItemID      = &domain.ValidationError{Message: "invalid item id: expected p-<id> or d-<id>"}
	ErrInvalidParentID    = &domain.ValidationError{Message: "invalid parent folder id"}
	ErrParentNotFound     = &domain.ValidationError{Message: "parent folder does not exist for this employee"}
	ErrInvalidOwnerRole   = &domain.ValidationError{Message: "invalid owner role"}
	ErrOwnerRoleHidden    = &domain.ValidationError{Message: "owner role is outside the caller's visibility"}
	ErrMoveIntoSelf       = &domain.ValidationError{Message: "a folder cannot be moved into itself"}
	ErrMoveIntoDescendant = &domain.ValidationError{Message: "a folder cannot be moved into one of its subfolders"}
	ErrNoFiles            = &domain.ValidationError{Message: "at least one file is required"}
	ErrEmptyFile          = &domain.ValidationError{Message: "file is empty"}
	ErrFolderDownload     = &domain.ValidationError{Message: "folders cannot be downloaded"}

	ErrHiddenContent = &domain.ConflictError{Message: "folder contains items outside the caller's visibility"}
)

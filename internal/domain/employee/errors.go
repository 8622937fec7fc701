package employee

import "atrium/internal/domain"

var (
	ErrEmployeeNotFound     = &domain.NotFoundError{Message: "employee not found"}
	ErrRegistrationTaken    = &domain.ConflictError{Message: "registration already belongs to another employee"}
	ErrInvalidEmployeeField = &domain.ValidationError{Message: "full name and registration are required"}
)

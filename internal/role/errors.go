package role

import "errors"

var (
	ErrRoleNotFound        = errors.New("role assignment not found")
	ErrInvalidRole         = errors.New("invalid role assignment")
	ErrRoleAlreadyAssigned = errors.New("role already assigned to user")
)

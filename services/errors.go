package services

import "errors"

var (
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not allowed")
	ErrNotFound           = errors.New("not found")
)

package service

import "errors"

// Errors returned by the service. ErrInvalidCredentials covers both an
// unknown user and a wrong password. ErrNoCases means the role view for the
// user is empty.
var (
	ErrInvalidCredentials  = errors.New("invalid name or password")
	ErrInvalidRole         = errors.New("unknown role")
	ErrNoCases             = errors.New("no cases found")
	ErrTokenIssue          = errors.New("could not start a session")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("not allowed for this role")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrPasswordNotSaved    = errors.New("password could not be saved")
	ErrCaseNotFound        = errors.New("case not found")
	ErrDatasetsUnavailable = errors.New("datasets unavailable")
)

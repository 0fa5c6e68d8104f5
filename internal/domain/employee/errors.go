package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidRole           = errors.New("invalid role")
	ErrEmployeeNotBookable   = errors.New("employee cannot take appointments")
	ErrOwnerPasswordMismatch = errors.New("owner password is incorrect")
	ErrCannotChangeOwnRole   = errors.New("cannot change your own role")
	ErrCurrentPasswordWrong  = errors.New("current password is incorrect")
)

package svcerr

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrDatabaseUnreachable = errors.New("database unreachable")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnreachable(err error) bool {
	return errors.Is(err, ErrDatabaseUnreachable)
}

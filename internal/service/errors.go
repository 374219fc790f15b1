package service

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnknownModel    = errors.New("unknown model")
	ErrUnavailable     = errors.New("service unavailable")
	ErrUpstream        = errors.New("upstream model returned an unusable reply")
)

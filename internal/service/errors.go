package service

import "errors"

var (
	ErrUnknownMode   = errors.New("error unknown market mode")
	ErrUnknownFormat = errors.New("error unknown report format")
)

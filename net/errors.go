package net

import (
	"errors"
)

var (
	ErrInvalidListenerSpec = errors.New("invalid listener specification")
)

package config

import "errors"

var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidFormat  = errors.New("invalid configuration file format")
	ErrInvalidValue   = errors.New("invalid configuration value")
)

package s3store

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid s3 configuration: bucket and region are required")
	ErrFailedToLoadConfig = errors.New("failed to load aws configuration")
)

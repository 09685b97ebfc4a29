package keyhash

import "errors"

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrFailedToGenerateSalt = errors.New("failed to generate salt")
)

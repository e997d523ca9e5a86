package yamlsort

import "errors"

// Sentinel errors returned by the sorter.
var (
	ErrInvalidYAML   = errors.New("invalid yaml")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrUnknownTag    = errors.New("unknown tag")
	ErrInvalidOption = errors.New("invalid option")
	ErrInvalidRange  = errors.New("invalid range")
	ErrReadInput     = errors.New("read input")
	ErrWriteOutput   = errors.New("write output")
)

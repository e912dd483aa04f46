package merkle

import "errors"

// Errors returned by range proof verification. A failed root comparison is
// always ErrInvalidRoot and never one of the structural errors.
var (
	ErrWrongAmountOfLeavesProvided = errors.New("wrong amount of leaves provided")
	ErrMalformedProof              = errors.New("malformed proof")
	ErrInvalidRoot                 = errors.New("computed root does not match the provided root")
	ErrNoLeavesProvided            = errors.New("no leaves provided")
	ErrTreeDoesNotContainLeaf      = errors.New("tree does not contain the leaf")
	ErrMissingLeaf                 = errors.New("proof range is missing a leaf of the namespace")
	ErrTreeTooLarge                = errors.New("tree is too large")
)

package graph

import "errors"

// Sentinel errors shared across the engine. Callers match with errors.Is.
var (
	ErrNodeNotFound   = errors.New("node not found")
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrUserStatedNode = errors.New("user-stated nodes cannot be deleted")
	ErrInvalidDepth   = errors.New("invalid traversal depth")
	ErrInvalidAction  = errors.New("invalid correction action")
	ErrEmptyGroup     = errors.New("empty node group")
)

// IsNotFound reports whether err is a missing-node or missing-edge error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEdgeNotFound)
}

// IsPolicyViolation reports whether err is a correction the engine refuses
// on principle rather than for lack of a target. Callers should steer the
// user toward re-ingestion instead of retrying.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrUserStatedNode)
}

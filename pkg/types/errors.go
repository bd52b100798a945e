// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

var (
	// ErrMalformedInput reports an input document that is not a JSON array
	// of record objects. Stages abort before producing any artifact.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidMatrix reports an adjacency document whose shape or
	// symmetry is inconsistent.
	ErrInvalidMatrix = errors.New("invalid adjacency matrix")

	// ErrNodeNotFound reports a node reference that matches no node id or name.
	ErrNodeNotFound = errors.New("node not found")
)

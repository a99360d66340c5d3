// Package commitment derives the program commitment root: a two-level
// Merkle reduction over the encoded word image, first within each node,
// then across the four node leaves.
//
// Two historically distinct strategies exist and their roots are not
// interchangeable. The field strategy is the production one; it must
// reproduce, bit for bit, the root the external verifier re-derives over
// the same field with the same pair hash. The strategy is injected once
// per run and never mixed.
package commitment

import "fmt"

// Scheme is one commitment strategy over the per-node encoded words
// (row-major, no length prefixes).
type Scheme interface {
	Name() string
	Commit(nodeWords [][]uint32) [32]byte
}

// FromName resolves a scheme by its configuration name.
func FromName(name string) (Scheme, error) {
	switch name {
	case FieldSchemeName:
		return FieldScheme{}, nil
	case KeccakSchemeName:
		return KeccakScheme{}, nil
	default:
		return nil, fmt.Errorf("unknown commitment scheme %q", name)
	}
}

// merkleReduce folds a list of leaves into a single value. An empty list
// reduces to zero and a single leaf is returned unchanged, without hashing.
// Otherwise adjacent pairs (2i, 2i+1) are hashed repeatedly until one value
// remains; pair order is (left, right) and is significant.
//
// The padding policy is the one knob the two strategies disagree on: the
// field strategy right-pads to the next power of two with zero leaves, the
// byte strategy promotes an odd trailing leaf unchanged. Both tree levels
// go through this one routine so node level and grid level can never
// diverge in shape.
func merkleReduce[T any](leaves []T, zero T, pair func(left, right T) T, promoteOdd bool) T {
	if len(leaves) == 0 {
		return zero
	}
	if len(leaves) == 1 {
		return leaves[0]
	}

	level := append([]T(nil), leaves...)

	if !promoteOdd {
		pow := 1
		for pow < len(level) {
			pow *= 2
		}
		for len(level) < pow {
			level = append(level, zero)
		}
	}

	for len(level) > 1 {
		next := make([]T, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, pair(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}

	return level[0]
}

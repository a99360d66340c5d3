// Package proverabi builds the ordered public-argument vector handed to the
// external prover. Both the ordering and the hex-string value format are a
// fixed external contract; nothing here is allowed to reorder, widen, or
// pretty-print.
package proverabi

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
)

// Build assembles the argument vector:
//
//	len(inputs), inputs..., len(expected), expected...,
//	root (only when non-nil), len(words), words...
//
// The root slot is omitted when the consumer re-derives the commitment from
// the program words itself.
func Build(inputs, expected []uint32, root []byte, words []uint32) []string {
	args := make([]string, 0, len(inputs)+len(expected)+len(words)+4)

	args = append(args, FormatWord(uint32(len(inputs))))
	for _, v := range inputs {
		args = append(args, FormatWord(v))
	}

	args = append(args, FormatWord(uint32(len(expected))))
	for _, v := range expected {
		args = append(args, FormatWord(v))
	}

	if root != nil {
		args = append(args, FormatRoot(root))
	}

	args = append(args, FormatWord(uint32(len(words))))
	for _, w := range words {
		args = append(args, FormatWord(w))
	}

	return args
}

// FormatWord renders a value as prefixed lowercase hex, never as a raw
// number: decimal 42 becomes "0x2a".
func FormatWord(v uint32) string {
	return fmt.Sprintf("0x%x", v)
}

// FormatRoot renders the 32-byte root through the same field-element hex
// formatting as every other value, so leading zero bytes drop with the
// integer they belong to.
func FormatRoot(root []byte) string {
	return fmt.Sprintf("0x%x", new(big.Int).SetBytes(root))
}

// WriteJSON serializes the argument vector as a JSON array of strings, the
// textual hand-off format the prover reads.
func WriteJSON(w io.Writer, args []string) error {
	return json.NewEncoder(w).Encode(args)
}

package commitment

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// KeccakSchemeName selects the raw byte-hash strategy.
const KeccakSchemeName = "keccak256"

// KeccakScheme commits with legacy Keccak-256 over the raw encoded bytes.
// It keeps the same two-level tree shape as the field strategy but promotes
// an odd trailing leaf unchanged instead of zero padding. Only usable when
// no field-arithmetic verifier has to match the root; the two strategies
// produce different roots for the same image.
type KeccakScheme struct{}

func (KeccakScheme) Name() string { return KeccakSchemeName }

func (KeccakScheme) Commit(nodeWords [][]uint32) [32]byte {
	leaves := make([][32]byte, len(nodeWords))
	for i, words := range nodeWords {
		if len(words) == 0 {
			continue // zero leaf
		}
		wordLeaves := make([][32]byte, len(words))
		for j, w := range words {
			wordLeaves[j] = wordLeaf(w)
		}
		leaves[i] = merkleReduce(wordLeaves, [32]byte{}, keccakPair, true)
	}

	return merkleReduce(leaves, [32]byte{}, keccakPair, true)
}

// wordLeaf zero-extends an encoded word to the 32-byte big-endian leaf
// value, mirroring the field strategy's direct embedding.
func wordLeaf(w uint32) [32]byte {
	var leaf [32]byte
	binary.BigEndian.PutUint32(leaf[28:], w)
	return leaf
}

func keccakPair(left, right [32]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(left[:])
	h.Write(right[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

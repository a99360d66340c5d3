package commitment

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// FieldSchemeName selects the field-arithmetic strategy.
const FieldSchemeName = "mimc-bn254"

// FieldScheme commits over the BN254 scalar field with MiMC as the pair
// hash. Encoded words embed directly into the field (every 32-bit word is
// below the modulus), empty nodes contribute the zero element, and the
// reduction zero-pads to a power of two. A gnark circuit re-derives the
// identical root in-circuit, which is what makes this the production
// strategy.
type FieldScheme struct{}

func (FieldScheme) Name() string { return FieldSchemeName }

func (FieldScheme) Commit(nodeWords [][]uint32) [32]byte {
	leaves := make([]fr.Element, len(nodeWords))
	for i, words := range nodeWords {
		if len(words) == 0 {
			continue // zero element leaf
		}
		elems := make([]fr.Element, len(words))
		for j, w := range words {
			elems[j].SetUint64(uint64(w))
		}
		leaves[i] = merkleReduce(elems, fr.Element{}, mimcPair, false)
	}

	root := merkleReduce(leaves, fr.Element{}, mimcPair, false)
	return root.Bytes()
}

// mimcPair hashes two field elements in (left, right) order. Inputs are
// field elements by construction, so a Write failure is an internal
// invariant violation, not a user error.
func mimcPair(left, right fr.Element) fr.Element {
	h := mimc.NewMiMC()
	if _, err := h.Write(left.Marshal()); err != nil {
		panic(err)
	}
	if _, err := h.Write(right.Marshal()); err != nil {
		panic(err)
	}

	var out fr.Element
	out.SetBytes(h.Sum(nil))
	return out
}

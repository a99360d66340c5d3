package commitment

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func frElem(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func TestMerkleReduceEmpty(t *testing.T) {
	root := merkleReduce(nil, fr.Element{}, mimcPair, false)
	require.True(t, root.IsZero(), "empty list reduces to the zero element")
}

func TestMerkleReduceSingle(t *testing.T) {
	leaf := frElem(12345)
	root := merkleReduce([]fr.Element{leaf}, fr.Element{}, mimcPair, false)
	require.True(t, leaf.Equal(&root), "single leaf is returned unchanged, not hashed")
}

func TestMerkleReducePair(t *testing.T) {
	a, b := frElem(100), frElem(200)
	root := merkleReduce([]fr.Element{a, b}, fr.Element{}, mimcPair, false)
	expected := mimcPair(a, b)
	require.True(t, expected.Equal(&root))
}

func TestMerkleReducePairOrderMatters(t *testing.T) {
	a, b := frElem(100), frElem(200)
	lr := mimcPair(a, b)
	rl := mimcPair(b, a)
	require.False(t, lr.Equal(&rl), "swapping pair order must change the hash")
}

func TestMerkleReduceThreeLeavesPadsWithZero(t *testing.T) {
	a, b, c := frElem(1), frElem(2), frElem(3)
	root := merkleReduce([]fr.Element{a, b, c}, fr.Element{}, mimcPair, false)

	// [a,b,c] pads to [a,b,c,0]: hash(hash(a,b), hash(c,0))
	expected := mimcPair(mimcPair(a, b), mimcPair(c, fr.Element{}))
	require.True(t, expected.Equal(&root))
}

func TestMerkleReduceThreeLeavesPromotesOdd(t *testing.T) {
	a := wordLeaf(1)
	b := wordLeaf(2)
	c := wordLeaf(3)
	root := merkleReduce([][32]byte{a, b, c}, [32]byte{}, keccakPair, true)

	// odd trailing leaf is promoted unchanged: hash(hash(a,b), c)
	expected := keccakPair(keccakPair(a, b), c)
	require.Equal(t, expected, root)
}

func TestFieldSchemeCommitDeterminism(t *testing.T) {
	nodes := [][]uint32{
		{0x000C0201, 0x2A010002, 0x000D0201},
		{},
		{0x000C0201},
		{},
	}

	first := FieldScheme{}.Commit(nodes)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, FieldScheme{}.Commit(nodes))
	}
}

func TestFieldSchemeCommitSensitivity(t *testing.T) {
	nodes := [][]uint32{
		{0x000C0201, 0x000D0201},
		{},
		{},
		{},
	}
	base := FieldScheme{}.Commit(nodes)

	// flip a single instruction encoding
	changed := [][]uint32{
		{0x000C0201, 0x2A010002},
		{},
		{},
		{},
	}
	require.NotEqual(t, base, FieldScheme{}.Commit(changed))

	// move the program to a different node slot
	moved := [][]uint32{
		{},
		{0x000C0201, 0x000D0201},
		{},
		{},
	}
	require.NotEqual(t, base, FieldScheme{}.Commit(moved))
}

func TestFieldSchemeEmptyGrid(t *testing.T) {
	empty := [][]uint32{{}, {}, {}, {}}
	root := FieldScheme{}.Commit(empty)

	// four zero leaves still hash up through the two tree levels
	zero := fr.Element{}
	expected := mimcPair(mimcPair(zero, zero), mimcPair(zero, zero))
	require.Equal(t, expected.Bytes(), root)
}

func TestFieldSchemeSingleWordNodeLeaf(t *testing.T) {
	// a node with one instruction has that word itself as its leaf
	word := uint32(0x000D0201)
	nodes := [][]uint32{{word}, {}, {}, {}}
	root := FieldScheme{}.Commit(nodes)

	zero := fr.Element{}
	expected := mimcPair(mimcPair(frElem(uint64(word)), zero), mimcPair(zero, zero))
	require.Equal(t, expected.Bytes(), root)
}

func TestSchemesDisagree(t *testing.T) {
	nodes := [][]uint32{
		{0x000C0201, 0x000D0201},
		{},
		{},
		{},
	}
	require.NotEqual(t, FieldScheme{}.Commit(nodes), KeccakScheme{}.Commit(nodes),
		"the two strategies are not interchangeable")
}

func TestKeccakSchemeDeterminism(t *testing.T) {
	nodes := [][]uint32{
		{0x000C0201},
		{0x2A010002, 0x000D0201},
		{},
		{},
	}
	first := KeccakScheme{}.Commit(nodes)
	require.Equal(t, first, KeccakScheme{}.Commit(nodes))
	require.NotEqual(t, [32]byte{}, first)
}

func TestFromName(t *testing.T) {
	scheme, err := FromName("mimc-bn254")
	require.NoError(t, err)
	require.Equal(t, FieldSchemeName, scheme.Name())

	scheme, err = FromName("keccak256")
	require.NoError(t, err)
	require.Equal(t, KeccakSchemeName, scheme.Name())

	_, err = FromName("sha3-512")
	require.Error(t, err, "unknown scheme names must not silently fall back")
}

package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"GridProverHost/modules/instruction"
)

func TestAssembleSimpleProgram(t *testing.T) {
	src := `
# Simple test program
NODE (0,0)
NOP
HLT

NODE (0,1)
# Empty node
`
	grid, err := Assemble(src)
	require.NoError(t, err)
	require.Len(t, grid.Nodes[0][0], 2)
	require.Len(t, grid.Nodes[0][1], 0)
	require.Len(t, grid.Nodes[1][0], 0)
	require.Len(t, grid.Nodes[1][1], 0)

	require.Equal(t, instruction.Nop, grid.Nodes[0][0][0].Op)
	require.Equal(t, instruction.Hlt, grid.Nodes[0][0][1].Op)
}

func TestAssembleLabels(t *testing.T) {
	src := `
NODE (0,0)
loop:
    ADD 1
    JNZ loop
    HLT
`
	grid, err := Assemble(src)
	require.NoError(t, err)
	require.Len(t, grid.Nodes[0][0], 3)

	jnz := grid.Nodes[0][0][1]
	require.Equal(t, instruction.Jnz, jnz.Op)
	require.Equal(t, instruction.SrcLit, jnz.Src.Kind)
	require.Equal(t, uint32(0), jnz.Src.Lit, "loop label sits at PC 0")
}

func TestAssembleForwardLabel(t *testing.T) {
	src := `
NODE (1,1)
JMP done
NOP
done:
HLT
`
	grid, err := Assemble(src)
	require.NoError(t, err)
	require.Len(t, grid.Nodes[1][1], 3)

	jmp := grid.Nodes[1][1][0]
	require.Equal(t, uint32(2), jmp.Src.Lit, "done label sits after two instructions")
}

func TestAssemblePortCommunication(t *testing.T) {
	src := `
NODE (0,0)
MOV 42, P:RIGHT
HLT

NODE (0,1)
MOV P:LEFT, ACC
HLT
`
	grid, err := Assemble(src)
	require.NoError(t, err)
	require.Len(t, grid.Nodes[0][0], 2)
	require.Len(t, grid.Nodes[0][1], 2)

	mov := grid.Nodes[0][1][0]
	require.Equal(t, instruction.SrcPort, mov.Src.Kind)
	require.Equal(t, instruction.Left, mov.Src.Port)
	require.Equal(t, instruction.DstAcc, mov.Dst.Kind)
}

func TestAssembleDropsLinesBeforeNode(t *testing.T) {
	src := `
NOP
orphan:
NODE (0,0)
HLT
`
	grid, err := Assemble(src)
	require.NoError(t, err)
	require.Len(t, grid.Nodes[0][0], 1, "only the HLT after the NODE directive survives")
}

func TestAssembleBadCoordinate(t *testing.T) {
	for _, src := range []string{
		"NODE (2,0)\nNOP",
		"NODE (0,3)\nNOP",
		"NODE (-1,0)\nNOP",
		"NODE (x,0)\nNOP",
		"NODE\nNOP",
	} {
		_, err := Assemble(src)
		require.ErrorIs(t, err, ErrBadCoordinate, "source: %q", src)
	}
}

func TestAssembleParseErrors(t *testing.T) {
	for _, tc := range []struct{ name, src string }{
		{"unknown mnemonic", "NODE (0,0)\nFROB 1"},
		{"operand on NOP", "NODE (0,0)\nNOP 5"},
		{"missing ADD operand", "NODE (0,0)\nADD"},
		{"missing MOV destination", "NODE (0,0)\nMOV 42"},
		{"extra MOV operand", "NODE (0,0)\nMOV 1, ACC, NIL"},
		{"undefined label", "NODE (0,0)\nJMP nowhere"},
		{"bad port", "NODE (0,0)\nMOV P:NORTH, ACC"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Assemble(tc.src)
			require.Error(t, err)

			var lineErr *LineError
			require.ErrorAs(t, err, &lineErr, "parse errors carry line context")
			require.NotZero(t, lineErr.Line)
		})
	}
}

func TestEncodeImageEmptyGrid(t *testing.T) {
	grid, err := Assemble("")
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 0, 0, 0}, grid.EncodeImage())
}

func TestEncodeImageLayout(t *testing.T) {
	src := `
NODE (0,0)
NOP
HLT
`
	grid, err := Assemble(src)
	require.NoError(t, err)

	words := grid.EncodeImage()
	require.Equal(t, []uint32{2, 0x000C0201, 0x000D0201, 0, 0, 0}, words)
}

func TestEncodeImageRowMajorOrder(t *testing.T) {
	src := `
NODE (1,0)
HLT

NODE (0,1)
NOP
NOP
`
	grid, err := Assemble(src)
	require.NoError(t, err)

	words := grid.EncodeImage()
	require.Equal(t, uint32(0), words[0], "node (0,0) empty")
	require.Equal(t, uint32(2), words[1], "node (0,1) has two instructions")
	require.Equal(t, uint32(1), words[4], "node (1,0) has one instruction")
	require.Equal(t, uint32(0), words[6], "node (1,1) empty")
	require.Len(t, words, 7)
}

func TestAssembleDeterminism(t *testing.T) {
	src := `
NODE (0,0)
start:
MOV IN, ACC
SUB 10
JGZ start
MOV ACC, P:DOWN

NODE (1,0)
MOV P:UP, OUT
HLT
`
	first, err := Assemble(src)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Assemble(src)
		require.NoError(t, err)
		require.Equal(t, first.EncodeImage(), again.EncodeImage())
	}
}

func TestNodeWords(t *testing.T) {
	src := `
NODE (0,0)
NOP

NODE (1,1)
HLT
`
	grid, err := Assemble(src)
	require.NoError(t, err)

	nodes := grid.NodeWords()
	require.Len(t, nodes, 4)
	require.Equal(t, []uint32{0x000C0201}, nodes[0])
	require.Empty(t, nodes[1])
	require.Empty(t, nodes[2])
	require.Equal(t, []uint32{0x000D0201}, nodes[3])
}

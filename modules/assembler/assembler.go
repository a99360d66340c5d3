// Package assembler turns grid assembly source into per-node instruction
// lists and the flat word image fed to the commitment builder and the
// prover ABI.
package assembler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"GridProverHost/modules/instruction"
)

// GridSize is the fixed edge length of the node grid.
const GridSize = 2

// ErrBadCoordinate reports a NODE directive outside the fixed grid.
var ErrBadCoordinate = errors.New("node coordinates must be within the 2x2 grid")

// LineError wraps a parse failure with its originating source line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %s", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Grid holds the program of every node slot. Every slot exists even when
// empty; iteration for output is always row-major over the fixed array, so
// results never depend on map ordering.
type Grid struct {
	Nodes [GridSize][GridSize][]instruction.Inst
}

// pendingLine is an instruction line recorded during the first pass,
// resolved during the second once the node's label table is complete.
type pendingLine struct {
	lineNo int
	text   string
}

type nodeState struct {
	labels  map[string]int
	pending []pendingLine
}

// Assemble parses grid assembly source into a Grid.
//
// First pass: blank lines and `#`/`//` comments are skipped, NODE directives
// switch the current node, `name:` lines bind the label to the node's current
// instruction count, everything else is recorded verbatim. Lines before any
// NODE directive are dropped. Second pass: each node's pending lines are
// parsed in order against its completed label table. The first failure aborts
// the whole assembly; no partial grid is returned.
func Assemble(src string) (*Grid, error) {
	var states [GridSize][GridSize]nodeState
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			states[r][c].labels = make(map[string]int)
		}
	}

	var current *nodeState
	for lineNo, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "NODE") {
			parts := strings.Fields(line)
			if len(parts) < 2 {
				return nil, &LineError{lineNo + 1, line, fmt.Errorf("NODE directive missing coordinate: %w", ErrBadCoordinate)}
			}
			r, c, err := parseCoordinate(parts[1])
			if err != nil {
				return nil, &LineError{lineNo + 1, line, err}
			}
			current = &states[r][c]
			continue
		}

		if name, ok := strings.CutSuffix(line, ":"); ok {
			if current != nil {
				current.labels[name] = len(current.pending)
			}
			continue
		}

		if current != nil {
			current.pending = append(current.pending, pendingLine{lineNo + 1, line})
		}
	}

	grid := &Grid{}
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			state := &states[r][c]
			for _, pl := range state.pending {
				inst, err := parseInstruction(pl.text, state.labels)
				if err != nil {
					return nil, &LineError{pl.lineNo, pl.text, err}
				}
				grid.Nodes[r][c] = append(grid.Nodes[r][c], inst)
			}
		}
	}

	return grid, nil
}

// parseCoordinate parses a `(row,col)` token.
func parseCoordinate(tok string) (int, int, error) {
	trimmed := strings.TrimFunc(tok, func(r rune) bool { return r == '(' || r == ')' })
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinate %q: %w", tok, ErrBadCoordinate)
	}

	r, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed coordinate %q: %w", tok, ErrBadCoordinate)
	}
	c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed coordinate %q: %w", tok, ErrBadCoordinate)
	}
	if r < 0 || r >= GridSize || c < 0 || c >= GridSize {
		return 0, 0, fmt.Errorf("coordinate (%d,%d): %w", r, c, ErrBadCoordinate)
	}

	return r, c, nil
}

// parseInstruction parses one instruction line, enforcing the operand arity
// of the operation. The label table is the node's completed first-pass table.
func parseInstruction(line string, labels map[string]int) (instruction.Inst, error) {
	parts := strings.Fields(line)

	op, err := instruction.ParseOp(parts[0])
	if err != nil {
		return instruction.Inst{}, err
	}

	switch op {
	case instruction.Nop, instruction.Hlt, instruction.Neg,
		instruction.Sav, instruction.Swp:
		if len(parts) != 1 {
			return instruction.Inst{}, fmt.Errorf("%s takes no operand", parts[0])
		}
		return instruction.Inst{
			Op:  op,
			Src: instruction.Src{Kind: instruction.SrcNil},
			Dst: instruction.Dst{Kind: instruction.DstNil},
		}, nil

	case instruction.Mov:
		if len(parts) != 3 {
			return instruction.Inst{}, fmt.Errorf("MOV requires a source and a destination")
		}
		src, err := instruction.ParseSrc(strings.TrimSuffix(parts[1], ","), labels)
		if err != nil {
			return instruction.Inst{}, err
		}
		dst, err := instruction.ParseDst(parts[2])
		if err != nil {
			return instruction.Inst{}, err
		}
		return instruction.Inst{Op: op, Src: src, Dst: dst}, nil

	default: // ADD, SUB and the jump family take one source operand
		if len(parts) != 2 {
			return instruction.Inst{}, fmt.Errorf("%s requires exactly one operand", parts[0])
		}
		src, err := instruction.ParseSrc(parts[1], labels)
		if err != nil {
			return instruction.Inst{}, err
		}
		return instruction.Inst{
			Op:  op,
			Src: src,
			Dst: instruction.Dst{Kind: instruction.DstNil},
		}, nil
	}
}

// EncodeImage serializes the grid into the flat word image: for each node in
// row-major order, one length word followed by that node's instruction
// encodings. An all-empty grid encodes to [0,0,0,0].
func (g *Grid) EncodeImage() []uint32 {
	var words []uint32
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			prog := g.Nodes[r][c]
			words = append(words, uint32(len(prog)))
			for _, inst := range prog {
				words = append(words, inst.Encode())
			}
		}
	}
	return words
}

// NodeWords returns the per-node encoded instruction words in row-major
// order, without length prefixes. This is the leaf input of the commitment
// builder, which needs the node structure the flat image erases.
func (g *Grid) NodeWords() [][]uint32 {
	nodes := make([][]uint32, 0, GridSize*GridSize)
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			prog := g.Nodes[r][c]
			words := make([]uint32, len(prog))
			for i, inst := range prog {
				words[i] = inst.Encode()
			}
			nodes = append(nodes, words)
		}
	}
	return nodes
}

// Package instruction models the grid node instruction set and its packed
// 32-bit wire encoding. The bit layout is a fixed contract shared with the
// external verifier decoding the same word stream; any change here changes
// every program image and therefore every commitment root.
package instruction

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is the operation code of a grid instruction. Code 0 is unused.
type Op uint8

const (
	Mov Op = iota + 1
	Add
	Sub
	Neg
	Sav
	Swp
	Jmp
	Jz
	Jnz
	Jgz
	Jlz
	Nop
	Hlt
)

// Port identifies one of the four neighbour ports of a node.
type Port uint8

const (
	Up Port = iota
	Down
	Left
	Right
)

// SrcKind is the tag code of a source operand.
type SrcKind uint8

const (
	SrcLit SrcKind = iota
	SrcAcc
	SrcNil
	SrcIn
	SrcPort
	SrcLast
)

// DstKind is the tag code of a destination operand.
type DstKind uint8

const (
	DstAcc DstKind = iota
	DstNil
	DstOut
	DstPort
	DstLast
)

// Src is a source operand. Only the field matching Kind carries meaning.
type Src struct {
	Kind SrcKind
	Lit  uint32 // Kind == SrcLit
	Port Port   // Kind == SrcPort
}

// Dst is a destination operand. Only the field matching Kind carries meaning.
type Dst struct {
	Kind DstKind
	Port Port // Kind == DstPort
}

// Inst is one grid instruction.
type Inst struct {
	Op  Op
	Src Src
	Dst Dst
}

var opNames = map[string]Op{
	"MOV": Mov,
	"ADD": Add,
	"SUB": Sub,
	"NEG": Neg,
	"SAV": Sav,
	"SWP": Swp,
	"JMP": Jmp,
	"JZ":  Jz,
	"JNZ": Jnz,
	"JGZ": Jgz,
	"JLZ": Jlz,
	"NOP": Nop,
	"HLT": Hlt,
}

// ParseOp parses an operation mnemonic, case-insensitively.
func ParseOp(tok string) (Op, error) {
	op, ok := opNames[strings.ToUpper(tok)]
	if !ok {
		return 0, fmt.Errorf("unknown operation %q", tok)
	}
	return op, nil
}

// ParsePort parses one of the four direction names, case-insensitively.
func ParsePort(tok string) (Port, error) {
	switch strings.ToUpper(tok) {
	case "UP":
		return Up, nil
	case "DOWN":
		return Down, nil
	case "LEFT":
		return Left, nil
	case "RIGHT":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown port %q", tok)
	}
}

// ParseSrc parses a source operand token. The label table is consulted first,
// by exact name; a hit resolves to a program-counter literal. Labels and
// numeric literals share the literal slot, so the caller cannot tell them
// apart after parsing.
func ParseSrc(tok string, labels map[string]int) (Src, error) {
	if pc, ok := labels[tok]; ok {
		return Src{Kind: SrcLit, Lit: uint32(pc)}, nil
	}

	upper := strings.ToUpper(tok)
	switch upper {
	case "ACC":
		return Src{Kind: SrcAcc}, nil
	case "NIL":
		return Src{Kind: SrcNil}, nil
	case "IN":
		return Src{Kind: SrcIn}, nil
	case "LAST":
		return Src{Kind: SrcLast}, nil
	}

	if rest, ok := strings.CutPrefix(upper, "P:"); ok {
		port, err := ParsePort(rest)
		if err != nil {
			return Src{}, err
		}
		return Src{Kind: SrcPort, Port: port}, nil
	}

	if v, err := strconv.ParseUint(tok, 10, 32); err == nil {
		return Src{Kind: SrcLit, Lit: uint32(v)}, nil
	}
	if v, err := strconv.ParseInt(tok, 10, 32); err == nil {
		// negative literals store their 32-bit two's complement
		return Src{Kind: SrcLit, Lit: uint32(int32(v))}, nil
	}

	return Src{}, fmt.Errorf("invalid source operand %q", tok)
}

// ParseDst parses a destination operand token.
func ParseDst(tok string) (Dst, error) {
	upper := strings.ToUpper(tok)
	switch upper {
	case "ACC":
		return Dst{Kind: DstAcc}, nil
	case "NIL":
		return Dst{Kind: DstNil}, nil
	case "OUT":
		return Dst{Kind: DstOut}, nil
	case "LAST":
		return Dst{Kind: DstLast}, nil
	}

	if rest, ok := strings.CutPrefix(upper, "P:"); ok {
		port, err := ParsePort(rest)
		if err != nil {
			return Dst{}, err
		}
		return Dst{Kind: DstPort, Port: port}, nil
	}

	return Dst{}, fmt.Errorf("invalid destination operand %q", tok)
}

// Encode packs the instruction into its 32-bit wire word:
//
//	lit(8) | src_port(2) | dst_port(2) | op(4) | src_kind(8) | dst_kind(8)
//
// Literal values above 255 lose their high bits; the truncation is part of
// the wire contract. Encode never rejects a structurally valid instruction.
func (i Inst) Encode() uint32 {
	var lit, srcPort, dstPort uint32

	if i.Src.Kind == SrcLit {
		lit = i.Src.Lit
	}
	if i.Src.Kind == SrcPort {
		srcPort = uint32(i.Src.Port)
	}
	if i.Dst.Kind == DstPort {
		dstPort = uint32(i.Dst.Port)
	}

	return (lit&0xFF)<<24 |
		(srcPort&0x3)<<22 |
		(dstPort&0x3)<<20 |
		(uint32(i.Op)&0xF)<<16 |
		(uint32(i.Src.Kind)&0xFF)<<8 |
		uint32(i.Dst.Kind)&0xFF
}

// DecodeWord unpacks an encoded word back into its structural fields. A
// decoded literal carries only the low byte the encoding retained; port
// fields are meaningful only when the corresponding kind is a port.
func DecodeWord(word uint32) Inst {
	inst := Inst{
		Op:  Op(word >> 16 & 0xF),
		Src: Src{Kind: SrcKind(word >> 8 & 0xFF)},
		Dst: Dst{Kind: DstKind(word & 0xFF)},
	}
	if inst.Src.Kind == SrcLit {
		inst.Src.Lit = word >> 24 & 0xFF
	}
	if inst.Src.Kind == SrcPort {
		inst.Src.Port = Port(word >> 22 & 0x3)
	}
	if inst.Dst.Kind == DstPort {
		inst.Dst.Port = Port(word >> 20 & 0x3)
	}
	return inst
}

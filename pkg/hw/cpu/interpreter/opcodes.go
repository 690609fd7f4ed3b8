package interpreter

import (
	"sort"
	"strings"
)

// Opcode is the closed enumeration of hormiga instructions. Dispatch always
// goes through the descriptor table below, never through arbitrary lookup.
type Opcode uint8

const (
	OpMov Opcode = iota
	OpAdd
	OpSub
	OpCmp
	OpCgt
	OpClt
	OpJmp
	OpJnz
	OpJze
)

type opcodeDescriptor struct {
	mnemonic string
	summary  string
	execute  func(i *Interpreter, operands string) error
}

var opcodes = map[Opcode]opcodeDescriptor{
	OpMov: {mnemonic: "mov", summary: "mov dst,value   dst := value, unclamped", execute: execMov},
	OpAdd: {mnemonic: "add", summary: "add src,dst     dst += src, saturating at 255, raises ovfl", execute: execAdd},
	OpSub: {mnemonic: "sub", summary: "sub src,dst     dst -= src, saturating at 0, raises udfl", execute: execSub},
	OpCmp: {mnemonic: "cmp", summary: "cmp a,b         s := 1 if a == b else 0", execute: execCmp},
	OpCgt: {mnemonic: "cgt", summary: "cgt a,b         s := 1 if a > b else 0", execute: execCgt},
	OpClt: {mnemonic: "clt", summary: "clt a,b         s := 1 if a < b else 0", execute: execClt},
	OpJmp: {mnemonic: "jmp", summary: "jmp target      jump to instruction index target", execute: execJmp},
	OpJnz: {mnemonic: "jnz", summary: "jnz target      jump if s != 0", execute: execJnz},
	OpJze: {mnemonic: "jze", summary: "jze target      jump if s == 0", execute: execJze},
}

var mnemonics = func() map[string]Opcode {
	index := make(map[string]Opcode, len(opcodes))

	for opcode, descriptor := range opcodes {
		index[descriptor.mnemonic] = opcode
	}

	return index
}()

func (o Opcode) Mnemonic() string {
	return opcodes[o].mnemonic
}

// ParseOpcode maps mnemonic text to its opcode, reporting whether the
// mnemonic is part of the instruction set.
func ParseOpcode(text string) (Opcode, bool) {
	opcode, contains := mnemonics[text]
	return opcode, contains
}

// Mnemonics returns every supported mnemonic, sorted, for diagnostics and
// docs.
func Mnemonics() []string {
	names := make([]string, 0, len(opcodes))

	for _, descriptor := range opcodes {
		names = append(names, descriptor.mnemonic)
	}

	sort.Strings(names)

	return names
}

// Reference renders a plain text reference of the instruction set, one
// instruction per line in mnemonic order.
func Reference() string {
	summaries := make(map[string]string, len(opcodes))

	for _, descriptor := range opcodes {
		summaries[descriptor.mnemonic] = descriptor.summary
	}

	var doc strings.Builder

	for _, mnemonic := range Mnemonics() {
		doc.WriteString(summaries[mnemonic])
		doc.WriteString("\n")
	}

	return doc.String()
}

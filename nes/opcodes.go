package nes

// opFunc executes an instruction's state change and returns any extra
// cycles it incurs beyond its base cost (branches taken, page-crossing
// penalties already folded in by the caller for reads are handled via
// pageCrossExtra instead).
type opFunc func(c *CPU, addr uint16, mode AddressingMode) int

// instruction is one entry of the 256-slot opcode decode table.
type instruction struct {
	mnemonic string
	op       opFunc
	mode     AddressingMode
	addrFn   addrModeFunc
	cycles   int

	// pageCrossExtra restricts the +1-cycle page-crossing penalty to the
	// indexed read instructions that the hardware actually charges it to;
	// read-modify-write and store instructions never get it even though
	// they use the same addressing modes.
	pageCrossExtra bool
}

// buildOpcodeTable constructs the 256-entry decode table for the official
// NMOS 6502 instruction set. Unassigned slots are left zero-valued (op ==
// nil), which step() reports as UnknownOpcodeError.
func buildOpcodeTable() [256]instruction {
	var t [256]instruction

	set := func(opcode byte, mnemonic string, op opFunc, mode AddressingMode, addrFn addrModeFunc, cycles int, pageCrossExtra bool) {
		t[opcode] = instruction{mnemonic: mnemonic, op: op, mode: mode, addrFn: addrFn, cycles: cycles, pageCrossExtra: pageCrossExtra}
	}

	// BRK / stack / flags / NOP
	set(0x00, "BRK", opBRK, Implied, nil, 7, false)
	set(0x08, "PHP", opPHP, Implied, nil, 3, false)
	set(0x28, "PLP", opPLP, Implied, nil, 4, false)
	set(0x48, "PHA", opPHA, Implied, nil, 3, false)
	set(0x68, "PLA", opPLA, Implied, nil, 4, false)
	set(0x40, "RTI", opRTI, Implied, nil, 6, false)
	set(0x60, "RTS", opRTS, Implied, nil, 6, false)
	set(0x18, "CLC", opCLC, Implied, nil, 2, false)
	set(0x38, "SEC", opSEC, Implied, nil, 2, false)
	set(0x58, "CLI", opCLI, Implied, nil, 2, false)
	set(0x78, "SEI", opSEI, Implied, nil, 2, false)
	set(0xB8, "CLV", opCLV, Implied, nil, 2, false)
	set(0xD8, "CLD", opCLD, Implied, nil, 2, false)
	set(0xF8, "SED", opSED, Implied, nil, 2, false)
	set(0xEA, "NOP", opNOP, Implied, nil, 2, false)

	// Transfers
	set(0xAA, "TAX", opTAX, Implied, nil, 2, false)
	set(0xA8, "TAY", opTAY, Implied, nil, 2, false)
	set(0xBA, "TSX", opTSX, Implied, nil, 2, false)
	set(0x8A, "TXA", opTXA, Implied, nil, 2, false)
	set(0x9A, "TXS", opTXS, Implied, nil, 2, false)
	set(0x98, "TYA", opTYA, Implied, nil, 2, false)

	// Increment / decrement registers
	set(0xE8, "INX", opINX, Implied, nil, 2, false)
	set(0xC8, "INY", opINY, Implied, nil, 2, false)
	set(0xCA, "DEX", opDEX, Implied, nil, 2, false)
	set(0x88, "DEY", opDEY, Implied, nil, 2, false)

	// JMP / JSR
	set(0x4C, "JMP", opJMP, Absolute, amAbsolute, 3, false)
	set(0x6C, "JMP", opJMP, Indirect, amIndirect, 5, false)
	set(0x20, "JSR", opJSR, Absolute, amAbsolute, 6, false)

	// Branches (base cost 2; opXXX itself returns the taken/page-cross extra)
	set(0x10, "BPL", opBPL, Relative, amRelative, 2, false)
	set(0x30, "BMI", opBMI, Relative, amRelative, 2, false)
	set(0x50, "BVC", opBVC, Relative, amRelative, 2, false)
	set(0x70, "BVS", opBVS, Relative, amRelative, 2, false)
	set(0x90, "BCC", opBCC, Relative, amRelative, 2, false)
	set(0xB0, "BCS", opBCS, Relative, amRelative, 2, false)
	set(0xD0, "BNE", opBNE, Relative, amRelative, 2, false)
	set(0xF0, "BEQ", opBEQ, Relative, amRelative, 2, false)

	// LDA
	set(0xA9, "LDA", opLDA, Immediate, amImmediate, 2, false)
	set(0xA5, "LDA", opLDA, ZeroPage, amZeroPage, 3, false)
	set(0xB5, "LDA", opLDA, ZeroPageX, amZeroPageX, 4, false)
	set(0xAD, "LDA", opLDA, Absolute, amAbsolute, 4, false)
	set(0xBD, "LDA", opLDA, AbsoluteX, amAbsoluteX, 4, true)
	set(0xB9, "LDA", opLDA, AbsoluteY, amAbsoluteY, 4, true)
	set(0xA1, "LDA", opLDA, IndexedIndirect, amIndexedIndirect, 6, false)
	set(0xB1, "LDA", opLDA, IndirectIndexed, amIndirectIndexed, 5, true)

	// LDX
	set(0xA2, "LDX", opLDX, Immediate, amImmediate, 2, false)
	set(0xA6, "LDX", opLDX, ZeroPage, amZeroPage, 3, false)
	set(0xB6, "LDX", opLDX, ZeroPageY, amZeroPageY, 4, false)
	set(0xAE, "LDX", opLDX, Absolute, amAbsolute, 4, false)
	set(0xBE, "LDX", opLDX, AbsoluteY, amAbsoluteY, 4, true)

	// LDY
	set(0xA0, "LDY", opLDY, Immediate, amImmediate, 2, false)
	set(0xA4, "LDY", opLDY, ZeroPage, amZeroPage, 3, false)
	set(0xB4, "LDY", opLDY, ZeroPageX, amZeroPageX, 4, false)
	set(0xAC, "LDY", opLDY, Absolute, amAbsolute, 4, false)
	set(0xBC, "LDY", opLDY, AbsoluteX, amAbsoluteX, 4, true)

	// STA
	set(0x85, "STA", opSTA, ZeroPage, amZeroPage, 3, false)
	set(0x95, "STA", opSTA, ZeroPageX, amZeroPageX, 4, false)
	set(0x8D, "STA", opSTA, Absolute, amAbsolute, 4, false)
	set(0x9D, "STA", opSTA, AbsoluteX, amAbsoluteX, 5, false)
	set(0x99, "STA", opSTA, AbsoluteY, amAbsoluteY, 5, false)
	set(0x81, "STA", opSTA, IndexedIndirect, amIndexedIndirect, 6, false)
	set(0x91, "STA", opSTA, IndirectIndexed, amIndirectIndexed, 6, false)

	// STX / STY
	set(0x86, "STX", opSTX, ZeroPage, amZeroPage, 3, false)
	set(0x96, "STX", opSTX, ZeroPageY, amZeroPageY, 4, false)
	set(0x8E, "STX", opSTX, Absolute, amAbsolute, 4, false)
	set(0x84, "STY", opSTY, ZeroPage, amZeroPage, 3, false)
	set(0x94, "STY", opSTY, ZeroPageX, amZeroPageX, 4, false)
	set(0x8C, "STY", opSTY, Absolute, amAbsolute, 4, false)

	// ADC
	set(0x69, "ADC", opADC, Immediate, amImmediate, 2, false)
	set(0x65, "ADC", opADC, ZeroPage, amZeroPage, 3, false)
	set(0x75, "ADC", opADC, ZeroPageX, amZeroPageX, 4, false)
	set(0x6D, "ADC", opADC, Absolute, amAbsolute, 4, false)
	set(0x7D, "ADC", opADC, AbsoluteX, amAbsoluteX, 4, true)
	set(0x79, "ADC", opADC, AbsoluteY, amAbsoluteY, 4, true)
	set(0x61, "ADC", opADC, IndexedIndirect, amIndexedIndirect, 6, false)
	set(0x71, "ADC", opADC, IndirectIndexed, amIndirectIndexed, 5, true)

	// SBC
	set(0xE9, "SBC", opSBC, Immediate, amImmediate, 2, false)
	set(0xE5, "SBC", opSBC, ZeroPage, amZeroPage, 3, false)
	set(0xF5, "SBC", opSBC, ZeroPageX, amZeroPageX, 4, false)
	set(0xED, "SBC", opSBC, Absolute, amAbsolute, 4, false)
	set(0xFD, "SBC", opSBC, AbsoluteX, amAbsoluteX, 4, true)
	set(0xF9, "SBC", opSBC, AbsoluteY, amAbsoluteY, 4, true)
	set(0xE1, "SBC", opSBC, IndexedIndirect, amIndexedIndirect, 6, false)
	set(0xF1, "SBC", opSBC, IndirectIndexed, amIndirectIndexed, 5, true)

	// AND
	set(0x29, "AND", opAND, Immediate, amImmediate, 2, false)
	set(0x25, "AND", opAND, ZeroPage, amZeroPage, 3, false)
	set(0x35, "AND", opAND, ZeroPageX, amZeroPageX, 4, false)
	set(0x2D, "AND", opAND, Absolute, amAbsolute, 4, false)
	set(0x3D, "AND", opAND, AbsoluteX, amAbsoluteX, 4, true)
	set(0x39, "AND", opAND, AbsoluteY, amAbsoluteY, 4, true)
	set(0x21, "AND", opAND, IndexedIndirect, amIndexedIndirect, 6, false)
	set(0x31, "AND", opAND, IndirectIndexed, amIndirectIndexed, 5, true)

	// ORA
	set(0x09, "ORA", opORA, Immediate, amImmediate, 2, false)
	set(0x05, "ORA", opORA, ZeroPage, amZeroPage, 3, false)
	set(0x15, "ORA", opORA, ZeroPageX, amZeroPageX, 4, false)
	set(0x0D, "ORA", opORA, Absolute, amAbsolute, 4, false)
	set(0x1D, "ORA", opORA, AbsoluteX, amAbsoluteX, 4, true)
	set(0x19, "ORA", opORA, AbsoluteY, amAbsoluteY, 4, true)
	set(0x01, "ORA", opORA, IndexedIndirect, amIndexedIndirect, 6, false)
	set(0x11, "ORA", opORA, IndirectIndexed, amIndirectIndexed, 5, true)

	// EOR
	set(0x49, "EOR", opEOR, Immediate, amImmediate, 2, false)
	set(0x45, "EOR", opEOR, ZeroPage, amZeroPage, 3, false)
	set(0x55, "EOR", opEOR, ZeroPageX, amZeroPageX, 4, false)
	set(0x4D, "EOR", opEOR, Absolute, amAbsolute, 4, false)
	set(0x5D, "EOR", opEOR, AbsoluteX, amAbsoluteX, 4, true)
	set(0x59, "EOR", opEOR, AbsoluteY, amAbsoluteY, 4, true)
	set(0x41, "EOR", opEOR, IndexedIndirect, amIndexedIndirect, 6, false)
	set(0x51, "EOR", opEOR, IndirectIndexed, amIndirectIndexed, 5, true)

	// CMP
	set(0xC9, "CMP", opCMP, Immediate, amImmediate, 2, false)
	set(0xC5, "CMP", opCMP, ZeroPage, amZeroPage, 3, false)
	set(0xD5, "CMP", opCMP, ZeroPageX, amZeroPageX, 4, false)
	set(0xCD, "CMP", opCMP, Absolute, amAbsolute, 4, false)
	set(0xDD, "CMP", opCMP, AbsoluteX, amAbsoluteX, 4, true)
	set(0xD9, "CMP", opCMP, AbsoluteY, amAbsoluteY, 4, true)
	set(0xC1, "CMP", opCMP, IndexedIndirect, amIndexedIndirect, 6, false)
	set(0xD1, "CMP", opCMP, IndirectIndexed, amIndirectIndexed, 5, true)

	// CPX / CPY
	set(0xE0, "CPX", opCPX, Immediate, amImmediate, 2, false)
	set(0xE4, "CPX", opCPX, ZeroPage, amZeroPage, 3, false)
	set(0xEC, "CPX", opCPX, Absolute, amAbsolute, 4, false)
	set(0xC0, "CPY", opCPY, Immediate, amImmediate, 2, false)
	set(0xC4, "CPY", opCPY, ZeroPage, amZeroPage, 3, false)
	set(0xCC, "CPY", opCPY, Absolute, amAbsolute, 4, false)

	// BIT
	set(0x24, "BIT", opBIT, ZeroPage, amZeroPage, 3, false)
	set(0x2C, "BIT", opBIT, Absolute, amAbsolute, 4, false)

	// INC / DEC
	set(0xE6, "INC", opINC, ZeroPage, amZeroPage, 5, false)
	set(0xF6, "INC", opINC, ZeroPageX, amZeroPageX, 6, false)
	set(0xEE, "INC", opINC, Absolute, amAbsolute, 6, false)
	set(0xFE, "INC", opINC, AbsoluteX, amAbsoluteX, 7, false)
	set(0xC6, "DEC", opDEC, ZeroPage, amZeroPage, 5, false)
	set(0xD6, "DEC", opDEC, ZeroPageX, amZeroPageX, 6, false)
	set(0xCE, "DEC", opDEC, Absolute, amAbsolute, 6, false)
	set(0xDE, "DEC", opDEC, AbsoluteX, amAbsoluteX, 7, false)

	// ASL
	set(0x0A, "ASL", opASL, Accumulator, nil, 2, false)
	set(0x06, "ASL", opASL, ZeroPage, amZeroPage, 5, false)
	set(0x16, "ASL", opASL, ZeroPageX, amZeroPageX, 6, false)
	set(0x0E, "ASL", opASL, Absolute, amAbsolute, 6, false)
	set(0x1E, "ASL", opASL, AbsoluteX, amAbsoluteX, 7, false)

	// LSR
	set(0x4A, "LSR", opLSR, Accumulator, nil, 2, false)
	set(0x46, "LSR", opLSR, ZeroPage, amZeroPage, 5, false)
	set(0x56, "LSR", opLSR, ZeroPageX, amZeroPageX, 6, false)
	set(0x4E, "LSR", opLSR, Absolute, amAbsolute, 6, false)
	set(0x5E, "LSR", opLSR, AbsoluteX, amAbsoluteX, 7, false)

	// ROL
	set(0x2A, "ROL", opROL, Accumulator, nil, 2, false)
	set(0x26, "ROL", opROL, ZeroPage, amZeroPage, 5, false)
	set(0x36, "ROL", opROL, ZeroPageX, amZeroPageX, 6, false)
	set(0x2E, "ROL", opROL, Absolute, amAbsolute, 6, false)
	set(0x3E, "ROL", opROL, AbsoluteX, amAbsoluteX, 7, false)

	// ROR
	set(0x6A, "ROR", opROR, Accumulator, nil, 2, false)
	set(0x66, "ROR", opROR, ZeroPage, amZeroPage, 5, false)
	set(0x76, "ROR", opROR, ZeroPageX, amZeroPageX, 6, false)
	set(0x6E, "ROR", opROR, Absolute, amAbsolute, 6, false)
	set(0x7E, "ROR", opROR, AbsoluteX, amAbsoluteX, 7, false)

	return t
}

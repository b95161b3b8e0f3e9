package nes

import "fmt"

// Disassemble decodes every instruction whose opcode byte lies in
// [startAddr, endAddr], returning a map from the address of each
// instruction's opcode byte to its textual form. It never touches CPU or
// Bus state beyond reading memory -- PC, registers and mapped I/O side
// effects (such as PPU register reads) are untouched.
func (c *CPU) Disassemble(startAddr, endAddr uint16) map[uint16]string {
	out := make(map[uint16]string)

	addr := startAddr
	for addr <= endAddr {
		opcode := c.bus.Read(addr)
		inst := c.decode[opcode]
		if inst.op == nil {
			out[addr] = fmt.Sprintf(".byte $%02X", opcode)
			if addr == 0xFFFF {
				break
			}
			addr++
			continue
		}

		start := addr
		text, size := disasmOperand(c, inst, addr+1)
		out[start] = fmt.Sprintf("%s %s", inst.mnemonic, text)

		if addr >= endAddr-uint16(size) {
			break
		}
		addr += uint16(size) + 1
	}

	return out
}

// disasmOperand renders an instruction's operand text given the address
// immediately following its opcode byte, and reports the operand's size in
// bytes (0 for Implied/Accumulator).
func disasmOperand(c *CPU, inst instruction, operandAddr uint16) (string, int) {
	switch inst.mode {
	case Implied:
		return "", 0
	case Accumulator:
		return "A", 0
	case Immediate:
		return fmt.Sprintf("#$%02X", c.bus.Read(operandAddr)), 1
	case Relative:
		disp := int8(c.bus.Read(operandAddr))
		dest := operandAddr + 1 + uint16(disp)
		return fmt.Sprintf("$%04X", dest), 1
	case ZeroPage:
		return fmt.Sprintf("$%02X", c.bus.Read(operandAddr)), 1
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", c.bus.Read(operandAddr)), 1
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", c.bus.Read(operandAddr)), 1
	case Absolute:
		return fmt.Sprintf("$%04X", c.bus.ReadWord(operandAddr)), 2
	case AbsoluteX:
		return fmt.Sprintf("$%04X,X", c.bus.ReadWord(operandAddr)), 2
	case AbsoluteY:
		return fmt.Sprintf("$%04X,Y", c.bus.ReadWord(operandAddr)), 2
	case Indirect:
		return fmt.Sprintf("($%04X)", c.bus.ReadWord(operandAddr)), 2
	case IndexedIndirect:
		return fmt.Sprintf("($%02X,X)", c.bus.Read(operandAddr)), 1
	case IndirectIndexed:
		return fmt.Sprintf("($%02X),Y", c.bus.Read(operandAddr)), 1
	default:
		return "", 0
	}
}

// flagLetters renders P as the eight flag letters N V U B D I Z C, one per
// bit from 7 down to 0, uppercase where the bit is set and a dash where
// it's clear.
func flagLetters(p uint8) string {
	bits := []struct {
		mask   uint8
		letter byte
	}{
		{FlagN, 'N'}, {FlagV, 'V'}, {FlagU, 'U'}, {FlagB, 'B'},
		{FlagD, 'D'}, {FlagI, 'I'}, {FlagZ, 'Z'}, {FlagC, 'C'},
	}
	out := make([]byte, len(bits))
	for i, b := range bits {
		if p&b.mask != 0 {
			out[i] = b.letter
		} else {
			out[i] = '-'
		}
	}
	return string(out)
}

// TraceLine formats the single-line execution trace emitted by the CLI
// driver's --trace flag: the PC and raw opcode byte about to be fetched,
// the decoded mnemonic (no operand), the register file, the flags spelled out
// as letters alongside their raw bit pattern, and the running cycle
// count. Diagnostic only; not parsed by anything in this repository.
func (c *CPU) TraceLine() string {
	pc := c.PC
	opcode := c.bus.Read(pc)
	inst := c.decode[opcode]

	mnemonic := inst.mnemonic
	if inst.op == nil {
		mnemonic = ".byte"
	}

	return fmt.Sprintf("%04X %s %02X  a:%02X  x:%02X  y:%02X  sp:%02X  flags:%s(%02X)  cycles:%d",
		pc, mnemonic, opcode, c.A, c.X, c.Y, c.S, flagLetters(c.P), c.P, c.CycleCount)
}

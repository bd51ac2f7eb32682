package cpu65c02

import "lynxcore/internal/lynxtype"

// execute decodes and runs one instruction. Unimplemented opcodes behave as
// NOPs consuming the documented number of operand bytes: two
// bytes for $02/$22/$42/$62/$82/$C2/$E2/$44, three bytes for $5C/$DC/$FC,
// one byte otherwise.
func (c *CPU) execute(opcode uint8) {
	switch opcode {
	// ---- Control flow ----
	case 0x00: // BRK
		c.Bus.Read(c.PC)
		c.PC++
		c.pushWord(c.PC)
		c.push(c.PS | lynxtype.FlagB | lynxtype.FlagU)
		c.setFlag(lynxtype.FlagI, true)
		c.setFlag(lynxtype.FlagD, false)
		lo := c.Bus.Read(lynxtype.IrqVectorLow)
		hi := c.Bus.Read(lynxtype.IrqVectorLow + 1)
		c.PC = uint16(lo) | uint16(hi)<<8
	case 0x4C: // JMP abs
		c.PC = c.addrAbsolute()
	case 0x6C: // JMP (abs)
		c.PC = c.addrIndirectAbs()
	case 0x7C: // JMP (abs,X)
		c.PC = c.addrIndirectAbsX()
	case 0x20: // JSR abs
		lo := c.fetchByte()
		c.Bus.Read(0x0100 | uint16(c.SP))
		retAddr := c.PC
		c.pushWord(retAddr)
		hi := c.fetchByte()
		c.PC = uint16(lo) | uint16(hi)<<8
	case 0x60: // RTS
		c.dummyRead()
		c.Bus.Read(0x0100 | uint16(c.SP))
		addr := c.popWord()
		c.Bus.Read(addr)
		c.PC = addr + 1
	case 0x40: // RTI
		c.dummyRead()
		c.Bus.Read(0x0100 | uint16(c.SP))
		c.PS = (c.pop() &^ lynxtype.FlagB) | lynxtype.FlagU
		c.PC = c.popWord()
	case 0xCB: // WAI
		c.dummyRead()
		c.dummyRead()
		c.StopState = lynxtype.WaitingForIrq
	case 0xDB: // STP
		c.dummyRead()
		c.dummyRead()
		c.StopState = lynxtype.Stopped

	// ---- Branches ----
	case 0x10:
		c.branch(!c.flag(lynxtype.FlagN))
	case 0x30:
		c.branch(c.flag(lynxtype.FlagN))
	case 0x50:
		c.branch(!c.flag(lynxtype.FlagV))
	case 0x70:
		c.branch(c.flag(lynxtype.FlagV))
	case 0x90:
		c.branch(!c.flag(lynxtype.FlagC))
	case 0xB0:
		c.branch(c.flag(lynxtype.FlagC))
	case 0xD0:
		c.branch(!c.flag(lynxtype.FlagZ))
	case 0xF0:
		c.branch(c.flag(lynxtype.FlagZ))
	case 0x80: // BRA
		c.branch(true)

	// ---- Flags ----
	case 0x18:
		c.dummyRead()
		c.setFlag(lynxtype.FlagC, false)
	case 0x38:
		c.dummyRead()
		c.setFlag(lynxtype.FlagC, true)
	case 0x58:
		c.dummyRead()
		c.setFlag(lynxtype.FlagI, false)
	case 0x78:
		c.dummyRead()
		c.setFlag(lynxtype.FlagI, true)
	case 0xB8:
		c.dummyRead()
		c.setFlag(lynxtype.FlagV, false)
	case 0xD8:
		c.dummyRead()
		c.setFlag(lynxtype.FlagD, false)
	case 0xF8:
		c.dummyRead()
		c.setFlag(lynxtype.FlagD, true)

	// ---- Stack ----
	case 0x48: // PHA
		c.dummyRead()
		c.push(c.A)
	case 0x68: // PLA
		c.dummyRead()
		c.Bus.Read(0x0100 | uint16(c.SP))
		c.A = c.pop()
		c.setZN(c.A)
	case 0x08: // PHP
		c.dummyRead()
		c.push(c.PS | lynxtype.FlagB | lynxtype.FlagU)
	case 0x28: // PLP
		c.dummyRead()
		c.Bus.Read(0x0100 | uint16(c.SP))
		c.PS = (c.pop() &^ lynxtype.FlagB) | lynxtype.FlagU
	case 0xDA: // PHX
		c.dummyRead()
		c.push(c.X)
	case 0xFA: // PLX
		c.dummyRead()
		c.Bus.Read(0x0100 | uint16(c.SP))
		c.X = c.pop()
		c.setZN(c.X)
	case 0x5A: // PHY
		c.dummyRead()
		c.push(c.Y)
	case 0x7A: // PLY
		c.dummyRead()
		c.Bus.Read(0x0100 | uint16(c.SP))
		c.Y = c.pop()
		c.setZN(c.Y)
	case 0x9A: // TXS
		c.dummyRead()
		c.SP = c.X
	case 0xBA: // TSX
		c.dummyRead()
		c.X = c.SP
		c.setZN(c.X)

	// ---- Register transfers ----
	case 0xAA: // TAX
		c.dummyRead()
		c.X = c.A
		c.setZN(c.X)
	case 0x8A: // TXA
		c.dummyRead()
		c.A = c.X
		c.setZN(c.A)
	case 0xA8: // TAY
		c.dummyRead()
		c.Y = c.A
		c.setZN(c.Y)
	case 0x98: // TYA
		c.dummyRead()
		c.A = c.Y
		c.setZN(c.A)

	// ---- Increments / decrements ----
	case 0xE8:
		c.dummyRead()
		c.X++
		c.setZN(c.X)
	case 0xCA:
		c.dummyRead()
		c.X--
		c.setZN(c.X)
	case 0xC8:
		c.dummyRead()
		c.Y++
		c.setZN(c.Y)
	case 0x88:
		c.dummyRead()
		c.Y--
		c.setZN(c.Y)
	case 0x1A: // INC A
		c.dummyRead()
		c.A++
		c.setZN(c.A)
	case 0x3A: // DEC A
		c.dummyRead()
		c.A--
		c.setZN(c.A)
	case 0xE6:
		c.rmw(c.addrZeroPage(), func(v uint8) uint8 { v++; c.setZN(v); return v })
	case 0xF6:
		c.rmw(c.addrZeroPageIndexed(c.X), func(v uint8) uint8 { v++; c.setZN(v); return v })
	case 0xEE:
		c.rmw(c.addrAbsolute(), func(v uint8) uint8 { v++; c.setZN(v); return v })
	case 0xFE:
		c.rmw(c.addrAbsoluteIndexed(c.X, true), func(v uint8) uint8 { v++; c.setZN(v); return v })
	case 0xC6:
		c.rmw(c.addrZeroPage(), func(v uint8) uint8 { v--; c.setZN(v); return v })
	case 0xD6:
		c.rmw(c.addrZeroPageIndexed(c.X), func(v uint8) uint8 { v--; c.setZN(v); return v })
	case 0xCE:
		c.rmw(c.addrAbsolute(), func(v uint8) uint8 { v--; c.setZN(v); return v })
	case 0xDE:
		c.rmw(c.addrAbsoluteIndexed(c.X, true), func(v uint8) uint8 { v--; c.setZN(v); return v })

	// ---- Shifts / rotates ----
	case 0x0A:
		c.dummyRead()
		c.A = c.asl(c.A)
	case 0x06:
		c.rmw(c.addrZeroPage(), c.asl)
	case 0x16:
		c.rmw(c.addrZeroPageIndexed(c.X), c.asl)
	case 0x0E:
		c.rmw(c.addrAbsolute(), c.asl)
	case 0x1E:
		c.rmw(c.addrAbsoluteIndexed(c.X, true), c.asl)
	case 0x4A:
		c.dummyRead()
		c.A = c.lsr(c.A)
	case 0x46:
		c.rmw(c.addrZeroPage(), c.lsr)
	case 0x56:
		c.rmw(c.addrZeroPageIndexed(c.X), c.lsr)
	case 0x4E:
		c.rmw(c.addrAbsolute(), c.lsr)
	case 0x5E:
		c.rmw(c.addrAbsoluteIndexed(c.X, true), c.lsr)
	case 0x2A:
		c.dummyRead()
		c.A = c.rol(c.A)
	case 0x26:
		c.rmw(c.addrZeroPage(), c.rol)
	case 0x36:
		c.rmw(c.addrZeroPageIndexed(c.X), c.rol)
	case 0x2E:
		c.rmw(c.addrAbsolute(), c.rol)
	case 0x3E:
		c.rmw(c.addrAbsoluteIndexed(c.X, true), c.rol)
	case 0x6A:
		c.dummyRead()
		c.A = c.ror(c.A)
	case 0x66:
		c.rmw(c.addrZeroPage(), c.ror)
	case 0x76:
		c.rmw(c.addrZeroPageIndexed(c.X), c.ror)
	case 0x6E:
		c.rmw(c.addrAbsolute(), c.ror)
	case 0x7E:
		c.rmw(c.addrAbsoluteIndexed(c.X, true), c.ror)

	// ---- TRB / TSB (65C02) ----
	case 0x04:
		c.rmw(c.addrZeroPage(), c.tsb)
	case 0x0C:
		c.rmw(c.addrAbsolute(), c.tsb)
	case 0x14:
		c.rmw(c.addrZeroPage(), c.trb)
	case 0x1C:
		c.rmw(c.addrAbsolute(), c.trb)

	// ---- STZ (65C02) ----
	case 0x64:
		c.Bus.Write(c.addrZeroPage(), 0)
	case 0x74:
		c.Bus.Write(c.addrZeroPageIndexed(c.X), 0)
	case 0x9C:
		c.Bus.Write(c.addrAbsolute(), 0)
	case 0x9E:
		c.Bus.Write(c.addrAbsoluteIndexed(c.X, true), 0)

	// ---- BIT ----
	case 0x89:
		c.bit(c.fetchByte(), true)
	case 0x24:
		c.bit(c.Bus.Read(c.addrZeroPage()), false)
	case 0x34:
		c.bit(c.Bus.Read(c.addrZeroPageIndexed(c.X)), false)
	case 0x2C:
		c.bit(c.Bus.Read(c.addrAbsolute()), false)
	case 0x3C:
		c.bit(c.Bus.Read(c.addrAbsoluteIndexed(c.X, false)), false)

	// ---- LDA ----
	case 0xA9:
		c.A = c.fetchByte()
		c.setZN(c.A)
	case 0xA5:
		c.A = c.Bus.Read(c.addrZeroPage())
		c.setZN(c.A)
	case 0xB5:
		c.A = c.Bus.Read(c.addrZeroPageIndexed(c.X))
		c.setZN(c.A)
	case 0xAD:
		c.A = c.Bus.Read(c.addrAbsolute())
		c.setZN(c.A)
	case 0xBD:
		c.A = c.Bus.Read(c.addrAbsoluteIndexed(c.X, false))
		c.setZN(c.A)
	case 0xB9:
		c.A = c.Bus.Read(c.addrAbsoluteIndexed(c.Y, false))
		c.setZN(c.A)
	case 0xA1:
		c.A = c.Bus.Read(c.addrIndirectX())
		c.setZN(c.A)
	case 0xB1:
		c.A = c.Bus.Read(c.addrIndirectY(false))
		c.setZN(c.A)
	case 0xB2: // LDA (zp)
		c.A = c.Bus.Read(c.addrZeroPageIndirect())
		c.setZN(c.A)

	// ---- LDX ----
	case 0xA2:
		c.X = c.fetchByte()
		c.setZN(c.X)
	case 0xA6:
		c.X = c.Bus.Read(c.addrZeroPage())
		c.setZN(c.X)
	case 0xB6:
		c.X = c.Bus.Read(c.addrZeroPageIndexed(c.Y))
		c.setZN(c.X)
	case 0xAE:
		c.X = c.Bus.Read(c.addrAbsolute())
		c.setZN(c.X)
	case 0xBE:
		c.X = c.Bus.Read(c.addrAbsoluteIndexed(c.Y, false))
		c.setZN(c.X)

	// ---- LDY ----
	case 0xA0:
		c.Y = c.fetchByte()
		c.setZN(c.Y)
	case 0xA4:
		c.Y = c.Bus.Read(c.addrZeroPage())
		c.setZN(c.Y)
	case 0xB4:
		c.Y = c.Bus.Read(c.addrZeroPageIndexed(c.X))
		c.setZN(c.Y)
	case 0xAC:
		c.Y = c.Bus.Read(c.addrAbsolute())
		c.setZN(c.Y)
	case 0xBC:
		c.Y = c.Bus.Read(c.addrAbsoluteIndexed(c.X, false))
		c.setZN(c.Y)

	// ---- STA ----
	case 0x85:
		c.Bus.Write(c.addrZeroPage(), c.A)
	case 0x95:
		c.Bus.Write(c.addrZeroPageIndexed(c.X), c.A)
	case 0x8D:
		c.Bus.Write(c.addrAbsolute(), c.A)
	case 0x9D:
		c.Bus.Write(c.addrAbsoluteIndexed(c.X, true), c.A)
	case 0x99:
		c.Bus.Write(c.addrAbsoluteIndexed(c.Y, true), c.A)
	case 0x81:
		c.Bus.Write(c.addrIndirectX(), c.A)
	case 0x91:
		c.Bus.Write(c.addrIndirectY(true), c.A)
	case 0x92: // STA (zp)
		c.Bus.Write(c.addrZeroPageIndirect(), c.A)

	// ---- STX / STY ----
	case 0x86:
		c.Bus.Write(c.addrZeroPage(), c.X)
	case 0x96:
		c.Bus.Write(c.addrZeroPageIndexed(c.Y), c.X)
	case 0x8E:
		c.Bus.Write(c.addrAbsolute(), c.X)
	case 0x84:
		c.Bus.Write(c.addrZeroPage(), c.Y)
	case 0x94:
		c.Bus.Write(c.addrZeroPageIndexed(c.X), c.Y)
	case 0x8C:
		c.Bus.Write(c.addrAbsolute(), c.Y)

	// ---- Compares ----
	case 0xC9:
		c.compare(c.A, c.fetchByte())
	case 0xC5:
		c.compare(c.A, c.Bus.Read(c.addrZeroPage()))
	case 0xD5:
		c.compare(c.A, c.Bus.Read(c.addrZeroPageIndexed(c.X)))
	case 0xCD:
		c.compare(c.A, c.Bus.Read(c.addrAbsolute()))
	case 0xDD:
		c.compare(c.A, c.Bus.Read(c.addrAbsoluteIndexed(c.X, false)))
	case 0xD9:
		c.compare(c.A, c.Bus.Read(c.addrAbsoluteIndexed(c.Y, false)))
	case 0xC1:
		c.compare(c.A, c.Bus.Read(c.addrIndirectX()))
	case 0xD1:
		c.compare(c.A, c.Bus.Read(c.addrIndirectY(false)))
	case 0xD2:
		c.compare(c.A, c.Bus.Read(c.addrZeroPageIndirect()))
	case 0xE0:
		c.compare(c.X, c.fetchByte())
	case 0xE4:
		c.compare(c.X, c.Bus.Read(c.addrZeroPage()))
	case 0xEC:
		c.compare(c.X, c.Bus.Read(c.addrAbsolute()))
	case 0xC0:
		c.compare(c.Y, c.fetchByte())
	case 0xC4:
		c.compare(c.Y, c.Bus.Read(c.addrZeroPage()))
	case 0xCC:
		c.compare(c.Y, c.Bus.Read(c.addrAbsolute()))

	// ---- Logical / arithmetic with A ----
	case 0x29:
		c.A &= c.fetchByte()
		c.setZN(c.A)
	case 0x25:
		c.A &= c.Bus.Read(c.addrZeroPage())
		c.setZN(c.A)
	case 0x35:
		c.A &= c.Bus.Read(c.addrZeroPageIndexed(c.X))
		c.setZN(c.A)
	case 0x2D:
		c.A &= c.Bus.Read(c.addrAbsolute())
		c.setZN(c.A)
	case 0x3D:
		c.A &= c.Bus.Read(c.addrAbsoluteIndexed(c.X, false))
		c.setZN(c.A)
	case 0x39:
		c.A &= c.Bus.Read(c.addrAbsoluteIndexed(c.Y, false))
		c.setZN(c.A)
	case 0x21:
		c.A &= c.Bus.Read(c.addrIndirectX())
		c.setZN(c.A)
	case 0x31:
		c.A &= c.Bus.Read(c.addrIndirectY(false))
		c.setZN(c.A)
	case 0x32:
		c.A &= c.Bus.Read(c.addrZeroPageIndirect())
		c.setZN(c.A)

	case 0x09:
		c.A |= c.fetchByte()
		c.setZN(c.A)
	case 0x05:
		c.A |= c.Bus.Read(c.addrZeroPage())
		c.setZN(c.A)
	case 0x15:
		c.A |= c.Bus.Read(c.addrZeroPageIndexed(c.X))
		c.setZN(c.A)
	case 0x0D:
		c.A |= c.Bus.Read(c.addrAbsolute())
		c.setZN(c.A)
	case 0x1D:
		c.A |= c.Bus.Read(c.addrAbsoluteIndexed(c.X, false))
		c.setZN(c.A)
	case 0x19:
		c.A |= c.Bus.Read(c.addrAbsoluteIndexed(c.Y, false))
		c.setZN(c.A)
	case 0x01:
		c.A |= c.Bus.Read(c.addrIndirectX())
		c.setZN(c.A)
	case 0x11:
		c.A |= c.Bus.Read(c.addrIndirectY(false))
		c.setZN(c.A)
	case 0x12:
		c.A |= c.Bus.Read(c.addrZeroPageIndirect())
		c.setZN(c.A)

	case 0x49:
		c.A ^= c.fetchByte()
		c.setZN(c.A)
	case 0x45:
		c.A ^= c.Bus.Read(c.addrZeroPage())
		c.setZN(c.A)
	case 0x55:
		c.A ^= c.Bus.Read(c.addrZeroPageIndexed(c.X))
		c.setZN(c.A)
	case 0x4D:
		c.A ^= c.Bus.Read(c.addrAbsolute())
		c.setZN(c.A)
	case 0x5D:
		c.A ^= c.Bus.Read(c.addrAbsoluteIndexed(c.X, false))
		c.setZN(c.A)
	case 0x59:
		c.A ^= c.Bus.Read(c.addrAbsoluteIndexed(c.Y, false))
		c.setZN(c.A)
	case 0x41:
		c.A ^= c.Bus.Read(c.addrIndirectX())
		c.setZN(c.A)
	case 0x51:
		c.A ^= c.Bus.Read(c.addrIndirectY(false))
		c.setZN(c.A)
	case 0x52:
		c.A ^= c.Bus.Read(c.addrZeroPageIndirect())
		c.setZN(c.A)

	case 0x69:
		c.adc(c.fetchByte())
	case 0x65:
		c.adc(c.Bus.Read(c.addrZeroPage()))
	case 0x75:
		c.adc(c.Bus.Read(c.addrZeroPageIndexed(c.X)))
	case 0x6D:
		c.adc(c.Bus.Read(c.addrAbsolute()))
	case 0x7D:
		c.adc(c.Bus.Read(c.addrAbsoluteIndexed(c.X, false)))
	case 0x79:
		c.adc(c.Bus.Read(c.addrAbsoluteIndexed(c.Y, false)))
	case 0x61:
		c.adc(c.Bus.Read(c.addrIndirectX()))
	case 0x71:
		c.adc(c.Bus.Read(c.addrIndirectY(false)))
	case 0x72:
		c.adc(c.Bus.Read(c.addrZeroPageIndirect()))

	case 0xE9:
		c.sbc(c.fetchByte())
	case 0xE5:
		c.sbc(c.Bus.Read(c.addrZeroPage()))
	case 0xF5:
		c.sbc(c.Bus.Read(c.addrZeroPageIndexed(c.X)))
	case 0xED:
		c.sbc(c.Bus.Read(c.addrAbsolute()))
	case 0xFD:
		c.sbc(c.Bus.Read(c.addrAbsoluteIndexed(c.X, false)))
	case 0xF9:
		c.sbc(c.Bus.Read(c.addrAbsoluteIndexed(c.Y, false)))
	case 0xE1:
		c.sbc(c.Bus.Read(c.addrIndirectX()))
	case 0xF1:
		c.sbc(c.Bus.Read(c.addrIndirectY(false)))
	case 0xF2:
		c.sbc(c.Bus.Read(c.addrZeroPageIndirect()))

	case 0xEA: // NOP
		c.dummyRead()

	// ---- Explicit multi-byte NOPs ----
	case 0x02, 0x22, 0x42, 0x62, 0x82, 0xC2, 0xE2, 0x44:
		c.fetchByte()
	case 0x5C, 0xDC, 0xFC:
		c.fetchByte()
		c.fetchByte()

	default:
		// Unimplemented opcode: one-byte NOP.
		c.dummyRead()
	}
}

func (c *CPU) tsb(v uint8) uint8 {
	c.setFlag(lynxtype.FlagZ, c.A&v == 0)
	return v | c.A
}

func (c *CPU) trb(v uint8) uint8 {
	c.setFlag(lynxtype.FlagZ, c.A&v == 0)
	return v &^ c.A
}

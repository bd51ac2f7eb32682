package cpu65c02

// dummyRead charges the spare cycle implied/accumulator instructions and
// internal operations spend re-reading the next opcode byte.
func (c *CPU) dummyRead() {
	c.Bus.Read(c.PC)
}

// fetchByte reads the byte at PC and advances PC.
func (c *CPU) fetchByte() uint8 {
	v := c.Bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(lo) | uint16(hi)<<8
}

// addrZeroPage resolves a single-byte zero-page address.
func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetchByte())
}

// addrZeroPageIndexed resolves zp,X or zp,Y. The hardware reads the
// unindexed zero-page address once before adding the index.
func (c *CPU) addrZeroPageIndexed(index uint8) uint16 {
	zp := c.fetchByte()
	c.Bus.Read(uint16(zp))
	return uint16(zp + index)
}

func (c *CPU) addrAbsolute() uint16 {
	return c.fetchWord()
}

// addrAbsoluteIndexed resolves abs,X or abs,Y. Write-mode callers (STA/
// STX/STY/RMW and the *W variants) always pay the page-cross penalty read;
// read-mode callers only pay it when the index actually crosses a page.
func (c *CPU) addrAbsoluteIndexed(index uint8, alwaysPenalty bool) uint16 {
	base := c.fetchWord()
	eff := base + uint16(index)
	crossed := (base & 0xFF00) != (eff & 0xFF00)
	if alwaysPenalty || crossed {
		wrong := (base & 0xFF00) | uint16(uint8(base)+index)
		c.Bus.Read(wrong)
	}
	return eff
}

// addrIndirectX resolves (zp,X).
func (c *CPU) addrIndirectX() uint16 {
	zp := c.fetchByte()
	c.Bus.Read(uint16(zp))
	ptr := zp + c.X
	lo := c.Bus.Read(uint16(ptr))
	hi := c.Bus.Read(uint16(ptr + 1))
	return uint16(lo) | uint16(hi)<<8
}

// addrIndirectY resolves (zp),Y.
func (c *CPU) addrIndirectY(alwaysPenalty bool) uint16 {
	zp := c.fetchByte()
	lo := c.Bus.Read(uint16(zp))
	hi := c.Bus.Read(uint16(zp + 1))
	base := uint16(lo) | uint16(hi)<<8
	eff := base + uint16(c.Y)
	crossed := (base & 0xFF00) != (eff & 0xFF00)
	if alwaysPenalty || crossed {
		wrong := (base & 0xFF00) | uint16(uint8(base)+c.Y)
		c.Bus.Read(wrong)
	}
	return eff
}

// addrZeroPageIndirect resolves the 65C02 (zp) mode.
func (c *CPU) addrZeroPageIndirect() uint16 {
	zp := c.fetchByte()
	lo := c.Bus.Read(uint16(zp))
	hi := c.Bus.Read(uint16(zp + 1))
	return uint16(lo) | uint16(hi)<<8
}

// addrIndirectAbs resolves JMP (abs). The 65C02 fixes the NMOS page-wrap
// bug: the high-byte fetch correctly crosses into the next page instead of
// wrapping within the low page, at the cost of one extra cycle.
func (c *CPU) addrIndirectAbs() uint16 {
	ptr := c.fetchWord()
	c.Bus.Read(c.PC - 1)
	lo := c.Bus.Read(ptr)
	hi := c.Bus.Read(ptr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// addrIndirectAbsX resolves JMP (abs,X), a 65C02 addition.
func (c *CPU) addrIndirectAbsX() uint16 {
	base := c.fetchWord()
	c.Bus.Read(c.PC - 1)
	ptr := base + uint16(c.X)
	lo := c.Bus.Read(ptr)
	hi := c.Bus.Read(ptr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// branch evaluates a relative branch, paying the taken/page-cross penalty
// cycles the hardware charges.
func (c *CPU) branch(taken bool) {
	offset := int8(c.fetchByte())
	if !taken {
		return
	}
	c.Bus.Read(c.PC)
	oldPC := c.PC
	newPC := uint16(int32(c.PC) + int32(offset))
	if oldPC&0xFF00 != newPC&0xFF00 {
		c.Bus.Read(newPC)
	}
	c.PC = newPC
}

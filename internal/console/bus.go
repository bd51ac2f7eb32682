package console

import (
	"lynxcore/internal/apu"
	"lynxcore/internal/lynxtype"
	"lynxcore/internal/membus"
)

// Read implements cpu65c02.Bus: every call charges exactly one cycle to the
// CPU's shared counter before resolving the overlay.
func (c *Console) Read(addr uint16) uint8 {
	c.CPU.Tick()
	return c.dispatchRead(addr, true)
}

// Write implements cpu65c02.Bus.
func (c *Console) Write(addr uint16, v uint8) {
	c.CPU.Tick()
	c.dispatchWrite(addr, v)
}

// Peek performs the side-effect-free read debuggers use: identical
// decoding, no cycle charge, and no mutation of
// cartridge auto-increment state or UART RXRDY.
func (c *Console) Peek(addr uint16) uint8 {
	return c.dispatchRead(addr, false)
}

func (c *Console) dispatchRead(addr uint16, sideEffects bool) uint8 {
	switch membus.Resolve(addr, c.MapCtl) {
	case membus.OverlaySuzy:
		if sideEffects {
			return c.Suzy.Read(addr)
		}
		return c.Suzy.Peek(addr)
	case membus.OverlayMikey:
		if addr >= apu.ChannelBase && addr < apu.AttenBase+4 {
			return c.APU.Peek(addr)
		}
		if sideEffects {
			return c.Mikey.Read(addr)
		}
		return c.Mikey.Peek(addr)
	case membus.OverlayBootROM, membus.OverlayVector:
		return c.bootROMByte(addr)
	case membus.OverlayMapCtl:
		return c.MapCtl
	default:
		return c.RAM[addr]
	}
}

func (c *Console) dispatchWrite(addr uint16, v uint8) {
	overlay := membus.Resolve(addr, c.MapCtl)
	if !membus.WritableOverlay(overlay) {
		return // Boot ROM / vector overlay: writes are dropped
	}

	switch overlay {
	case membus.OverlaySuzy:
		c.Suzy.Write(addr, v)
		if c.Suzy.TakePendingGo() {
			c.Suzy.ProcessSprites(c.RAM[:], c.Mikey.DisplayAddress)
			c.CPU.CycleCount += uint64(c.Suzy.TakeBusCycles())
		}
	case membus.OverlayMikey:
		if addr >= apu.ChannelBase && addr < apu.AttenBase+4 {
			c.APU.Write(addr, v)
		} else {
			c.Mikey.Write(addr, v)
		}
	case membus.OverlayMapCtl:
		// $FFF9 is a hardware register, not RAM-backed: the write updates
		// MAPCTL only and is never mirrored to RAM.
		c.MapCtl = v
	default:
		c.RAM[addr] = v
	}
}

func (c *Console) bootROMByte(addr uint16) uint8 {
	base := addr - (lynxtype.OverlayBaseAddr + 0x0200) // $FE00
	if int(base) >= len(c.BootROM) {
		return 0xFF
	}
	return c.BootROM[base]
}

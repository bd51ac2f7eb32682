// Package console implements the frame driver that coordinates the CPU,
// Mikey, Suzy, APU, cartridge and EEPROM into a running Lynx: the
// shared arena every chip is parameterized against, the MAPCTL-dispatched
// memory bus those chips sit behind, and the single-frame execution loop.
package console

import (
	"fmt"

	"lynxcore/internal/apu"
	"lynxcore/internal/cartridge"
	"lynxcore/internal/cpu65c02"
	"lynxcore/internal/debug"
	"lynxcore/internal/eeprom"
	"lynxcore/internal/lynxtype"
	"lynxcore/internal/mikey"
	"lynxcore/internal/suzy"
)

// AudioSink is the host collaborator that consumes interleaved stereo
// samples at frame end. Play must accept synchronously; the host
// owns any back-pressure handling.
type AudioSink interface {
	Play(samples []int16, sampleRate int)
}

// BatteryManager is the host collaborator that persists the EEPROM's raw
// byte image keyed by a ROM-derived suffix.
type BatteryManager interface {
	Load(suffix string) ([]byte, error)
	Save(suffix string, data []byte) error
}

// Controller is the host collaborator supplying active-low joystick and
// switch latches.
type Controller interface {
	ReadJoystick() uint8
	ReadSwitches() uint8
}

// Console is the shared arena owning every chip and the flat work RAM they
// see through the bus: a single struct holding direct references rather
// than each chip owning the others.
type Console struct {
	RAM     [lynxtype.RamSize]byte
	BootROM []byte // up to BootROMSize bytes; nil selects HLE boot
	MapCtl  uint8

	Cart   *cartridge.Cartridge
	EEPROM *eeprom.Eeprom
	Suzy   *suzy.Suzy
	Mikey  *mikey.Mikey
	APU    *apu.Apu
	CPU    *cpu65c02.CPU

	Logger *debug.Logger

	Audio      AudioSink
	Battery    BatteryManager
	Controller Controller

	romSuffix string
}

// New creates a fully wired, unloaded Console. Call LoadROM before running
// frames.
func New(logger *debug.Logger) *Console {
	if logger == nil {
		logger = debug.NewLogger(10000)
	}
	c := &Console{Logger: logger}
	c.Cart = cartridge.New()
	c.EEPROM = eeprom.New(eeprom.Eeprom93c46)
	c.Suzy = suzy.New(c.Cart)
	c.Mikey = mikey.New(c.EEPROM)
	c.APU = apu.New()
	c.CPU = cpu65c02.New(c)
	return c
}

// SetEEPROMType replaces the installed EEPROM with an erased chip of the
// given type and rewires Mikey's I/O-pin access to it. Cartridges declare
// their battery chip type out of band (via the host's cartridge database);
// the core itself has no way to infer it from the ROM image.
func (c *Console) SetEEPROMType(t eeprom.ChipType) {
	c.EEPROM = eeprom.New(t)
	c.Mikey.EEPROM = c.EEPROM
}

// LoadROM is the core's single fallible entry point: it parses
// the LNX header (or accepts a raw headerless image), installs the
// cartridge, and resets the machine to its post-power-on state. On failure
// the Console is left exactly as it was before the call; no partial state
// is ever exposed.
func (c *Console) LoadROM(data []byte, suffix string) error {
	cart := cartridge.New()
	if err := cart.LoadROM(data); err != nil {
		c.Logger.LogConsolef(debug.LogLevelWarning, "ROM load rejected: %v", err)
		return fmt.Errorf("console: load rom: %w", err)
	}
	c.Cart = cart
	c.Suzy.Cart = cart
	c.romSuffix = suffix

	// The cartridge clamps oversized banks itself; compare the header's
	// declared sizes against what was actually present to report it.
	if string(data[0:4]) == "LYNX" {
		bank0Pages := uint32(data[4]) | uint32(data[5])<<8
		bank1Pages := uint32(data[6]) | uint32(data[7])<<8
		if (bank0Pages+bank1Pages)*256 > uint32(len(c.Cart.ROM)) {
			c.Logger.LogConsole(debug.LogLevelInfo, "bank sizes exceed rom, clamped to file size", nil)
		}
	}

	c.loadBattery()
	c.Reset()
	return nil
}

// Reset performs a full power-cycle; the Lynx hardware has no distinct
// partial-reset state.
func (c *Console) Reset() {
	for i := range c.RAM {
		c.RAM[i] = 0
	}
	c.MapCtl = 0
	c.Mikey.Reset()
	c.Suzy.Reset()
	c.APU.Reset()

	if len(c.BootROM) == 0 {
		c.Logger.LogConsole(debug.LogLevelInfo, "boot rom missing, synthesizing HLE boot state", nil)
		c.synthesizeHLEBoot()
	}

	c.CPU.Reset()
	if len(c.BootROM) == 0 && (c.CPU.PC == 0x0000 || c.CPU.PC == 0xFFFF) {
		c.CPU.PC = lynxtype.HLEFallbackPC
	}
}

// synthesizeHLEBoot installs the register state a real Boot ROM would have
// left behind, before the CPU reads its reset vector.
func (c *Console) synthesizeHLEBoot() {
	t0 := &c.Mikey.Timers[0]
	t0.Backup = lynxtype.HLETimer0Backup
	t0.Count = lynxtype.HLETimer0Backup
	t0.CtlA = lynxtype.HLETimer0CtlA
	t2 := &c.Mikey.Timers[2]
	t2.Backup = lynxtype.HLETimer2Backup
	t2.Count = lynxtype.HLETimer2Backup
	t2.CtlA = lynxtype.HLETimer2CtlA
	c.Mikey.DisplayControl = lynxtype.HLEDispCtl
	c.Mikey.DisplayAddress = lynxtype.HLEDispAdr
	c.Mikey.IrqPending = 0
}

func (c *Console) loadBattery() {
	if c.Battery == nil || c.romSuffix == "" {
		return
	}
	data, err := c.Battery.Load(c.romSuffix)
	if err != nil {
		c.Logger.LogConsolef(debug.LogLevelInfo, "no battery image loaded for %s: %v", c.romSuffix, err)
		return
	}
	c.EEPROM.LoadBattery(data)
}

// SaveBattery asks the host battery manager to persist the EEPROM's raw
// byte image. A no-op when no manager or ROM is set.
func (c *Console) SaveBattery() error {
	if c.Battery == nil || c.romSuffix == "" {
		return nil
	}
	return c.Battery.Save(c.romSuffix, c.EEPROM.SaveBattery())
}

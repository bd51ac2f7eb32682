package console

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"lynxcore/internal/apu"
	"lynxcore/internal/cartridge"
	"lynxcore/internal/eeprom"
	"lynxcore/internal/lynxtype"
	"lynxcore/internal/mikey"
)

// saveStateVersion guards against loading a state encoded by an
// incompatible layout.
const saveStateVersion uint16 = 1

// SaveState is a complete snapshot of every console and chip field,
// serialized field-by-field rather than by gob-ing the live chip structs
// directly: CPU, Suzy and Mikey keep protocol-internal fields unexported,
// and gob only encodes exported fields, so a direct struct-to-struct
// encode would silently lose state. ROM bytes are never included: they
// are re-obtained from the source file on load.
type SaveState struct {
	Version uint16

	RAM    [lynxtype.RamSize]byte
	MapCtl uint8

	CPU    CPUState
	Cart   CartState
	EEPROM eeprom.State
	Suzy   SuzyState
	Mikey  MikeyState
	APU    APUState
}

// CPUState mirrors the 65C02 register file.
type CPUState struct {
	PC              uint16
	SP, A, X, Y, PS uint8
	CycleCount      uint64
	StopState       lynxtype.StopState
}

// CartState mirrors the cartridge's bank/address-counter state. ROM bytes
// are excluded.
type CartState struct {
	Bank0Offset, Bank0Size uint32
	Bank1Offset, Bank1Size uint32
	CurrentBank            uint8
	AddressCounter         uint32
	ShiftRegister          uint8
	CartName, Manufacturer string
	Rotation               uint8
}

// SuzyState mirrors Suzy's register-visible state.
type SuzyState struct {
	SCBAddress                  uint16
	SprCtl0, SprCtl1, SprInit   uint8
	SpriteBusy                  bool
	CollisionBuffer             [16]uint8
	MathC                       uint16
	MathE                       uint16
	MathGH                      uint32
	MathSign, MathAccumulate    bool
	MathOverflow                bool
	Joystick, Switches          uint8
}

// MikeyState mirrors Mikey's timers, display DMA, IRQ, palette and UART
// state.
type MikeyState struct {
	Timers [8]mikey.Timer

	PaletteGreen [16]uint8
	PaletteBR    [16]uint8

	DisplayAddress  uint16
	DisplayControl  uint8
	CurrentScanline uint16

	IrqPending uint8

	IODIR, IODAT uint8

	UartTxCountdown uint32
	UartRxCountdown uint32
	UartTxData      uint16
	UartRxData      uint16
	UartRxReady     bool
	TxIrqEnable     bool
	RxIrqEnable     bool
	ParityEnable    bool
	ParityEven      bool
	TxBrk           bool
	OverrunError    bool
	FramingError    bool

	UartQueue mikey.UartQueueState

	Framebuffer [lynxtype.ScreenWidth * lynxtype.ScreenHeight]uint32
}

// APUState mirrors the four LFSR channels, the stereo mixer registers and
// the buffered-sample timing state.
type APUState struct {
	Channels [4]apu.Channel

	StereoDisable uint8
	MPan          uint8
	Atten         [4]uint8
	SampleRate    uint32

	Buffer apu.BufferState
}

// SaveState serializes the full machine state into a gob-encoded byte slice.
// ROM bytes are not included; the host re-supplies them on load.
func (c *Console) SaveState() ([]byte, error) {
	state := SaveState{
		Version: saveStateVersion,
		RAM:     c.RAM,
		MapCtl:  c.MapCtl,
		CPU: CPUState{
			PC: c.CPU.PC, SP: c.CPU.SP, A: c.CPU.A, X: c.CPU.X, Y: c.CPU.Y, PS: c.CPU.PS,
			CycleCount: c.CPU.CycleCount, StopState: c.CPU.StopState,
		},
		Cart: CartState{
			Bank0Offset: c.Cart.Bank0Offset, Bank0Size: c.Cart.Bank0Size,
			Bank1Offset: c.Cart.Bank1Offset, Bank1Size: c.Cart.Bank1Size,
			CurrentBank: c.Cart.CurrentBank, AddressCounter: c.Cart.AddressCounter,
			ShiftRegister: c.Cart.ShiftRegister, CartName: c.Cart.CartName,
			Manufacturer: c.Cart.Manufacturer, Rotation: uint8(c.Cart.Rotation),
		},
		EEPROM: c.EEPROM.Snapshot(),
		Suzy: SuzyState{
			SCBAddress: c.Suzy.SCBAddress, SprCtl0: c.Suzy.SprCtl0, SprCtl1: c.Suzy.SprCtl1,
			SprInit: c.Suzy.SprInit, SpriteBusy: c.Suzy.SpriteBusy,
			CollisionBuffer: c.Suzy.CollisionBuffer, MathC: c.Suzy.MathC, MathE: c.Suzy.MathE,
			MathGH: c.Suzy.MathGH, MathSign: c.Suzy.MathSign, MathAccumulate: c.Suzy.MathAccumulate,
			MathOverflow: c.Suzy.MathOverflow, Joystick: c.Suzy.Joystick, Switches: c.Suzy.Switches,
		},
		Mikey: MikeyState{
			Timers: c.Mikey.Timers, PaletteGreen: c.Mikey.PaletteGreen, PaletteBR: c.Mikey.PaletteBR,
			DisplayAddress: c.Mikey.DisplayAddress, DisplayControl: c.Mikey.DisplayControl,
			CurrentScanline: c.Mikey.CurrentScanline, IrqPending: c.Mikey.IrqPending,
			IODIR: c.Mikey.IODIR, IODAT: c.Mikey.IODAT,
			UartTxCountdown: c.Mikey.UartTxCountdown, UartRxCountdown: c.Mikey.UartRxCountdown,
			UartTxData: c.Mikey.UartTxData, UartRxData: c.Mikey.UartRxData, UartRxReady: c.Mikey.UartRxReady,
			TxIrqEnable: c.Mikey.TxIrqEnable, RxIrqEnable: c.Mikey.RxIrqEnable,
			ParityEnable: c.Mikey.ParityEnable, ParityEven: c.Mikey.ParityEven, TxBrk: c.Mikey.TxBrk,
			OverrunError: c.Mikey.OverrunError, FramingError: c.Mikey.FramingError,
			UartQueue: c.Mikey.SnapshotUartQueue(), Framebuffer: c.Mikey.Framebuffer,
		},
		APU: APUState{
			Channels: c.APU.Channels, StereoDisable: c.APU.StereoDisable, MPan: c.APU.MPan,
			Atten: c.APU.Atten, SampleRate: c.APU.SampleRate, Buffer: c.APU.SnapshotBuffer(),
		},
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("console: encode save state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a snapshot produced by SaveState. ROM, Boot ROM and
// the host collaborator bindings (Audio/Battery/Controller) are left
// untouched — the caller is expected to have already loaded the matching
// ROM via LoadROM before restoring gameplay state.
func (c *Console) LoadState(data []byte) error {
	var state SaveState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("console: decode save state: %w", err)
	}
	if state.Version != saveStateVersion {
		return fmt.Errorf("console: unsupported save state version %d (expected %d)", state.Version, saveStateVersion)
	}

	c.RAM = state.RAM
	c.MapCtl = state.MapCtl

	c.CPU.PC, c.CPU.SP, c.CPU.A, c.CPU.X, c.CPU.Y, c.CPU.PS = state.CPU.PC, state.CPU.SP, state.CPU.A, state.CPU.X, state.CPU.Y, state.CPU.PS
	c.CPU.CycleCount, c.CPU.StopState = state.CPU.CycleCount, state.CPU.StopState

	c.Cart.Bank0Offset, c.Cart.Bank0Size = state.Cart.Bank0Offset, state.Cart.Bank0Size
	c.Cart.Bank1Offset, c.Cart.Bank1Size = state.Cart.Bank1Offset, state.Cart.Bank1Size
	c.Cart.CurrentBank, c.Cart.AddressCounter = state.Cart.CurrentBank, state.Cart.AddressCounter
	c.Cart.ShiftRegister = state.Cart.ShiftRegister
	c.Cart.CartName, c.Cart.Manufacturer = state.Cart.CartName, state.Cart.Manufacturer
	c.Cart.Rotation = cartridge.Rotation(state.Cart.Rotation)

	c.EEPROM.Restore(state.EEPROM)

	c.Suzy.SCBAddress = state.Suzy.SCBAddress
	c.Suzy.SprCtl0, c.Suzy.SprCtl1, c.Suzy.SprInit = state.Suzy.SprCtl0, state.Suzy.SprCtl1, state.Suzy.SprInit
	c.Suzy.SpriteBusy = state.Suzy.SpriteBusy
	c.Suzy.CollisionBuffer = state.Suzy.CollisionBuffer
	c.Suzy.MathC, c.Suzy.MathE, c.Suzy.MathGH = state.Suzy.MathC, state.Suzy.MathE, state.Suzy.MathGH
	c.Suzy.MathSign, c.Suzy.MathAccumulate, c.Suzy.MathOverflow = state.Suzy.MathSign, state.Suzy.MathAccumulate, state.Suzy.MathOverflow
	c.Suzy.Joystick, c.Suzy.Switches = state.Suzy.Joystick, state.Suzy.Switches

	c.Mikey.Timers = state.Mikey.Timers
	c.Mikey.PaletteGreen, c.Mikey.PaletteBR = state.Mikey.PaletteGreen, state.Mikey.PaletteBR
	c.Mikey.DisplayAddress, c.Mikey.DisplayControl = state.Mikey.DisplayAddress, state.Mikey.DisplayControl
	c.Mikey.CurrentScanline = state.Mikey.CurrentScanline
	c.Mikey.IrqPending = state.Mikey.IrqPending
	c.Mikey.IODIR, c.Mikey.IODAT = state.Mikey.IODIR, state.Mikey.IODAT
	c.Mikey.UartTxCountdown, c.Mikey.UartRxCountdown = state.Mikey.UartTxCountdown, state.Mikey.UartRxCountdown
	c.Mikey.UartTxData, c.Mikey.UartRxData, c.Mikey.UartRxReady = state.Mikey.UartTxData, state.Mikey.UartRxData, state.Mikey.UartRxReady
	c.Mikey.TxIrqEnable, c.Mikey.RxIrqEnable = state.Mikey.TxIrqEnable, state.Mikey.RxIrqEnable
	c.Mikey.ParityEnable, c.Mikey.ParityEven, c.Mikey.TxBrk = state.Mikey.ParityEnable, state.Mikey.ParityEven, state.Mikey.TxBrk
	c.Mikey.OverrunError, c.Mikey.FramingError = state.Mikey.OverrunError, state.Mikey.FramingError
	c.Mikey.RestoreUartQueue(state.Mikey.UartQueue)
	c.Mikey.Framebuffer = state.Mikey.Framebuffer

	c.APU.Channels = state.APU.Channels
	c.APU.StereoDisable, c.APU.MPan, c.APU.Atten = state.APU.StereoDisable, state.APU.MPan, state.APU.Atten
	c.APU.SampleRate = state.APU.SampleRate
	c.APU.RestoreBuffer(state.APU.Buffer)

	return nil
}

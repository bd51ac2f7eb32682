package console

import (
	"testing"

	"github.com/go-test/deep"

	"lynxcore/internal/eeprom"
	"lynxcore/internal/lynxtype"
	"lynxcore/internal/mikey"
	"lynxcore/internal/suzy"
)

func rawROM(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestLoadROMResetsMachine(t *testing.T) {
	c := New(nil)
	c.RAM[0x10] = 0xAA
	if err := c.LoadROM(rawROM(256), "test"); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if c.RAM[0x10] != 0 {
		t.Error("LoadROM should reset RAM to zero")
	}
	if c.Cart.Bank0Size != 256 {
		t.Errorf("Bank0Size = %d, want 256 (headerless image)", c.Cart.Bank0Size)
	}
}

func TestLoadROMRejectionLeavesConsoleUnchanged(t *testing.T) {
	c := New(nil)
	if err := c.LoadROM(rawROM(256), "good"); err != nil {
		t.Fatalf("setup LoadROM: %v", err)
	}
	goodCart := c.Cart

	if err := c.LoadROM([]byte{0, 1, 2}, "bad"); err == nil {
		t.Fatal("expected an error loading a too-short image")
	}
	if c.Cart != goodCart {
		t.Error("a rejected LoadROM should leave the previously loaded cartridge in place")
	}
}

func TestRunFrameAdvancesAtLeastOneFrameOfCycles(t *testing.T) {
	c := New(nil)
	if err := c.LoadROM(rawROM(256), "test"); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	before := c.CPU.CycleCount
	c.RunFrame()
	want := before + lynxtype.CPUCyclesPerFrame()
	if c.CPU.CycleCount < want {
		t.Errorf("CycleCount = %d, want at least %d after one frame", c.CPU.CycleCount, want)
	}
}

type stubController struct {
	joy, sw uint8
}

func (s *stubController) ReadJoystick() uint8 { return s.joy }
func (s *stubController) ReadSwitches() uint8 { return s.sw }

func TestRunFrameLatchesController(t *testing.T) {
	c := New(nil)
	if err := c.LoadROM(rawROM(256), "test"); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	c.Controller = &stubController{joy: 0x5A, sw: 0x03}
	c.RunFrame()
	if c.Suzy.Joystick != 0x5A || c.Suzy.Switches != 0x03 {
		t.Errorf("Suzy joystick/switches = %#x/%#x, want 0x5a/0x03", c.Suzy.Joystick, c.Suzy.Switches)
	}
}

func TestWriteRAMDefaultOverlay(t *testing.T) {
	c := New(nil)
	c.Write(0x1000, 0x42)
	if c.RAM[0x1000] != 0x42 {
		t.Errorf("RAM[0x1000] = %#x, want 0x42", c.RAM[0x1000])
	}
	if got := c.Read(0x1000); got != 0x42 {
		t.Errorf("Read(0x1000) = %#x, want 0x42", got)
	}
}

func TestWriteDispatchesToSuzyOverlay(t *testing.T) {
	c := New(nil)
	c.Write(suzy.RegSprCtl0, 0x0F)
	if c.Suzy.SprCtl0 != 0x0F {
		t.Errorf("Suzy.SprCtl0 = %#x, want 0x0f", c.Suzy.SprCtl0)
	}
	if got := c.Read(suzy.RegSprCtl0); got != 0x0F {
		t.Errorf("Read(RegSprCtl0) = %#x, want 0x0f", got)
	}
}

func TestWriteDispatchesToMikeyOverlay(t *testing.T) {
	c := New(nil)
	c.Write(mikey.IntSetAddr, 0x05)
	if c.Mikey.IrqPending != 0x05 {
		t.Errorf("Mikey.IrqPending = %#x, want 0x05", c.Mikey.IrqPending)
	}
}

func TestMapCtlDisablingSuzyExposesRAM(t *testing.T) {
	c := New(nil)
	c.Write(lynxtype.MapCtlAddress, lynxtype.MapCtlSuzyDisable)
	c.Write(suzy.RegSprCtl0, 0x77)
	if c.Suzy.SprCtl0 != 0 {
		t.Error("Suzy should not have been reached while its overlay is disabled")
	}
	if c.RAM[suzy.RegSprCtl0] != 0x77 {
		t.Errorf("RAM[RegSprCtl0] = %#x, want 0x77 (falls through to RAM)", c.RAM[suzy.RegSprCtl0])
	}
}

func TestMapCtlRegisterAlwaysAtFixedAddress(t *testing.T) {
	c := New(nil)
	c.Write(lynxtype.MapCtlAddress, 0x0F)
	if c.MapCtl != 0x0F {
		t.Fatalf("MapCtl = %#x, want 0x0f", c.MapCtl)
	}
	if c.RAM[lynxtype.MapCtlAddress] != 0 {
		t.Error("writing MAPCTL should never be mirrored into RAM")
	}
	if got := c.Read(lynxtype.MapCtlAddress); got != 0x0F {
		t.Errorf("Read(MapCtlAddress) = %#x, want 0x0f, even with every overlay disabled", got)
	}
}

func TestPeekDoesNotChargeCyclesOrMutateCartCounter(t *testing.T) {
	c := New(nil)
	if err := c.LoadROM(rawROM(256), "test"); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	before := c.CPU.CycleCount
	beforeAddr := c.Cart.AddressCounter
	c.Peek(suzy.RegRCart0)
	if c.CPU.CycleCount != before {
		t.Error("Peek should not charge a bus cycle")
	}
	if c.Cart.AddressCounter != beforeAddr {
		t.Error("Peek should not advance the cartridge address counter")
	}
}

func TestSaveStateLoadStateRoundTrip(t *testing.T) {
	c := New(nil)
	if err := c.LoadROM(rawROM(256), "test"); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	c.RAM[0x200] = 0x99
	c.CPU.A = 0x55
	c.Mikey.DisplayAddress = 0xC100
	c.Suzy.MathC = 0x1234

	blob1, err := c.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	c2 := New(nil)
	if err := c2.LoadROM(rawROM(256), "test"); err != nil {
		t.Fatalf("LoadROM (restore target): %v", err)
	}
	if err := c2.LoadState(blob1); err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if c2.RAM[0x200] != 0x99 || c2.CPU.A != 0x55 || c2.Mikey.DisplayAddress != 0xC100 || c2.Suzy.MathC != 0x1234 {
		t.Fatal("restored console does not match the saved snapshot")
	}

	blob2, err := c2.SaveState()
	if err != nil {
		t.Fatalf("second SaveState: %v", err)
	}
	if diff := deep.Equal(blob1, blob2); diff != nil {
		t.Fatalf("save->load->save should be byte-identical, diverged: %v", diff)
	}
}

func TestSetEEPROMTypeRewiresMikey(t *testing.T) {
	c := New(nil)
	original := c.EEPROM
	c.SetEEPROMType(eeprom.Eeprom93c56)
	if c.EEPROM == original {
		t.Error("SetEEPROMType should install a fresh EEPROM")
	}
	if c.Mikey.EEPROM != c.EEPROM {
		t.Error("SetEEPROMType should rewire Mikey's EEPROM pointer")
	}
}

package membus

import "testing"

func TestResolveRAMBelowOverlayWindow(t *testing.T) {
	if got := Resolve(0xFBFF, 0); got != OverlayRAM {
		t.Fatalf("Resolve(0xFBFF, 0) = %v, want OverlayRAM", got)
	}
}

func TestResolveOverlaysEnabledByDefault(t *testing.T) {
	cases := []struct {
		addr uint16
		want Overlay
	}{
		{SuzyLow, OverlaySuzy},
		{SuzyHigh, OverlaySuzy},
		{MikeyLow, OverlayMikey},
		{MikeyHigh, OverlayMikey},
		{BootROMLow, OverlayBootROM},
		{BootROMHigh, OverlayBootROM},
		{VectorLow, OverlayVector},
		{VectorHigh, OverlayVector},
		{ReservedAddr, OverlayRAM},
	}
	for _, c := range cases {
		if got := Resolve(c.addr, 0); got != c.want {
			t.Errorf("Resolve(%#x, 0) = %v, want %v", c.addr, got, c.want)
		}
	}
}

func TestResolveMapCtlAddressAlwaysSelf(t *testing.T) {
	for _, mapctl := range []uint8{0x00, 0x0F, 0xFF} {
		if got := Resolve(0xFFF9, mapctl); got != OverlayMapCtl {
			t.Errorf("Resolve(0xFFF9, %#x) = %v, want OverlayMapCtl", mapctl, got)
		}
	}
}

func TestResolveDisablingOverlaysExposesRAM(t *testing.T) {
	cases := []struct {
		addr   uint16
		mapctl uint8
	}{
		{SuzyLow, 0x01},
		{MikeyLow, 0x02},
		{BootROMLow, 0x04},
		{VectorLow, 0x08},
	}
	for _, c := range cases {
		if got := Resolve(c.addr, c.mapctl); got != OverlayRAM {
			t.Errorf("Resolve(%#x, %#x) = %v, want OverlayRAM", c.addr, c.mapctl, got)
		}
	}
}

func TestWritableOverlay(t *testing.T) {
	if WritableOverlay(OverlayBootROM) {
		t.Error("Boot ROM overlay should not be writable")
	}
	if WritableOverlay(OverlayVector) {
		t.Error("vector overlay should not be writable")
	}
	for _, o := range []Overlay{OverlayRAM, OverlaySuzy, OverlayMikey, OverlayMapCtl} {
		if !WritableOverlay(o) {
			t.Errorf("overlay %v should be writable", o)
		}
	}
}

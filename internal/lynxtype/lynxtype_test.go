package lynxtype

import "testing"

func TestCPUCyclesPerFrameDivisible(t *testing.T) {
	cycles := CPUCyclesPerFrame()
	if cycles == 0 {
		t.Fatal("expected a nonzero cycle count per frame")
	}
	if cycles%ScanlineCount != 0 {
		t.Fatalf("expected cycles per frame to be a whole number of scanline periods, got %d", cycles)
	}
}

func TestStopStateString(t *testing.T) {
	cases := map[StopState]string{
		Running:       "Running",
		Stopped:       "Stopped",
		WaitingForIrq: "WaitingForIrq",
		StopState(99): "Unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("StopState(%d).String() = %q, want %q", state, got, want)
		}
	}
}

func TestBytesPerScanlineMatchesScreenWidth(t *testing.T) {
	if BytesPerScanline*2 != ScreenWidth {
		t.Fatalf("BytesPerScanline*2 = %d, want ScreenWidth %d", BytesPerScanline*2, ScreenWidth)
	}
}

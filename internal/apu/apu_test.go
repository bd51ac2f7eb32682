package apu

import "testing"

func TestChannelStepFlipsOutputSign(t *testing.T) {
	ch := &Channel{Volume: 100, ShiftRegister: 0x0001, FeedbackEnable: 0}
	ch.step()
	if ch.Output != 100 {
		t.Errorf("Output = %d, want +Volume when the outgoing bit was 1", ch.Output)
	}
	ch.step()
	if ch.Output != -100 {
		t.Errorf("Output = %d, want -Volume when the outgoing bit was 0", ch.Output)
	}
}

func TestChannelIntegrateModeAccumulatesAndClamps(t *testing.T) {
	ch := &Channel{Volume: 100, IntegrateMode: true, ShiftRegister: 0x0001}
	ch.step() // +100
	ch.step() // bit 0 now 0 (shifted in 0 feedback), -100 accumulated -> back to 0
	if ch.Output < -128 || ch.Output > 127 {
		t.Fatalf("Output out of int8 range: %d", ch.Output)
	}

	ch2 := &Channel{Volume: 127, IntegrateMode: true, ShiftRegister: 0x0001, FeedbackEnable: 1}
	for i := 0; i < 10; i++ {
		ch2.step()
	}
	if ch2.Output > 127 || ch2.Output < -128 {
		t.Errorf("accumulated Output escaped int8 range: %d", ch2.Output)
	}
}

func TestTickAdvancesChannelOnPeriodElapsed(t *testing.T) {
	a := New()
	a.Channels[0].Enabled = true
	a.Channels[0].ClockSource = 0 // period 4
	a.Channels[0].Backup = 0
	a.Channels[0].Volume = 50
	a.Channels[0].ShiftRegister = 1

	a.Tick(4)

	if a.Channels[0].LastTick != 4 {
		t.Errorf("LastTick = %d, want 4", a.Channels[0].LastTick)
	}
}

func TestPushSampleMixesEnabledChannels(t *testing.T) {
	a := New()
	a.Channels[0].Output = 10
	a.Channels[1].Output = -10
	a.StereoDisable = 0 // both channels on both sides

	a.pushSample()

	if a.bufferLen != 2 {
		t.Fatalf("bufferLen = %d, want 2", a.bufferLen)
	}
	// channels 0 and 1 (10 and -10) cancel: left = 10 + -10 + 0 + 0 = 0
	if a.buffer[0] != 0 || a.buffer[1] != 0 {
		t.Errorf("mixed sample = (%d, %d), want (0, 0)", a.buffer[0], a.buffer[1])
	}
}

func TestPushSampleRespectsStereoDisable(t *testing.T) {
	a := New()
	a.Channels[0].Output = 50
	a.StereoDisable = 1 << 0 // disable channel 0 on the left only

	a.pushSample()

	if a.buffer[0] != 0 {
		t.Errorf("left sample = %d, want 0 (channel 0 disabled on left)", a.buffer[0])
	}
	if a.buffer[1] == 0 {
		t.Error("right sample should still carry channel 0's output")
	}
}

func TestPushSamplePanningAttenuates(t *testing.T) {
	a := New()
	a.Channels[0].Output = 100
	a.MPan = 1 << 0
	a.Atten[0] = 0xF0 // full left attenuation, zero right attenuation

	a.pushSample()

	if a.buffer[1] != 0 {
		t.Errorf("right sample = %d, want 0 with zero right attenuation", a.buffer[1])
	}
	if a.buffer[0] == 0 {
		t.Error("left sample should be nonzero with full left attenuation")
	}
}

func TestEndFrameClearsBuffer(t *testing.T) {
	a := New()
	a.Channels[0].Output = 1
	a.pushSample()
	if a.SampleCount() == 0 {
		t.Fatal("setup: expected at least one buffered sample")
	}
	out := a.EndFrame()
	if len(out) == 0 {
		t.Error("EndFrame should return the buffered samples")
	}
	if a.SampleCount() != 0 {
		t.Error("EndFrame should clear the buffer")
	}
}

func TestBufferSnapshotRestoreRoundTrip(t *testing.T) {
	a := New()
	a.Channels[0].Output = 7
	a.pushSample()

	snap := a.SnapshotBuffer()

	a2 := New()
	a2.SampleRate = a.SampleRate
	a2.RestoreBuffer(snap)

	if a2.SampleCount() != a.SampleCount() {
		t.Errorf("SampleCount after restore = %d, want %d", a2.SampleCount(), a.SampleCount())
	}
}

func TestRegisterWriteCtrlByteRoundTrip(t *testing.T) {
	a := New()
	a.Write(ChannelBase+chanCtrl, 0x1F) // enabled, integrate, clock source 7
	ch := &a.Channels[0]
	if !ch.Enabled || !ch.IntegrateMode || ch.ClockSource != 7 {
		t.Errorf("channel state after ctrl write: enabled=%v integrate=%v clock=%d", ch.Enabled, ch.IntegrateMode, ch.ClockSource)
	}
	if got := a.Read(ChannelBase + chanCtrl); got != 0x1F {
		t.Errorf("Read back ctrl byte = %#x, want 0x1F", got)
	}
}

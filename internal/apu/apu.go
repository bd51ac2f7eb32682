// Package apu implements the Lynx's four LFSR-based audio channels and
// their stereo mixer. Each channel mirrors a Mikey-style timer
// driving a 12-bit linear-feedback shift register; the mixer combines all
// four channels' current outputs into clamped 16-bit stereo samples at
// SampleRate Hz.
package apu

import "lynxcore/internal/lynxtype"

// MaxSamples is the interleaved stereo sample buffer capacity;
// the console flushes to the host sink when full or at frame end.
const MaxSamples = 2048

// clockPeriods mirrors Mikey's timer prescaler table: sources
// 0..6 divide the CPU clock by these CPU-cycle periods.
var clockPeriods = [7]uint32{4, 8, 16, 32, 64, 128, 256}

// lfsrTaps are the bit positions of the 12-bit shift register eligible to
// feed back, selected per-channel by FeedbackEnable.
var lfsrTaps = [8]uint{0, 1, 2, 3, 4, 5, 7, 10}

// Channel is one of the four LFSR audio voices.
type Channel struct {
	Backup      uint8
	Count       uint8
	ClockSource uint8 // 0..6 = prescaler index, 7 = stopped (no external link)
	Enabled     bool
	LastTick    uint64

	ShiftRegister  uint16 // 12 bits used
	FeedbackEnable uint8  // low 8 bits select taps from lfsrTaps
	IntegrateMode  bool
	Volume         int8

	Output int8 // current decoded sample, accumulated when IntegrateMode is set
}

func (c *Channel) period() uint32 {
	if c.ClockSource > 6 {
		return 0
	}
	return clockPeriods[c.ClockSource]
}

// step shifts the LFSR once and recomputes Output: feedback
// is the XOR of the selected taps, the register shifts right with the new
// bit entering bit 11, and the output sign follows the outgoing low bit.
func (c *Channel) step() {
	feedback := uint16(0)
	for i, tap := range lfsrTaps {
		if c.FeedbackEnable&(1<<uint(i)) != 0 {
			feedback ^= (c.ShiftRegister >> tap) & 1
		}
	}
	outBit := c.ShiftRegister & 1
	c.ShiftRegister = (c.ShiftRegister >> 1) & 0x7FF
	c.ShiftRegister |= (feedback & 1) << 11

	var sample int8
	if outBit != 0 {
		sample = c.Volume
	} else {
		sample = -c.Volume
	}

	if c.IntegrateMode {
		sum := int16(c.Output) + int16(sample)
		c.Output = clampInt8(sum)
	} else {
		c.Output = sample
	}
}

func clampInt8(v int16) int8 {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return int8(v)
}

// Apu owns the four channels, the stereo mixer registers and the host
// audio buffer.
type Apu struct {
	Channels [4]Channel

	StereoDisable uint8    // bit i disables channel i on the left, bit 4+i on the right
	MPan          uint8    // bit i: apply Atten[i] attenuation to channel i
	Atten         [4]uint8 // upper nibble = left attenuation, lower = right

	SampleRate uint32

	buffer          [MaxSamples * 2]int16
	bufferLen       int
	sampleAccum     uint64
	lastSampleCycle uint64
	cyclesPerSample uint64 // fixed-point (x256): CPU cycles per output sample
}

// New creates an APU at the Lynx's native sample rate.
func New() *Apu {
	a := &Apu{SampleRate: lynxtype.AudioSampleRateHz}
	a.cyclesPerSample = (uint64(lynxtype.CPUClockHz) << 8) / uint64(a.SampleRate)
	return a
}

// Reset returns every channel and mixer register to its post-power-cycle
// state, keeping the configured sample rate.
func (a *Apu) Reset() {
	rate := a.SampleRate
	*a = Apu{SampleRate: rate}
	a.cyclesPerSample = (uint64(lynxtype.CPUClockHz) << 8) / uint64(a.SampleRate)
}

// Tick advances every channel's LFSR timer to currentCycle and appends a
// stereo sample to the buffer whenever a sample period has elapsed. Mirrors
// Mikey's timer tick algorithm but without cascade linking, which the
// audio channels do not have.
func (a *Apu) Tick(currentCycle uint64) {
	for i := range a.Channels {
		ch := &a.Channels[i]
		if !ch.Enabled {
			ch.LastTick = currentCycle
			continue
		}
		period := ch.period()
		if period == 0 {
			ch.LastTick = currentCycle
			continue
		}
		for currentCycle-ch.LastTick >= uint64(period) {
			ch.LastTick += uint64(period)
			ch.Count--
			if ch.Count == 0xFF {
				ch.Count = ch.Backup
				ch.step()
			}
		}
	}

	if currentCycle > a.lastSampleCycle {
		a.sampleAccum += (currentCycle - a.lastSampleCycle) << 8
		a.lastSampleCycle = currentCycle
	}
	for a.sampleAccum >= a.cyclesPerSample {
		a.sampleAccum -= a.cyclesPerSample
		a.pushSample()
	}
}

func (a *Apu) pushSample() {
	if a.bufferLen >= MaxSamples*2 {
		return
	}
	var left, right int32
	for i := range a.Channels {
		ch := &a.Channels[i]
		sample := int32(ch.Output)

		if a.MPan&(1<<uint(i)) != 0 {
			attenL := int32(a.Atten[i]>>4) & 0xF
			attenR := int32(a.Atten[i]) & 0xF
			if a.StereoDisable&(1<<uint(i)) == 0 {
				left += (sample * attenL) / 15
			}
			if a.StereoDisable&(1<<uint(4+i)) == 0 {
				right += (sample * attenR) / 15
			}
			continue
		}
		if a.StereoDisable&(1<<uint(i)) == 0 {
			left += sample
		}
		if a.StereoDisable&(1<<uint(4+i)) == 0 {
			right += sample
		}
	}

	a.buffer[a.bufferLen] = clampInt16(left * 64)
	a.buffer[a.bufferLen+1] = clampInt16(right * 64)
	a.bufferLen += 2
}

func clampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// EndFrame returns the accumulated interleaved samples and clears the
// buffer, matching the frame driver's apu.end_frame() call.
func (a *Apu) EndFrame() []int16 {
	out := make([]int16, a.bufferLen)
	copy(out, a.buffer[:a.bufferLen])
	a.bufferLen = 0
	return out
}

// SampleCount reports how many interleaved samples are currently buffered;
// serialized as part of save state.
func (a *Apu) SampleCount() int {
	return a.bufferLen
}

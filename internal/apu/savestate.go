package apu

import "lynxcore/internal/lynxtype"

// BufferState snapshots the interleaved sample buffer and the fixed-point
// sample-timing accumulator. Not
// persisting this would silently drop or duplicate a fraction of a sample
// period across a save/load boundary.
type BufferState struct {
	Buffer          [MaxSamples * 2]int16
	BufferLen       int
	SampleAccum     uint64
	LastSampleCycle uint64
}

// SnapshotBuffer captures the APU's sample buffer and timing accumulator.
func (a *Apu) SnapshotBuffer() BufferState {
	return BufferState{
		Buffer:          a.buffer,
		BufferLen:       a.bufferLen,
		SampleAccum:     a.sampleAccum,
		LastSampleCycle: a.lastSampleCycle,
	}
}

// RestoreBuffer installs a previously captured buffer snapshot.
func (a *Apu) RestoreBuffer(s BufferState) {
	a.buffer = s.Buffer
	a.bufferLen = s.BufferLen
	a.sampleAccum = s.SampleAccum
	a.lastSampleCycle = s.LastSampleCycle
	a.cyclesPerSample = (uint64(lynxtype.CPUClockHz) << 8) / uint64(a.SampleRate)
}

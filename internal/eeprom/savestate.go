package eeprom

// State is a full snapshot of the Microwire state machine, including the
// protocol-internal shift/bit counters that stay unexported on Eeprom
// itself. The console's save-state layer persists one of these per
// EEPROM: every field here must round-trip for a save made
// mid-protocol-frame to resume correctly.
type State struct {
	Type         ChipType
	Words        []uint16
	CS, CLK      bool
	DI, DO       bool
	WriteEnabled bool

	St          int
	ShiftIn     uint32
	BitsIn      int
	Op          int
	Addr        int
	DataShiftIn uint16
	DataBitsIn  int
	OutWord     uint16
	OutBit      int
}

// Snapshot captures the full Microwire state machine state.
func (e *Eeprom) Snapshot() State {
	words := make([]uint16, len(e.Words))
	copy(words, e.Words)
	return State{
		Type:         e.Type,
		Words:        words,
		CS:           e.CS,
		CLK:          e.CLK,
		DI:           e.DI,
		DO:           e.DO,
		WriteEnabled: e.WriteEnabled,
		St:           int(e.st),
		ShiftIn:      e.shiftIn,
		BitsIn:       e.bitsIn,
		Op:           int(e.op),
		Addr:         e.addr,
		DataShiftIn:  e.dataShiftIn,
		DataBitsIn:   e.dataBitsIn,
		OutWord:      e.outWord,
		OutBit:       e.outBit,
	}
}

// Restore installs a previously captured snapshot.
func (e *Eeprom) Restore(s State) {
	e.Type = s.Type
	e.Words = make([]uint16, len(s.Words))
	copy(e.Words, s.Words)
	e.CS = s.CS
	e.CLK = s.CLK
	e.DI = s.DI
	e.DO = s.DO
	e.WriteEnabled = s.WriteEnabled
	e.st = state(s.St)
	e.shiftIn = s.ShiftIn
	e.bitsIn = s.BitsIn
	e.op = opcode(s.Op)
	e.addr = s.Addr
	e.dataShiftIn = s.DataShiftIn
	e.dataBitsIn = s.DataBitsIn
	e.outWord = s.OutWord
	e.outBit = s.OutBit
}

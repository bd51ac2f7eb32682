package mikey

// UartQueueState snapshots the 32-entry ComLynx RX circular queue,
// including its head/tail/waiting counters.
type UartQueueState struct {
	Queue [32]uint16
	Head  int
	Count int
}

// SnapshotUartQueue captures the RX queue for save-state serialization.
func (m *Mikey) SnapshotUartQueue() UartQueueState {
	return UartQueueState{Queue: m.rxQueue, Head: m.rxHead, Count: m.rxCount}
}

// RestoreUartQueue installs a previously captured RX queue snapshot.
func (m *Mikey) RestoreUartQueue(s UartQueueState) {
	m.rxQueue = s.Queue
	m.rxHead = s.Head
	m.rxCount = s.Count
}

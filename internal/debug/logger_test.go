package debug

import "testing"

func TestNewLoggerEnforcesMinimumBufferSize(t *testing.T) {
	l := NewLogger(10)
	defer l.Shutdown()
	if l.maxEntries != 100 {
		t.Errorf("maxEntries = %d, want the 100-entry floor", l.maxEntries)
	}
}

func TestComponentsDisabledByDefaultExceptConsole(t *testing.T) {
	l := NewLogger(1000)
	defer l.Shutdown()
	if l.IsComponentEnabled(ComponentCPU) {
		t.Error("ComponentCPU should be disabled by default")
	}
	if !l.IsComponentEnabled(ComponentConsole) {
		t.Error("ComponentConsole should be enabled by default")
	}
}

func TestLogDroppedWhenComponentDisabled(t *testing.T) {
	l := NewLogger(1000)
	l.Log(ComponentCPU, LogLevelInfo, "should not appear", nil)
	l.Shutdown()
	if len(l.GetEntries()) != 0 {
		t.Error("a disabled component's log call should never reach the buffer")
	}
}

func TestLogRespectsMinLevel(t *testing.T) {
	l := NewLogger(1000)
	l.SetComponentEnabled(ComponentCPU, true)
	l.SetMinLevel(LogLevelDebug)
	l.LogCPU(LogLevelTrace, "below threshold", nil)
	l.LogCPU(LogLevelDebug, "at threshold", nil)
	l.Shutdown()

	entries := l.GetEntries()
	if len(entries) != 1 || entries[0].Message != "at threshold" {
		t.Fatalf("entries = %+v, want exactly the one entry at or above the minimum level", entries)
	}
}

func TestGetRecentEntriesReturnsTail(t *testing.T) {
	l := NewLogger(1000)
	l.SetComponentEnabled(ComponentConsole, true)
	l.SetMinLevel(LogLevelInfo)
	for i := 0; i < 5; i++ {
		l.LogConsolef(LogLevelInfo, "entry %d", i)
	}
	l.Shutdown()

	recent := l.GetRecentEntries(2)
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	if recent[1].Message != "entry 4" {
		t.Errorf("last recent entry = %q, want %q", recent[1].Message, "entry 4")
	}
}

func TestClearResetsBuffer(t *testing.T) {
	l := NewLogger(1000)
	l.SetMinLevel(LogLevelInfo)
	l.LogConsole(LogLevelInfo, "hello", nil)
	l.Shutdown()
	if len(l.GetEntries()) == 0 {
		t.Fatal("setup: expected at least one entry before Clear")
	}
	l.Clear()
	if len(l.GetEntries()) != 0 {
		t.Error("Clear should empty the buffer")
	}
}

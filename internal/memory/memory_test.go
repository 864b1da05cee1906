package memory

import (
	"runtime/debug"
	"testing"
	"time"
)

// restoreMemoryLimit undoes the process-wide limit a test set.
func restoreMemoryLimit(t *testing.T) {
	t.Helper()
	prev := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(prev) })
}

func TestConfigureFromEnvNoLimit(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "")

	result := ConfigureFromEnv()
	if result.Configured {
		t.Error("Expected no configuration without env vars")
	}
	if result.Source != "none" {
		t.Errorf("Source = %q, want none", result.Source)
	}
}

func TestConfigureFromEnvMemoryLimit(t *testing.T) {
	restoreMemoryLimit(t)
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "1073741824") // 1 GiB
	t.Setenv("MEMORY_RATIO", "0.5")

	result := ConfigureFromEnv()
	if !result.Configured {
		t.Fatal("Expected configuration from MEMORY_LIMIT")
	}
	if result.Source != "MEMORY_LIMIT" {
		t.Errorf("Source = %q, want MEMORY_LIMIT", result.Source)
	}
	if result.GoMemLimit != 536870912 {
		t.Errorf("GoMemLimit = %d, want 536870912", result.GoMemLimit)
	}
}

func TestConfigureFromEnvInvalidRatio(t *testing.T) {
	restoreMemoryLimit(t)
	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "1048576")
	t.Setenv("MEMORY_RATIO", "1.5")

	result := ConfigureFromEnv()
	if result.Ratio != DefaultMemoryRatio {
		t.Errorf("Ratio = %v, want default %v", result.Ratio, DefaultMemoryRatio)
	}
}

func TestWaitIfPausedNoLimit(t *testing.T) {
	m := NewMonitor(Config{MemoryLimitBytes: 0, CheckInterval: time.Hour})
	// With backpressure disabled nothing should ever block.
	if !m.WaitIfPaused() {
		t.Error("WaitIfPaused() = false, want true with no limit")
	}
	if m.IsPaused() {
		t.Error("IsPaused() = true, want false")
	}
}

func TestMonitorStartStop(t *testing.T) {
	m := NewMonitor(Config{MemoryLimitBytes: 1 << 30, HighWaterMark: 0.7, CriticalWaterMark: 0.85, CheckInterval: 10 * time.Millisecond})
	m.Start()
	time.Sleep(30 * time.Millisecond)
	m.Stop()

	if m.IsPaused() {
		t.Error("Monitor paused under a 1 GiB limit in tests")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{1 << 30, "1.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

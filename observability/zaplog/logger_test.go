package zaplog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/go-workpool/workpool/core"
)

// TestLogger_ForwardsLevelsAndFields verifies log entries reach zap intact
// Given: a logger backed by an observer core
// When: each level is logged with fields
// Then: entries carry the right level, message, and field values
func TestLogger_ForwardsLevelsAndFields(t *testing.T) {
	// Arrange
	obsCore, logs := observer.New(zap.DebugLevel)
	logger := New(zap.New(obsCore))

	// Act
	logger.Debug("debug msg", core.F("pool", "alpha"))
	logger.Info("info msg", core.F("workers", 4))
	logger.Warn("warn msg")
	logger.Error("error msg", core.F("pool", "alpha"), core.F("pending", 2))

	// Assert
	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("logged %d entries, want 4", len(entries))
	}

	wantLevels := []zapcore.Level{zap.DebugLevel, zap.InfoLevel, zap.WarnLevel, zap.ErrorLevel}
	wantMsgs := []string{"debug msg", "info msg", "warn msg", "error msg"}
	for i, entry := range entries {
		if entry.Level != wantLevels[i] {
			t.Errorf("entry[%d].Level = %v, want %v", i, entry.Level, wantLevels[i])
		}
		if entry.Message != wantMsgs[i] {
			t.Errorf("entry[%d].Message = %q, want %q", i, entry.Message, wantMsgs[i])
		}
	}

	fields := entries[3].ContextMap()
	if fields["pool"] != "alpha" {
		t.Errorf(`error entry field "pool" = %v, want "alpha"`, fields["pool"])
	}
	if fields["pending"] != int64(2) {
		t.Errorf(`error entry field "pending" = %v, want 2`, fields["pending"])
	}
}

// TestNew_NilBase verifies the nil fallback
// Given: a nil *zap.Logger
// When: New is called and all levels are logged
// Then: nothing panics
func TestNew_NilBase(t *testing.T) {
	// Act
	logger := New(nil)

	// Assert
	logger.Debug("ok")
	logger.Info("ok")
	logger.Warn("ok")
	logger.Error("ok", core.F("k", "v"))
}

// TestLogger_SatisfiesCoreInterface verifies interface compliance at runtime
// Given: a zaplog logger
// When: it is assigned to a core.Logger variable and used via PoolConfig
// Then: a pool accepts it without modification
func TestLogger_SatisfiesCoreInterface(t *testing.T) {
	// Arrange
	obsCore, logs := observer.New(zap.DebugLevel)

	cfg := core.DefaultPoolConfig()
	cfg.Logger = New(zap.New(obsCore))
	cfg.Name = "zap-pool"

	// Act
	pool, err := core.NewPoolWithConfig(2, cfg)
	if err != nil {
		t.Fatalf("NewPoolWithConfig error = %v, want nil", err)
	}
	pool.Shutdown()

	// Assert - start and shutdown both log through zap
	if logs.Len() < 2 {
		t.Errorf("logged %d entries across pool lifecycle, want >= 2", logs.Len())
	}
	found := false
	for _, entry := range logs.All() {
		if entry.ContextMap()["pool"] == "zap-pool" {
			found = true
			break
		}
	}
	if !found {
		t.Error(`no entry carried field pool="zap-pool"`)
	}
}

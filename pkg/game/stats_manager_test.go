package game

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// TestNewStatsManagerNilGdata 测试降级模式创建
func TestNewStatsManagerNilGdata(t *testing.T) {
	sm, err := NewStatsManager(nil)
	if err != nil {
		t.Fatalf("NewStatsManager(nil) error: %v", err)
	}

	stats := sm.GetStats()
	if stats == nil {
		t.Fatal("GetStats() returned nil")
	}
	if stats.SessionsPlayed != 0 {
		t.Errorf("SessionsPlayed: got %d, want 0", stats.SessionsPlayed)
	}
}

// TestRecordSession 测试单次会话统计的并入
func TestRecordSession(t *testing.T) {
	sm, _ := NewStatsManager(nil)

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	d := func(v float64) *float64 { return &v }

	events := []InteractionEvent{
		{Timestamp: at, Kind: EventFirstActivation},
		// 首次命中：间隔被哨兵钳成 0，不参与最快/均值
		{Timestamp: at, Kind: EventClickInsideActive, SinceLastClick: d(0), SinceLastInsideClick: d(0)},
		{Timestamp: at, Kind: EventClickOutsideActive, SinceLastClick: d(0.4)},
		{Timestamp: at, Kind: EventClickInsideActive, SinceLastClick: d(0.8), SinceLastInsideClick: d(1.2)},
		{Timestamp: at, Kind: EventClickInsideActive, SinceLastClick: d(0.6), SinceLastInsideClick: d(0.8)},
	}

	sm.RecordSession(events)
	stats := sm.GetStats()

	if stats.SessionsPlayed != 1 {
		t.Errorf("SessionsPlayed: got %d, want 1", stats.SessionsPlayed)
	}
	if stats.TotalClicks != 4 {
		t.Errorf("TotalClicks: got %d, want 4", stats.TotalClicks)
	}
	if stats.TotalInsideClicks != 3 {
		t.Errorf("TotalInsideClicks: got %d, want 3", stats.TotalInsideClicks)
	}
	if stats.BestReaction != 0.8 {
		t.Errorf("BestReaction: got %v, want 0.8", stats.BestReaction)
	}
	if math.Abs(stats.MeanReaction()-1.0) > 1e-9 {
		t.Errorf("MeanReaction: got %v, want 1.0", stats.MeanReaction())
	}
}

// TestRecordSessionAccumulates 测试多次会话累计
func TestRecordSessionAccumulates(t *testing.T) {
	sm, _ := NewStatsManager(nil)
	d := func(v float64) *float64 { return &v }
	at := time.Now()

	sm.RecordSession([]InteractionEvent{
		{Timestamp: at, Kind: EventClickInsideActive, SinceLastClick: d(1.0), SinceLastInsideClick: d(1.0)},
	})
	sm.RecordSession([]InteractionEvent{
		{Timestamp: at, Kind: EventClickInsideActive, SinceLastClick: d(0.5), SinceLastInsideClick: d(0.5)},
	})

	stats := sm.GetStats()
	if stats.SessionsPlayed != 2 {
		t.Errorf("SessionsPlayed: got %d, want 2", stats.SessionsPlayed)
	}
	if stats.BestReaction != 0.5 {
		t.Errorf("BestReaction: got %v, want 0.5", stats.BestReaction)
	}
}

// TestMeanReactionEmpty 测试无记录时均值为 0
func TestMeanReactionEmpty(t *testing.T) {
	stats := &LifetimeStats{}
	if stats.MeanReaction() != 0 {
		t.Errorf("MeanReaction on empty stats: got %v, want 0", stats.MeanReaction())
	}
}

// TestStatsLoadSave 测试 gdata 持久化往返
func TestStatsLoadSave(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "test_stats_load_save",
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	sm1, err := NewStatsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewStatsManager() error: %v", err)
	}

	d := func(v float64) *float64 { return &v }
	sm1.RecordSession([]InteractionEvent{
		{Timestamp: time.Now(), Kind: EventClickInsideActive, SinceLastClick: d(0.7), SinceLastInsideClick: d(0.7)},
	})
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewStatsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewStatsManager() error on reload: %v", err)
	}

	stats := sm2.GetStats()
	if stats.SessionsPlayed != 1 {
		t.Errorf("Loaded SessionsPlayed: got %d, want 1", stats.SessionsPlayed)
	}
	if stats.BestReaction != 0.7 {
		t.Errorf("Loaded BestReaction: got %v, want 0.7", stats.BestReaction)
	}
}

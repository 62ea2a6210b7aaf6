package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LifetimeStats 跨会话累计的反应统计
//
// 会话结束写数据文件时顺带更新，用于启动画面展示历史成绩
type LifetimeStats struct {
	SessionsPlayed    int     `yaml:"sessionsPlayed"`    // 累计完成的会话数
	TotalClicks       int     `yaml:"totalClicks"`       // 累计点击次数（含脱靶）
	TotalInsideClicks int     `yaml:"totalInsideClicks"` // 累计命中次数
	BestReaction      float64 `yaml:"bestReaction"`      // 最快命中间隔（秒），0 表示暂无记录
	ReactionSum       float64 `yaml:"reactionSum"`       // 命中间隔累计和，用于计算均值
	ReactionCount     int     `yaml:"reactionCount"`     // 参与均值计算的命中次数
}

// MeanReaction 返回命中间隔均值（秒），无记录时返回 0
func (s *LifetimeStats) MeanReaction() float64 {
	if s.ReactionCount == 0 {
		return 0
	}
	return s.ReactionSum / float64(s.ReactionCount)
}

// StatsManager 累计统计管理器
// 持久化方式与 SettingsManager 相同：gdata 存储 + YAML 序列化
type StatsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存统计）
	stats        *LifetimeStats
}

// 存储路径常量
const (
	statsObject   = "stats"
	statsProperty = "lifetime"
)

// NewStatsManager 创建统计管理器并尝试加载历史数据
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *StatsManager: 管理器实例
//   - error: 加载失败返回错误（不影响创建，使用空统计）
func NewStatsManager(gdataManager *gdata.Manager) (*StatsManager, error) {
	sm := &StatsManager{
		gdataManager: gdataManager,
		stats:        &LifetimeStats{},
	}

	if err := sm.Load(); err != nil {
		log.Printf("[StatsManager] Warning: Failed to load stats: %v (starting empty)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载累计统计
func (sm *StatsManager) Load() error {
	if sm.gdataManager == nil {
		sm.stats = &LifetimeStats{}
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(statsObject, statsProperty) {
		sm.stats = &LifetimeStats{}
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(statsObject, statsProperty)
	if err != nil {
		sm.stats = &LifetimeStats{}
		return fmt.Errorf("failed to load stats: %w", err)
	}

	var loaded LifetimeStats
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.stats = &LifetimeStats{}
		return fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	sm.stats = &loaded
	return nil
}

// Save 持久化累计统计
// 降级模式（gdataManager 为 nil）不报错
func (sm *StatsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(statsObject, statsProperty, data); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	log.Printf("[StatsManager] Stats saved successfully")
	return nil
}

// RecordSession 把一次会话的事件日志并入累计统计
//
// 只有大于 0 的命中间隔参与最快/均值计算：首次命中的间隔被哨兵
// 钳成了 0，没有统计意义
func (sm *StatsManager) RecordSession(events []InteractionEvent) {
	sm.stats.SessionsPlayed++

	for _, event := range events {
		switch event.Kind {
		case EventClickInsideActive:
			sm.stats.TotalClicks++
			sm.stats.TotalInsideClicks++

			if event.SinceLastInsideClick == nil {
				continue
			}
			reaction := *event.SinceLastInsideClick
			if reaction <= 0 {
				continue
			}

			sm.stats.ReactionSum += reaction
			sm.stats.ReactionCount++
			if sm.stats.BestReaction == 0 || reaction < sm.stats.BestReaction {
				sm.stats.BestReaction = reaction
			}

		case EventClickOutsideActive:
			sm.stats.TotalClicks++
		}
	}
}

// GetStats 返回当前累计统计
func (sm *StatsManager) GetStats() *LifetimeStats {
	return sm.stats
}

package config

import (
	"fmt"

	"github.com/decker502/reflex/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 游戏窗口常量
const (
	// GameWindowWidth 游戏窗口宽度（逻辑分辨率）
	GameWindowWidth = 360

	// GameWindowHeight 游戏窗口高度（逻辑分辨率）
	GameWindowHeight = 720
)

// DefaultTrainerConfigPath 默认训练配置文件路径（嵌入资源）
const DefaultTrainerConfigPath = "assets/config/trainer.yaml"

// WindowConfig 窗口尺寸配置
type WindowConfig struct {
	Width  int `yaml:"width"`  // 逻辑屏幕宽度
	Height int `yaml:"height"` // 逻辑屏幕高度
}

// TargetPosition 单个目标在逻辑屏幕上的圆心坐标
type TargetPosition struct {
	X float64 `yaml:"x"` // 圆心 X 坐标
	Y float64 `yaml:"y"` // 圆心 Y 坐标
}

// TrainerConfig 反应训练场配置
//
// 定义 assets/config/trainer.yaml 的结构：
//
//	window:
//	  width: 360
//	  height: 720
//	targetCount: 17
//	targetRadius: 20.0
//	retargetInterval: 2.0
//	positions:
//	  - { x: 225, y: 624 }
//	  ...
type TrainerConfig struct {
	Window           WindowConfig     `yaml:"window"`           // 窗口尺寸
	TargetCount      int              `yaml:"targetCount"`      // 目标数量 N（必须 > 2）
	TargetRadius     float64          `yaml:"targetRadius"`     // 目标圆半径（像素）
	RetargetInterval float64          `yaml:"retargetInterval"` // 换目标周期 T（秒）
	Positions        []TargetPosition `yaml:"positions"`        // 固定目标布局，长度必须等于 TargetCount
}

// DefaultTrainerPositions 默认 17 目标布局
// 手选的固定布局，覆盖 360x720 逻辑屏幕且目标间互不重叠
var DefaultTrainerPositions = []TargetPosition{
	{X: 225, Y: 624}, {X: 126, Y: 72}, {X: 243, Y: 408}, {X: 162, Y: 72},
	{X: 207, Y: 672}, {X: 144, Y: 24}, {X: 189, Y: 624}, {X: 180, Y: 120},
	{X: 162, Y: 648}, {X: 144, Y: 408}, {X: 243, Y: 312}, {X: 153, Y: 384},
	{X: 270, Y: 360}, {X: 144, Y: 456}, {X: 279, Y: 480}, {X: 234, Y: 216},
	{X: 207, Y: 48},
}

// DefaultTrainerConfig 返回内置默认配置
// 当嵌入的 yaml 缺失或解析失败时作为兜底
func DefaultTrainerConfig() *TrainerConfig {
	positions := make([]TargetPosition, len(DefaultTrainerPositions))
	copy(positions, DefaultTrainerPositions)

	return &TrainerConfig{
		Window:           WindowConfig{Width: GameWindowWidth, Height: GameWindowHeight},
		TargetCount:      17,
		TargetRadius:     20.0,
		RetargetInterval: 2.0,
		Positions:        positions,
	}
}

// LoadTrainerConfig 从嵌入资源加载训练配置
//
// 参数：
//   - path: 配置文件路径，必须以 "assets/" 开头（如 DefaultTrainerConfigPath）
//
// 返回：
//   - *TrainerConfig: 解析并校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadTrainerConfig(path string) (*TrainerConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trainer config %s: %w", path, err)
	}

	return ParseTrainerConfig(data)
}

// ParseTrainerConfig 解析并校验 yaml 配置内容
func ParseTrainerConfig(data []byte) (*TrainerConfig, error) {
	var cfg TrainerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse trainer config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置合法性
//
// 规则：
//   - 窗口尺寸必须为正
//   - TargetCount 必须 > 2（否则换目标采样的排除约束无法满足）
//   - TargetRadius、RetargetInterval 必须为正
//   - Positions 长度必须等于 TargetCount
func (c *TrainerConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}

	// N <= 2 时主动/预选目标的互斥约束会让采样陷入死循环，直接拒绝
	if c.TargetCount <= 2 {
		return fmt.Errorf("targetCount must be greater than 2, got %d", c.TargetCount)
	}

	if c.TargetRadius <= 0 {
		return fmt.Errorf("targetRadius must be positive, got %v", c.TargetRadius)
	}

	if c.RetargetInterval <= 0 {
		return fmt.Errorf("retargetInterval must be positive, got %v", c.RetargetInterval)
	}

	if len(c.Positions) != c.TargetCount {
		return fmt.Errorf("positions length %d does not match targetCount %d", len(c.Positions), c.TargetCount)
	}

	return nil
}

package game

import (
	"bytes"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 点击音效合成参数
// 不引入音频素材文件，启动时直接合成一小段提示音
const (
	clickToneFrequency = 880.0 // 提示音频率 (Hz)
	clickToneDuration  = 0.05  // 时长（秒）
	clickToneAmplitude = 0.25  // 振幅（相对满幅）
)

// AudioManager 音频管理器
//
// 职责：
//   - 播放点击提示音
//   - 实现音量控制（从 SettingsManager 读取设置）
//
// 提示音在创建时合成为 PCM 数据，每次播放新建播放器，
// 允许快速连击时声音重叠。
type AudioManager struct {
	audioContext    *audio.Context   // ebiten 音频上下文，可为 nil（无声模式）
	settingsManager *SettingsManager // 设置管理器（用于读取音量设置，可为 nil）
	clickTone       []byte           // 合成好的点击音 PCM 数据
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（无声模式，PlayClick 不做事）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
	}

	if ctx != nil {
		am.clickTone = synthesizeClickTone(ctx.SampleRate())
	}

	return am
}

// PlayClick 播放点击提示音
//
// 音量由 SoundVolume 设置控制，SoundEnabled 关闭时静默。
//
// 返回：
//   - bool: 是否实际播放
func (am *AudioManager) PlayClick() bool {
	if am.audioContext == nil || len(am.clickTone) == 0 {
		return false
	}

	// 检查音效是否启用
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
	}

	player, err := am.audioContext.NewPlayer(bytes.NewReader(am.clickTone))
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create click player: %v", err)
		return false
	}

	player.SetVolume(am.getSoundVolume())
	player.Play()
	return true
}

// getSoundVolume 读取当前音效音量，无设置管理器时用默认值
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager == nil {
		return DefaultSettings().SoundVolume
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// synthesizeClickTone 合成点击提示音
//
// 输出 ebiten audio 期望的 16 位小端双声道 PCM。
// 正弦波叠加线性衰减包络，避免结尾爆音。
func synthesizeClickTone(sampleRate int) []byte {
	sampleCount := int(float64(sampleRate) * clickToneDuration)
	buf := make([]byte, sampleCount*4)

	for i := 0; i < sampleCount; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := 1.0 - float64(i)/float64(sampleCount)
		v := clickToneAmplitude * envelope * math.Sin(2*math.Pi*clickToneFrequency*t)
		sample := int16(v * math.MaxInt16)

		// 左右声道相同
		buf[i*4] = byte(sample)
		buf[i*4+1] = byte(sample >> 8)
		buf[i*4+2] = byte(sample)
		buf[i*4+3] = byte(sample >> 8)
	}
	return buf
}

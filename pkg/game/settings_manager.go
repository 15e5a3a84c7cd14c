// Package game 提供演示宿主的持久化状态
package game

import (
	"fmt"
	"log"
	"math"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SliderSettings 演示程序的持久化设置
// 以滑动条 ID 为键保存最后一次的进度，下次启动时恢复
type SliderSettings struct {
	Progress map[string]float64 `yaml:"progress"` // 滑动条 ID -> 进度 0.0 ~ 1.0

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *SliderSettings {
	return &SliderSettings{
		Progress:   make(map[string]float64),
		Fullscreen: false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *SliderSettings // 当前设置
	dirty        bool            // 有未保存的修改
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "sliders"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方统一处理，加载失败不会返回错误
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	sm.dirty = false

	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded SliderSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.Progress == nil {
		loaded.Progress = make(map[string]float64)
	}
	// 文件可能被手动修改，读入时再限制一次范围
	for id, p := range loaded.Progress {
		loaded.Progress[id] = clampProgress(p)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully (%d sliders)", len(loaded.Progress))
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		sm.dirty = false
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.dirty = false
	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// SaveIfDirty 仅在有未保存的修改时保存
func (sm *SettingsManager) SaveIfDirty() error {
	if !sm.dirty {
		return nil
	}
	return sm.Save()
}

// IsDirty 是否有未保存的修改
func (sm *SettingsManager) IsDirty() bool {
	return sm.dirty
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *SliderSettings {
	return sm.settings
}

// Progress 获取滑动条保存的进度
//
// 返回：
//   - float64: 保存的进度
//   - bool: 是否有保存的记录
func (sm *SettingsManager) Progress(id string) (float64, bool) {
	p, ok := sm.settings.Progress[id]
	return p, ok
}

// SetProgress 记录滑动条进度
//
// 进度值会被限制在 0.0 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetProgress(id string, progress float64) {
	progress = clampProgress(progress)
	if old, ok := sm.settings.Progress[id]; ok && old == progress {
		return
	}
	sm.settings.Progress[id] = progress
	sm.dirty = true
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	if sm.settings.Fullscreen == enabled {
		return
	}
	sm.settings.Fullscreen = enabled
	sm.dirty = true
}

// clampProgress 将进度限制在 0.0 ~ 1.0 范围内，NaN 按 0 处理
func clampProgress(progress float64) float64 {
	if math.IsNaN(progress) || progress < 0.0 {
		return 0.0
	}
	if progress > 1.0 {
		return 1.0
	}
	return progress
}

package game

import (
	"math"
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.Progress == nil || len(settings.Progress) != 0 {
		t.Errorf("Progress: got %v, want empty map", settings.Progress)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	sm, err := NewSettingsManager(openTestGdata(t, "test_vslider_settings"))
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm == nil {
		t.Fatal("NewSettingsManager() returned nil")
	}

	if _, ok := sm.Progress("music"); ok {
		t.Error("Fresh settings should not have saved progress")
	}
	if sm.IsDirty() {
		t.Error("Fresh settings should not be dirty")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	sm.SetProgress("music", 0.4)
	if p, ok := sm.Progress("music"); !ok || p != 0.4 {
		t.Errorf("Progress in degraded mode: got (%v, %v), want (0.4, true)", p, ok)
	}

	// 降级模式下 Save() 应该返回 nil（不报错）
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	// 重新 Load() 恢复为默认值
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if _, ok := sm.Progress("music"); ok {
		t.Error("Load() in degraded mode should reset progress")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_vslider_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetProgress("music", 0.25)
	sm1.SetProgress("sound", 0.75)
	sm1.SetFullscreen(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if sm1.IsDirty() {
		t.Error("Save() should clear dirty flag")
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	if p, ok := sm2.Progress("music"); !ok || p != 0.25 {
		t.Errorf("Loaded music progress: got (%v, %v), want (0.25, true)", p, ok)
	}
	if p, ok := sm2.Progress("sound"); !ok || p != 0.75 {
		t.Errorf("Loaded sound progress: got (%v, %v), want (0.75, true)", p, ok)
	}
	if !sm2.GetSettings().Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsLoadClampsValues 手动修改过的存档在读入时被限制范围
func TestSettingsLoadClampsValues(t *testing.T) {
	gdataManager := openTestGdata(t, "test_vslider_clamp")

	data := []byte("progress:\n  music: 1.5\n  sound: -2\n")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	if p, _ := sm.Progress("music"); p != 1 {
		t.Errorf("music: got %v, want 1", p)
	}
	if p, _ := sm.Progress("sound"); p != 0 {
		t.Errorf("sound: got %v, want 0", p)
	}
}

// TestSettingsLoadCorrupted 损坏的存档回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	gdataManager := openTestGdata(t, "test_vslider_corrupted")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("progress: [\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() should not fail on corrupted data: %v", err)
	}
	if len(sm.GetSettings().Progress) != 0 {
		t.Errorf("Expected default settings, got %v", sm.GetSettings().Progress)
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report unmarshal error")
	}
}

// TestSetProgressDirty 只有值变化时才标记未保存
func TestSetProgressDirty(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.SetProgress("music", 0.5)
	if !sm.IsDirty() {
		t.Fatal("SetProgress should mark dirty")
	}
	if err := sm.SaveIfDirty(); err != nil {
		t.Fatalf("SaveIfDirty() error: %v", err)
	}
	if sm.IsDirty() {
		t.Fatal("SaveIfDirty should clear dirty flag")
	}

	sm.SetProgress("music", 0.5)
	if sm.IsDirty() {
		t.Error("Same value should not mark dirty")
	}

	sm.SetFullscreen(false)
	if sm.IsDirty() {
		t.Error("Unchanged fullscreen should not mark dirty")
	}
	sm.SetFullscreen(true)
	if !sm.IsDirty() {
		t.Error("Fullscreen change should mark dirty")
	}
}

// TestClampProgress 测试 clampProgress 辅助函数
func TestClampProgress(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-1.0, 0.0},
		{2.0, 1.0},
		{math.NaN(), 0.0},
		{math.Inf(1), 1.0},
		{math.Inf(-1), 0.0},
	}

	for _, tt := range tests {
		result := clampProgress(tt.input)
		if result != tt.expected {
			t.Errorf("clampProgress(%v): got %v, want %v", tt.input, result, tt.expected)
		}
	}
}

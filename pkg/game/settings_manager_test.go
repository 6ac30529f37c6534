package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时 HOME 下打开 gdata 存储
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gm, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gm
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if !settings.EffectsEnabled {
		t.Error("EffectsEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm.Persistent() {
		t.Error("Persistent() should be false without storage")
	}
	if !sm.GetSettings().EffectsEnabled {
		t.Error("degraded mode should use defaults")
	}

	// 降级模式下 Save() 不报错
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	// 重新 Load() 恢复默认值
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().Fullscreen {
		t.Error("After Load() in degraded mode, Fullscreen should be default")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gm := openTestStorage(t, "novadraw_test_settings")

	sm1, err := NewSettingsManager(gm)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	sm1.SetEffectsEnabled(false)
	sm1.SetFullscreen(true)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gm)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	settings := sm2.GetSettings()
	if settings.EffectsEnabled {
		t.Error("Loaded EffectsEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsMissingFieldsKeepDefaults 旧文件缺少的字段保持默认值
func TestSettingsMissingFieldsKeepDefaults(t *testing.T) {
	gm := openTestStorage(t, "novadraw_test_partial")
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: true\n")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm, _ := NewSettingsManager(gm)
	if !sm.GetSettings().Fullscreen {
		t.Error("Fullscreen should be loaded")
	}
	if !sm.GetSettings().EffectsEnabled {
		t.Error("missing EffectsEnabled should default to true")
	}
}

// TestSettingsCorruptFile 损坏的设置文件退回默认值
func TestSettingsCorruptFile(t *testing.T) {
	gm := openTestStorage(t, "novadraw_test_corrupt")
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("effectsEnabled: [")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm, err := NewSettingsManager(gm)
	if err != nil || sm == nil {
		t.Fatalf("corrupt settings must not fail creation: %v", err)
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
	if !sm.GetSettings().EffectsEnabled || sm.GetSettings().Fullscreen {
		t.Errorf("corrupt file should fall back to defaults, got %+v", sm.GetSettings())
	}
}

func TestToggleEffects(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	if sm.ToggleEffects() {
		t.Error("first toggle should disable effects")
	}
	if !sm.ToggleEffects() {
		t.Error("second toggle should enable effects")
	}
}

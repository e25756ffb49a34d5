package game

import "testing"

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail, got %v", err)
	}
	if !sm.GetSettings().Fullscreen {
		t.Error("Setting should be kept in memory")
	}
}

// TestSettingsManagerPersistence 测试设置保存后可以重新加载
func TestSettingsManagerPersistence(t *testing.T) {
	manager := openTestGdata(t, "test_redsun_settings")

	sm := NewSettingsManager(manager)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := NewSettingsManager(manager)
	if !reloaded.GetSettings().Fullscreen {
		t.Error("Fullscreen setting was not persisted")
	}
}

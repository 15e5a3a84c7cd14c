//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前准备存档目录
//
// gdata 在 Android 上把数据写到 /data/data/{package}/ 下，
// 但不会预先创建子目录，首次保存进度时会失败。
// 这里提前创建 saves 目录并确认可写。
func EnsureStorageDir() error {
	dir, err := androidSavesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// androidSavesDir 返回 /data/data/{package}/saves
// 包名从 /proc/self/cmdline 读取（以 NUL 结尾）
func androidSavesDir() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}
	pkg, _, _ := bytes.Cut(data, []byte{0})
	pkg = bytes.TrimSpace(pkg)
	if len(pkg) == 0 {
		return "", fmt.Errorf("failed to detect Android package: empty /proc/self/cmdline")
	}
	return filepath.Join("/data/data", string(pkg), "saves"), nil
}

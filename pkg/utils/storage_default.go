//go:build !android

package utils

// EnsureStorageDir 在打开 gdata 之前准备存档目录
// 桌面端和 iOS 上由 gdata 自行创建目录，这里什么都不做
func EnsureStorageDir() error {
	return nil
}

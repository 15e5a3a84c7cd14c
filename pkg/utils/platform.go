//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设置为 1 时桌面端按移动端处理（不显示键盘焦点框）
const MobileEmulateEnv = "VSLIDER_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时默认返回 false，可通过 MobileEmulateEnv 强制启用
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}

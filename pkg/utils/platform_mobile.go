//go:build mobile

package utils

// IsMobile 移动端构建总是返回 true
// 渲染系统据此跳过键盘焦点框和悬停框
func IsMobile() bool {
	return true
}

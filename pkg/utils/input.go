// Package utils 提供宿主层使用的通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// 触摸释放后 ebiten 不再报告触摸位置，保存最后一次位置供释放事件使用
var (
	lastTouchX, lastTouchY int
	touchActive            bool
)

// GetPointerState 获取指针的完整状态（触摸优先，其次鼠标左键）
// 返回：是否按下、X坐标、Y坐标
//
// 每帧只应调用一次：触摸释放的那一帧返回最后一次触摸位置，而不是鼠标位置。
func GetPointerState() (pressed bool, x, y int) {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = x, y
		touchActive = true
		return true, x, y
	}
	if touchActive {
		touchActive = false
		return false, lastTouchX, lastTouchY
	}

	// 检查鼠标
	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// IsTouchDevice 检测当前是否为触摸设备
// 移动端构建或者最近一次指针输入来自触摸时返回 true
func IsTouchDevice() bool {
	return IsMobile() || touchActive
}

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// 定义颜色常量
var (
	backgroundColor  = color.NRGBA{R: 0x2E, G: 0x34, B: 0x40, A: 0xFF} // 深色背景
	displayBgColor   = color.NRGBA{R: 0x3B, G: 0x42, B: 0x52, A: 0xFF} // 显示区背景
	displayFgColor   = color.NRGBA{R: 0xEC, G: 0xEF, B: 0xF4, A: 0xFF} // 时间文字
	displayEdgeColor = color.NRGBA{R: 0x4C, G: 0x56, B: 0x6A, A: 0xFF}
	footerColor      = color.NRGBA{R: 0xD8, G: 0xDE, B: 0xE9, A: 0xFF}
	startColor       = color.NRGBA{R: 0xA3, G: 0xBE, B: 0x8C, A: 0xFF} // 绿色
	pauseColor       = color.NRGBA{R: 0xEB, G: 0xCB, B: 0x8B, A: 0xFF} // 黄色
	resetColor       = color.NRGBA{R: 0xBF, G: 0x61, B: 0x6A, A: 0xFF} // 红色
	buttonTextColor  = color.NRGBA{R: 0x2E, G: 0x34, B: 0x40, A: 0xFF}
)

// stopwatchTheme 固定明暗模式，并把按钮配色换成秒表的配色
type stopwatchTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func newStopwatchTheme(dark bool) fyne.Theme {
	variant := theme.VariantLight
	if dark {
		variant = theme.VariantDark
	}
	return &stopwatchTheme{Theme: theme.DefaultTheme(), variant: variant}
}

func (t *stopwatchTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return startColor
	case theme.ColorNameWarning:
		return pauseColor
	case theme.ColorNameError:
		return resetColor
	case theme.ColorNameForegroundOnSuccess, theme.ColorNameForegroundOnWarning, theme.ColorNameForegroundOnError:
		return buttonTextColor
	case theme.ColorNameBackground:
		if t.variant == theme.VariantDark {
			return backgroundColor
		}
	}
	return t.Theme.Color(name, t.variant)
}

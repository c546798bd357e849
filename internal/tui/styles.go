package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

var (
	// Colors
	primaryColor = lipgloss.Color("99")  // Purple
	successColor = lipgloss.Color("42")  // Green
	warningColor = lipgloss.Color("226") // Yellow
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("245") // Gray
	accentColor  = lipgloss.Color("212") // Pink

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingLeft(1).
			PaddingRight(1).
			MarginBottom(1)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(accentColor).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(primaryColor)

	folderStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	structuralStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	dirtyStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(successColor).
			MarginTop(1)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true).
				MarginTop(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor).
			MarginTop(1)
)

// kindStyle picks the label style for a node kind.
func kindStyle(kind style.NodeKind) lipgloss.Style {
	switch kind {
	case style.KindAssetFolder, style.KindVariableFolder, style.KindGraphicFolder,
		style.KindCellFolder, style.KindColumnFolder:
		return folderStyle
	case style.KindStyle, style.KindTimingTower, style.KindTimingTowerTable, style.KindTimingTowerRow:
		return structuralStyle
	default:
		return lipgloss.NewStyle()
	}
}

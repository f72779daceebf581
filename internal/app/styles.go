package app

import "github.com/charmbracelet/lipgloss"

var (
	paneStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	popupStyle     = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1)
	cardStyle      = paneStyle.Copy().BorderForeground(lipgloss.Color("240"))
	cardSelected   = paneStyle.Copy().BorderForeground(lipgloss.Color("62"))
	cardPinned     = paneStyle.Copy().BorderForeground(lipgloss.Color("214"))
	viewerStyle    = popupStyle.Copy().BorderForeground(lipgloss.Color("62"))
	shareStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("204")).Padding(0, 1)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	pinStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	feedbackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	imageStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("246"))
	tabActiveStyle = tabStyle.Copy().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	backdropStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

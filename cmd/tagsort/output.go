package main

import "github.com/charmbracelet/lipgloss"

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func primaryText(s string) string { return primaryStyle.Render(s) }

func successText(s string) string { return successStyle.Render(s) }

func warningText(s string) string { return warningStyle.Render(s) }

func errorText(s string) string { return errorStyle.Render(s) }

func mutedText(s string) string { return mutedStyle.Render(s) }

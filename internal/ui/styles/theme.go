// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability and degrades gracefully on limited terminals.
type Theme struct {
	// Terminal capabilities
	ColorProfile termenv.Profile
	HasTrueColor bool

	// ==========================================================================
	// HEADER AND STATUS STYLES
	// ==========================================================================

	HeaderTitle lipgloss.Style
	HeaderModel lipgloss.Style
	StatusBar   lipgloss.Style
	Spinner     lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	UserText       lipgloss.Style
	AssistantText  lipgloss.Style
	ErrorText      lipgloss.Style
	Timestamp      lipgloss.Style

	// ==========================================================================
	// PICKER AND INPUT STYLES
	// ==========================================================================

	PickerTitle    lipgloss.Style
	PickerCategory lipgloss.Style
	PickerItem     lipgloss.Style
	PickerSelected lipgloss.Style
	InputPrompt    lipgloss.Style
	Help           lipgloss.Style
}

// palette, ANSI-256 fallbacks chosen to stay readable on dark terminals.
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#9D79F6"}
	colorUser    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	colorError   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	colorSurface = lipgloss.AdaptiveColor{Light: "#EAEEF2", Dark: "#21262D"}
)

// NewTheme builds a theme for the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	return &Theme{
		ColorProfile: profile,
		HasTrueColor: profile == termenv.TrueColor,

		HeaderTitle: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		HeaderModel: lipgloss.NewStyle().Foreground(colorMuted),
		StatusBar:   lipgloss.NewStyle().Foreground(colorMuted).Background(colorSurface).Padding(0, 1),
		Spinner:     lipgloss.NewStyle().Foreground(colorAccent),

		UserLabel:      lipgloss.NewStyle().Bold(true).Foreground(colorUser),
		AssistantLabel: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		UserText:       lipgloss.NewStyle(),
		AssistantText:  lipgloss.NewStyle(),
		ErrorText:      lipgloss.NewStyle().Foreground(colorError),
		Timestamp:      lipgloss.NewStyle().Faint(true),

		PickerTitle:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		PickerCategory: lipgloss.NewStyle().Bold(true).Foreground(colorMuted),
		PickerItem:     lipgloss.NewStyle().PaddingLeft(2),
		PickerSelected: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(colorAccent),
		InputPrompt:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Help:           lipgloss.NewStyle().Faint(true),
	}
}

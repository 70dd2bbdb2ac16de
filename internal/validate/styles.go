/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"os"

	"charm.land/lipgloss/v2"
)

// Styles contains the styles for rendering validation reports
type Styles struct {
	Pass lipgloss.Style
	Warn lipgloss.Style
	Fail lipgloss.Style

	Header lipgloss.Style
	Name   lipgloss.Style
	Subtle lipgloss.Style
	Bold   lipgloss.Style

	// Whether colours are enabled
	UseColour bool
}

// Colours are optimised based on terminal background (dark vs light).
func NewStyles(useColour bool) *Styles {
	s := &Styles{UseColour: useColour}

	if useColour {
		// Detect terminal background and select appropriate colours
		hasDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

		var (
			headerText  string
			successText string
			warningText string
			errorText   string
			keyText     string
			subtleText  string
		)

		if hasDark {
			headerText = "12"  // Bright Blue
			successText = "10" // Green
			warningText = "11" // Yellow
			errorText = "9"    // Red
			keyText = "14"     // Cyan
			subtleText = "8"   // Dark Grey
		} else {
			headerText = "4"  // Blue
			successText = "2" // Green
			warningText = "3" // Yellow/Brown
			errorText = "1"   // Red
			keyText = "6"     // Cyan
			subtleText = "8"  // Grey
		}

		s.Pass = lipgloss.NewStyle().
			Foreground(lipgloss.Color(successText))

		s.Warn = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningText)).
			Bold(true)

		s.Fail = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorText)).
			Bold(true)

		s.Header = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(headerText))

		s.Name = lipgloss.NewStyle().
			Foreground(lipgloss.Color(keyText))

		s.Subtle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(subtleText))

		s.Bold = lipgloss.NewStyle().Bold(true)
	} else {
		// No colour - all styles are plain
		s.Pass = lipgloss.NewStyle()
		s.Warn = lipgloss.NewStyle()
		s.Fail = lipgloss.NewStyle()
		s.Header = lipgloss.NewStyle()
		s.Name = lipgloss.NewStyle()
		s.Subtle = lipgloss.NewStyle()
		s.Bold = lipgloss.NewStyle()
	}

	return s
}

// statusStyle returns the style matching a finding status.
func (s *Styles) statusStyle(status Status) lipgloss.Style {
	switch status {
	case StatusPass:
		return s.Pass
	case StatusWarn:
		return s.Warn
	default:
		return s.Fail
	}
}

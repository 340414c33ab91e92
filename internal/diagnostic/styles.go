// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package diagnostic

import "github.com/charmbracelet/lipgloss"

var (
	messageStyle = lipgloss.NewStyle().Bold(true)
	sourceStyle  = lipgloss.NewStyle().Faint(true)
	caretStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	gutterStyle  = lipgloss.NewStyle().Faint(true)
)

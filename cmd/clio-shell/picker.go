// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"
	"github.com/muesli/termenv"

	"github.com/clio-history/clio/lib/clioui"
)

const pickerVisibleRows = 12

// pickerModel is the Ctrl-R fuzzy history picker: a query box over the
// full unified history view, ranked by clioui.FuzzyMatch.
type pickerModel struct {
	input      textinput.Model
	candidates []string // newest first
	matches    []string
	cursor     int
	slab       *util.Slab

	styleQuery    lipgloss.Style
	styleSelected lipgloss.Style
	stylePlain    lipgloss.Style

	selected string
	accepted bool
}

func newPickerModel(candidates []string) pickerModel {
	input := textinput.New()
	input.Placeholder = "fuzzy search history..."
	input.Focus()

	profile := termenv.NewOutput(os.Stderr).Profile
	renderer := lipgloss.NewRenderer(os.Stderr)
	if profile != termenv.Ascii {
		renderer.SetColorProfile(profile)
	}

	model := pickerModel{
		input:         input,
		candidates:    candidates,
		matches:       candidates,
		slab:          util.MakeSlab(100*1024, 2048),
		styleQuery:    renderer.NewStyle().Bold(true),
		styleSelected: renderer.NewStyle().Reverse(true),
		stylePlain:    renderer.NewStyle(),
	}
	return model
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.accepted = false
			return m, tea.Quit
		case tea.KeyEnter:
			if m.cursor < len(m.matches) {
				m.selected = m.matches[m.cursor]
				m.accepted = true
			}
			return m, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	previousValue := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != previousValue {
		m.rerank()
	}
	return m, cmd
}

// rerank re-scores every candidate against the current query and
// sorts survivors by descending fuzzy score, most recent first among
// ties (candidates is already newest-first).
func (m *pickerModel) rerank() {
	query := []rune(m.input.Value())
	if len(query) == 0 {
		m.matches = m.candidates
		m.cursor = 0
		return
	}

	type scored struct {
		text  string
		score int
		index int
	}
	var hits []scored
	for index, candidate := range m.candidates {
		result := clioui.FuzzyMatch(candidate, query, m.slab)
		if result.Score > 0 {
			hits = append(hits, scored{text: candidate, score: result.Score, index: index})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].index < hits[j].index
	})

	matches := make([]string, len(hits))
	for i, hit := range hits {
		matches[i] = hit.text
	}
	m.matches = matches
	m.cursor = 0
}

func (m pickerModel) View() string {
	view := m.styleQuery.Render("history> ") + m.input.View() + "\n"

	start := 0
	if m.cursor >= pickerVisibleRows {
		start = m.cursor - pickerVisibleRows + 1
	}
	end := start + pickerVisibleRows
	if end > len(m.matches) {
		end = len(m.matches)
	}

	for i := start; i < end; i++ {
		line := m.matches[i]
		if i == m.cursor {
			view += m.styleSelected.Render(line) + "\n"
		} else {
			view += m.stylePlain.Render(line) + "\n"
		}
	}
	if len(m.matches) == 0 {
		view += m.stylePlain.Render("(no matches)") + "\n"
	}
	return view
}

// runPicker loads candidates (newest first) and runs the picker
// program to completion, returning the selected line and whether the
// user accepted one.
func runPicker(candidates []string) (string, bool, error) {
	program := tea.NewProgram(newPickerModel(candidates))
	finalModel, err := program.Run()
	if err != nil {
		return "", false, fmt.Errorf("clio-shell: running history picker: %w", err)
	}
	result, ok := finalModel.(pickerModel)
	if !ok || !result.accepted {
		return "", false, nil
	}
	return result.selected, true, nil
}

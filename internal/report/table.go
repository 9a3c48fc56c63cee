// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/contriboss/observe-go"
)

// Palette
var (
	ColorAccent  = lipgloss.Color("#20B9B4")
	ColorBorder  = lipgloss.Color("#16858E")
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#2C4A54")
)

// Styles holds the terminal styles of the CLI.
var Styles = struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Header:  lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1),
	Cell:    lipgloss.NewStyle().Padding(0, 1),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
}

var tableHeaders = []string{"experiment", "k", "configs", "features", "PFAs", "valid", "invalid", "direct", "indirect", "unobs", "time"}

// Table renders stats as a bordered terminal table.
func Table(stats []observe.TierStats) string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			s.Experiment,
			strconv.Itoa(s.Arity),
			configurations(s),
			strconv.Itoa(s.Features),
			strconv.Itoa(s.PFAs),
			strconv.Itoa(s.Valid),
			strconv.Itoa(s.Invalid),
			strconv.Itoa(s.Direct),
			strconv.Itoa(s.Indirect),
			strconv.Itoa(s.Unobservable),
			s.Elapsed.Round(time.Millisecond).String(),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.Header
			}
			return Styles.Cell
		})
	return t.String()
}

// Title writes a styled heading line.
func Title(w io.Writer, text string) {
	fmt.Fprintln(w, Styles.Title.Render(text))
}

// Success writes a status line marked as passed.
func Success(w io.Writer, text string) {
	fmt.Fprintf(w, "%s %s\n", Styles.Success.Render("✓"), Styles.Success.Render(text))
}

// Failure writes a status line marked as failed.
func Failure(w io.Writer, text string) {
	fmt.Fprintf(w, "%s %s\n", Styles.Error.Render("✗"), Styles.Error.Render(text))
}

// Info writes a muted informational line.
func Info(w io.Writer, text string) {
	fmt.Fprintf(w, "%s %s\n", Styles.Muted.Render("│"), text)
}

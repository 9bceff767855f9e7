package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hwidmann/rootline/pkg/kin"
	"github.com/hwidmann/rootline/pkg/tree"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PersonListModel - Interactive root person selection
// =============================================================================

// PersonListModel is the bubbletea model for choosing a chart root.
type PersonListModel struct {
	People   []tree.Person
	Cursor   int
	Selected *tree.Person
	Height   int
	Offset   int
}

// NewPersonListModel creates a person list sorted by (surname, given name, id).
func NewPersonListModel(people []tree.Person) PersonListModel {
	sorted := slices.Clone(people)
	slices.SortFunc(sorted, func(a, b tree.Person) int {
		return kin.Compare(
			kin.Person{ID: a.ID, GivenName: a.GivenName, Surname: a.Surname},
			kin.Person{ID: b.ID, GivenName: b.GivenName, Surname: b.Surname},
		)
	})
	return PersonListModel{
		People: sorted,
		Height: 15,
	}
}

func (m PersonListModel) Init() tea.Cmd {
	return nil
}

func (m PersonListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.People)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			person := m.People[m.Cursor]
			m.Selected = &person
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PersonListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root Person"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.People) {
		end = len(m.People)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.People[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{cursor, displayName(p), lifeYears(p), p.ID})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Years", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.People))))

	return b.String()
}

// pickRoot runs the interactive person picker and returns the selected
// person's id, or "" if the user quit without selecting.
func pickRoot(people []tree.Person) (string, error) {
	if len(people) == 0 {
		return "", fmt.Errorf("tree has no people")
	}

	model := NewPersonListModel(people)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	result, ok := final.(PersonListModel)
	if !ok || result.Selected == nil {
		return "", nil
	}
	return result.Selected.ID, nil
}

// =============================================================================
// Helpers
// =============================================================================

// displayName formats "Given Surname" with missing parts omitted.
func displayName(p tree.Person) string {
	name := strings.TrimSpace(p.GivenName + " " + p.Surname)
	if name == "" {
		return p.ID
	}
	return name
}

// lifeYears formats a compact birth/death column.
func lifeYears(p tree.Person) string {
	if p.BirthDate == "" && p.DeathDate == "" {
		return "—"
	}
	birth := yearOf(p.BirthDate)
	switch {
	case p.DeathDate != "":
		return birth + " to " + yearOf(p.DeathDate)
	case p.Living:
		return birth + " to present"
	default:
		return birth
	}
}

// yearOf extracts the leading year from a date string like "1968-04-02".
func yearOf(date string) string {
	if i := strings.IndexByte(date, '-'); i > 0 {
		return date[:i]
	}
	return date
}

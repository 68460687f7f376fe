package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/layerkit/psd-reader/psd"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#444444")).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// entry is one browsable node: a section or a single layer.
type entry struct {
	title  string
	detail string
}

func buildEntries(doc *psd.Document) []entry {
	entries := []entry{
		{title: "Header", detail: doc.Header.String()},
		{title: "Color Mode Data", detail: doc.ColorModeData.String()},
		{title: "Image Resources", detail: doc.ImageResources.String()},
		{title: "Layer and Mask Info", detail: doc.LayerAndMaskInfo.String()},
	}
	for i, layer := range doc.LayerAndMaskInfo.Layers {
		entries = append(entries, entry{
			title:  fmt.Sprintf("  Layer %d (%s)", i, layer.BlendMode.Name),
			detail: layer.String(),
		})
	}
	entries = append(entries, entry{title: "Image Data", detail: doc.ImageData.String()})
	return entries
}

type browserModel struct {
	filename string
	entries  []entry
	selected int
	detail   viewport.Model
	width    int
	height   int
	ready    bool
}

func runInteractive(filename string, doc *psd.Document) error {
	m := browserModel{
		filename: filename,
		entries:  buildEntries(doc),
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		detailWidth := m.width - m.listWidth() - 4
		if detailWidth < 20 {
			detailWidth = 20
		}
		if !m.ready {
			m.detail = viewport.New(detailWidth, m.height-4)
			m.ready = true
		} else {
			m.detail.Width = detailWidth
			m.detail.Height = m.height - 4
		}
		m.detail.SetContent(m.entries[m.selected].detail)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.detail.SetContent(m.entries[m.selected].detail)
				m.detail.GotoTop()
			}
		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
				m.detail.SetContent(m.entries[m.selected].detail)
				m.detail.GotoTop()
			}
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m browserModel) listWidth() int {
	w := 0
	for _, e := range m.entries {
		if len(e.title) > w {
			w = len(e.title)
		}
	}
	return w + 2
}

func (m browserModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var list string
	for i, e := range m.entries {
		line := e.title
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = entryStyle.Render("  " + line)
		}
		list += line + "\n"
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.listWidth()).Render(list),
		detailStyle.Render(m.detail.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("psdinfo: "+m.filename),
		body,
		helpStyle.Render("↑/↓ select · pgup/pgdn scroll · q quit"),
	)
}

// Package tui implements the interactive annotation browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driving"
)

var (
	detailStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder())

	bookStyle = lipgloss.NewStyle().Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	notFoundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("161")).
			Italic(true)
)

// item adapts an annotation to the bubbles list.
type item struct {
	annotation domain.Annotation
}

func (i item) Title() string {
	ref := reference(i.annotation)
	if ref == "" {
		return i.annotation.Book
	}
	return fmt.Sprintf("%s · %s", i.annotation.Book, ref)
}

func (i item) Description() string {
	text := strings.ReplaceAll(i.annotation.Text, "\n", " ")
	if len(text) > 80 {
		text = text[:77] + "..."
	}
	return text
}

func (i item) FilterValue() string {
	return i.annotation.Book + " " + i.annotation.Text
}

// reference renders the kind/page/location summary for a list row.
func reference(a domain.Annotation) string {
	var parts []string
	if a.Kind != "" {
		parts = append(parts, string(a.Kind))
	}
	if a.Page != "" {
		parts = append(parts, "page "+a.Page)
	}
	if a.Location != "" {
		parts = append(parts, "loc "+a.Location)
	}
	return strings.Join(parts, " · ")
}

// contextMsg carries a finished context lookup back to Update.
type contextMsg struct {
	annotation domain.Annotation
	context    domain.Context
}

// Browser is the bubbletea model: a list of annotations with an
// on-demand context detail view.
type Browser struct {
	list    list.Model
	locator driving.ContextLocator

	showingDetail bool
	detail        string
	width         int
	height        int
}

// NewBrowser creates the browser over the parsed annotations.
func NewBrowser(annotations []domain.Annotation, locator driving.ContextLocator) Browser {
	items := make([]list.Item, len(annotations))
	for i, annotation := range annotations {
		items[i] = item{annotation: annotation}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Clippings"
	l.SetShowStatusBar(false)

	return Browser{list: l, locator: locator}
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.list.SetSize(msg.Width, msg.Height)
		return b, nil

	case contextMsg:
		b.detail = renderDetail(msg.annotation, msg.context)
		b.showingDetail = true
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return b, tea.Quit
		case "q":
			if b.showingDetail {
				b.showingDetail = false
				return b, nil
			}
			if !b.list.SettingFilter() {
				return b, tea.Quit
			}
		case "esc":
			if b.showingDetail {
				b.showingDetail = false
				return b, nil
			}
		case "enter":
			if !b.showingDetail && !b.list.SettingFilter() {
				if selected, ok := b.list.SelectedItem().(item); ok {
					return b, b.lookupContext(selected.annotation)
				}
			}
		}
	}

	if b.showingDetail {
		return b, nil
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

// View implements tea.Model.
func (b Browser) View() string {
	if b.showingDetail {
		style := detailStyle
		if b.width > 4 {
			style = style.Width(b.width - 4)
		}
		return style.Render(b.detail)
	}
	return b.list.View()
}

// lookupContext runs the locator off the update loop and delivers the
// result as a message.
func (b Browser) lookupContext(annotation domain.Annotation) tea.Cmd {
	return func() tea.Msg {
		return contextMsg{
			annotation: annotation,
			context:    b.locator.Locate(context.Background(), annotation),
		}
	}
}

// renderDetail formats the detail view for one annotation.
func renderDetail(annotation domain.Annotation, ctx domain.Context) string {
	var b strings.Builder

	b.WriteString(bookStyle.Render(annotation.Book))
	b.WriteString("\n")
	if ref := reference(annotation); ref != "" {
		b.WriteString(labelStyle.Render(ref))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Note"))
	b.WriteString("\n")
	b.WriteString(annotation.Text)
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Context"))
	b.WriteString("\n")
	if ctx.Found {
		b.WriteString(ctx.Window)
	} else {
		b.WriteString(notFoundStyle.Render("Not found"))
	}
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("esc: back · q: quit"))

	return b.String()
}

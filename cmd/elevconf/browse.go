package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/elevconf/configtree"
	"go.jacobcolvin.com/elevconf/log"
	"go.jacobcolvin.com/elevconf/settings"
)

const (
	maxLogLines   = 200
	shownLogLines = 5
	detailLines   = 6
)

var errNotTerminal = errors.New("browse needs an interactive terminal")

func (a *app) newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Explore a settings file interactively",
		Long: `browse shows every setting in a file with its value, type, and comments.
Settings that were replaced by their defaults are marked, and log output
from loading the file is shown at the bottom.

Keys: up/down or j/k move, pgup/pgdown page, g/G jump to the start or end,
q quits.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{logToPublisher: "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			out, ok := a.stdout.(*os.File)
			if !ok || !term.IsTerminal(int(out.Fd())) {
				return errNotTerminal
			}

			f, err := a.load(args[0])
			if err != nil {
				return err
			}

			m := newBrowseModel(args[0], f, a.publisher.Subscribe())
			if w, h, err := term.GetSize(int(out.Fd())); err == nil {
				m.width, m.height = w, h
			}

			_, err = tea.NewProgram(m, tea.WithInput(a.stdin), tea.WithOutput(a.stdout)).Run()

			return err
		},
	}
}

// row is one node of the tree, flattened for display.
type row struct {
	key      string
	path     string
	kind     string
	value    string
	comments []string
	depth    int
	warned   bool
}

// logMsg carries one log entry from the publisher. A nil entry means the
// publisher was closed.
type logMsg []byte

type browseModel struct {
	sub    *log.Subscription
	file   string
	rows   []row
	logs   []string
	width  int
	height int
	cursor int
	offset int
	warned int
}

func newBrowseModel(file string, f *settings.File, sub *log.Subscription) *browseModel {
	warned := make(map[string]bool)
	for _, w := range f.Root.Warnings() {
		warned[w.Path] = true
	}

	m := &browseModel{
		sub:    sub,
		file:   file,
		width:  80,
		height: 24,
		warned: len(f.Warnings),
	}

	for _, c := range f.Root.Children() {
		m.rows = appendRows(m.rows, c, 0, warned)
	}

	return m
}

func appendRows(rows []row, n *configtree.Node, depth int, warned map[string]bool) []row {
	children := n.Children()

	r := row{
		key:      n.Key(),
		path:     n.Path(),
		kind:     n.Describe(),
		comments: n.Comments(),
		depth:    depth,
		warned:   warned[n.Path()],
	}

	if len(children) == 0 {
		r.value = summarize(n)
	}

	rows = append(rows, r)
	for _, c := range children {
		rows = appendRows(rows, c, depth+1, warned)
	}

	return rows
}

// summarize renders a leaf value on one line.
func summarize(n *configtree.Node) string {
	raw, err := n.Encode()
	if err != nil {
		return "<" + err.Error() + ">"
	}

	b, err := yaml.MarshalWithOptions(raw, yaml.Flow(true))
	if err != nil {
		return fmt.Sprint(raw)
	}

	return strings.TrimSpace(string(b))
}

func (m *browseModel) waitForLog() tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-m.sub.C()
		if !ok {
			return logMsg(nil)
		}

		return logMsg(entry)
	}
}

// Init starts listening for log entries.
func (m *browseModel) Init() tea.Cmd {
	return m.waitForLog()
}

// Update handles navigation, resize, and log messages.
func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sub.Close()

			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.listHeight())
		case "pgdown":
			m.move(m.listHeight())
		case "home", "g":
			m.move(-len(m.rows))
		case "end", "G":
			m.move(len(m.rows))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.move(0)

	case logMsg:
		if msg == nil {
			return m, nil
		}

		m.logs = append(m.logs, strings.TrimRight(string(msg), "\n"))
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}

		return m, m.waitForLog()
	}

	return m, nil
}

// move shifts the cursor by delta rows and scrolls to keep it visible.
func (m *browseModel) move(delta int) {
	if len(m.rows) == 0 {
		return
	}

	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)

	h := m.listHeight()
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+h:
		m.offset = m.cursor - h + 1
	}
}

func (m *browseModel) listHeight() int {
	logs := min(len(m.logs), shownLogLines)
	if logs > 0 {
		logs++
	}

	return max(m.height-1-detailLines-logs, 3)
}

// View renders the tree, the selected setting, and recent log output.
func (m *browseModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true

	return v
}

func (m *browseModel) render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d settings, %d warnings\n", m.file, len(m.rows), m.warned)

	end := min(m.offset+m.listHeight(), len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		mark := " "
		if r.warned {
			mark = "!"
		}

		line := fmt.Sprintf("%s%s %s%s", cursor, mark, strings.Repeat("  ", r.depth), r.key)
		if r.value != "" {
			line += ": " + r.value
		}

		b.WriteString(m.clip(line))
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat("─", max(m.width, 1)))
	b.WriteByte('\n')

	if len(m.rows) > 0 {
		r := m.rows[m.cursor]

		details := []string{"path: " + r.path, "type: " + r.kind}
		if r.warned {
			details = append(details, "invalid input; default value substituted")
		}

		for _, c := range r.comments {
			details = append(details, "# "+c)
		}

		for _, d := range details[:min(len(details), detailLines-1)] {
			b.WriteString(m.clip(d))
			b.WriteByte('\n')
		}
	}

	if len(m.logs) > 0 {
		b.WriteString(strings.Repeat("─", max(m.width, 1)))
		b.WriteByte('\n')

		for _, l := range m.logs[max(len(m.logs)-shownLogLines, 0):] {
			b.WriteString(m.clip(l))
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func (m *browseModel) clip(s string) string {
	r := []rune(s)
	if m.width > 0 && len(r) > m.width {
		return string(r[:m.width])
	}

	return s
}

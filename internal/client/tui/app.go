// internal/client/tui/app.go
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"chatrelay/internal/client/models"
	"chatrelay/internal/client/network"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

const helpText = `Commands:
/image <path> [width]  - convert an image to ASCII art
/docx <path>           - upload a Word document
/nick <name>           - change your display name
/help                  - show this help
/quit                  - leave`

type Model struct {
	viewport viewport.Model
	input    textinput.Model
	handler  *network.Handler
	lines    []string
	width    int
	height   int
	err      error
}

func NewModel(handler *network.Handler) Model {
	input := textinput.New()
	input.Placeholder = "Type a message, /help for commands..."
	input.Focus()
	input.CharLimit = 1000

	fd := uintptr(os.Stdout.Fd())
	width, height, err := term.GetSize(fd)
	if err != nil {
		width = 80
		height = 24
	}

	vp := viewport.New(width, height-4)
	vp.SetContent("")
	input.Width = width - 8

	return Model{
		viewport: vp,
		input:    input,
		handler:  handler,
		width:    width,
		height:   height,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.input.Width = msg.Width - 8
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.handler.Close()
			return m, tea.Quit
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if value == "" {
				break
			}
			if quit := m.handleInput(value); quit {
				m.handler.Close()
				return m, tea.Quit
			}
		}

	case models.IncomingText:
		m.appendLine(msg.Message)

	case models.ASCIIResult:
		m.appendLine(noticeStyle.Render("ASCII art:"))
		m.appendLine(msg.Art)

	case models.DocxStatus:
		m.appendLine(noticeStyle.Render("[server] " + msg.Message))

	case models.RawResponse:
		m.appendLine(string(msg.Data))

	case models.ConnectionLost:
		m.err = msg.Err
		m.appendLine(errorStyle.Render(fmt.Sprintf("Connection lost: %v", msg.Err)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleInput routes a submitted line: slash commands act locally, anything
// else is relayed as chat. Returns true when the user asked to leave.
func (m *Model) handleInput(value string) bool {
	if !strings.HasPrefix(value, "/") {
		m.handler.SendText(value)
		m.appendLine(fmt.Sprintf("%s (you): %s", m.handler.Name(), value))
		return false
	}

	fields := strings.Fields(value)
	switch fields[0] {
	case "/quit":
		return true

	case "/help":
		m.appendLine(noticeStyle.Render(helpText))

	case "/nick":
		if len(fields) < 2 {
			m.appendLine(errorStyle.Render("usage: /nick <name>"))
			break
		}
		m.handler.SetName(fields[1])
		m.appendLine(noticeStyle.Render("You are now " + fields[1]))

	case "/image":
		if len(fields) < 2 {
			m.appendLine(errorStyle.Render("usage: /image <path> [width]"))
			break
		}
		width := 0
		if len(fields) > 2 {
			if parsed, err := strconv.Atoi(fields[2]); err == nil {
				width = parsed
			}
		}
		if err := m.handler.SendImageRequest(fields[1], width); err != nil {
			m.appendLine(errorStyle.Render(fmt.Sprintf("Cannot read %s: %v", fields[1], err)))
			break
		}
		m.appendLine(noticeStyle.Render("Image sent for conversion..."))

	case "/docx":
		if len(fields) < 2 {
			m.appendLine(errorStyle.Render("usage: /docx <path>"))
			break
		}
		if err := m.handler.SendDocxFile(fields[1]); err != nil {
			m.appendLine(errorStyle.Render(fmt.Sprintf("Cannot read %s: %v", fields[1], err)))
			break
		}
		m.appendLine(noticeStyle.Render("Document uploaded..."))

	default:
		m.appendLine(errorStyle.Render("Unknown command, /help for the list"))
	}

	return false
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf(" chatrelay — %s ", m.handler.Name()))
	return fmt.Sprintf("%s\n%s\n%s",
		header,
		m.viewport.View(),
		inputStyle.Render(m.input.View()),
	)
}

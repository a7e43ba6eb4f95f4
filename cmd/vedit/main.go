// Command vedit is the thin CLI/process boundary around the editor core
// (spec.md §6, SPEC_FULL.md AMBIENT STACK "CLI / process boundary"): it
// owns raw-mode terminal entry/exit, the bubbletea Program loop standing
// in for the Display thread, SIGWINCH-driven resize, and whole-file I/O.
// Grounded on the teacher's cmd/minivim/main.go top-level setup (load a
// file into a Buffer/Window/Editor triple, then register key handlers)
// translated from its home-grown riffkey/tui App loop into bubbletea's
// tea.Model, since riffkey is an unfetchable sibling module (DESIGN.md)
// and bubbletea is already a direct dependency the teacher itself
// declared but never wired up.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vedit/internal/buffer"
	"vedit/internal/command"
	"vedit/internal/editor"
	"vedit/internal/input"
	"vedit/internal/render"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	var buf *buffer.Buffer
	if path != "" {
		buf = buffer.NewFromPathOrEmpty(path)
	} else {
		buf = buffer.NewFromString("\n")
	}

	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 80, 24
	}

	m := model{
		ed:    editor.New(buf, w, h-2), // footerRows = 2: status + message line
		theme: render.DarkTheme(),
		w:     w,
		h:     h,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	go watchResize(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "vedit:", err)
		os.Exit(1)
	}
}

// watchResize forwards SIGWINCH as a tea.Msg (spec.md §6's Signal thread
// collaborator), reading the new size via the winsize ioctl rather than
// trusting the signal's absence of a payload.
func watchResize(p *tea.Program) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	for range ch {
		ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
		if err != nil {
			continue
		}
		p.Send(resizeMsg{w: int(ws.Col), h: int(ws.Row)})
	}
}

type resizeMsg struct{ w, h int }

type model struct {
	ed    *editor.Editor
	theme render.Theme
	w, h  int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resizeMsg:
		m.w, m.h = msg.w, msg.h
		m.ed.Dispatch.Apply(command.Resize(m.w, m.h-2))
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.ed.Dispatch.Apply(command.Resize(m.w, m.h-2))
		return m, nil

	case tea.KeyMsg:
		m.ed.HandleKey(keyToElem(msg))
		if m.ed.Quit {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	blk := m.ed.Dispatch.Blocks[m.ed.Dispatch.Focus]
	blk.Focused = true
	rows := render.Rows(blk, m.theme)

	out := ""
	for _, r := range rows {
		out += r.String() + "\r\n"
	}
	for i := len(rows); i < blk.Height; i++ {
		out += "~\r\n"
	}
	if m.ed.Interp.State.Mode == command.ModeCli {
		out += render.CliLine(m.ed.Dispatch.CliText(), m.theme) + "\r\n"
	} else if m.ed.StatusLine != "" {
		out += m.ed.StatusLine + "\r\n"
	} else {
		out += "\r\n"
	}
	out += render.StatusLine(m.ed.Dispatch, m.ed.Interp.State.Mode, m.w, m.theme)
	return out
}

// keyToElem normalizes a bubbletea KeyMsg into this module's own Elem
// token (spec.md §6.1's Input thread boundary: raw terminal decoding is
// out of core scope, but the normalization into Elem is not).
func keyToElem(msg tea.KeyMsg) input.Elem {
	switch msg.Type {
	case tea.KeyUp:
		return input.Up
	case tea.KeyDown:
		return input.Down
	case tea.KeyLeft:
		return input.Left
	case tea.KeyRight:
		return input.Right
	case tea.KeyEnter:
		return input.Enter
	case tea.KeyEsc:
		return input.Esc
	case tea.KeyBackspace:
		return input.Backspace
	case tea.KeyDelete:
		return input.Delete
	case tea.KeyTab:
		return input.Tab
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			if msg.Alt {
				return input.Alt(msg.Runes[0])
			}
			return input.Char(msg.Runes[0])
		}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return input.Control(rune('a' + int(msg.Type-tea.KeyCtrlA)))
	}
	return input.Char(' ')
}

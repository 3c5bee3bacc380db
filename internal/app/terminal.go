package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/abbrev/internal/engine/buffer"
	"github.com/dshills/abbrev/internal/logging"
)

const tabWidth = 4

var (
	styleText      = tcell.StyleDefault
	styleCursor    = tcell.StyleDefault.Reverse(true)
	styleStatus    = tcell.StyleDefault.Reverse(true)
	styleStatusErr = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

// Terminal drives a Session from tcell key events.
//
// Keys:
//
//	printable, Enter, Tab   type (expanding abbreviations)
//	Backspace               delete before each cursor
//	Left/Right, Home/End    move all cursors
//	Ctrl-Left/Ctrl-Right    move by word
//	Ctrl-D                  add a cursor on the next line
//	Esc                     keep only the primary cursor
//	Ctrl-Z / Ctrl-Y         undo / redo
//	Ctrl-E                  toggle expansion
//	Ctrl-S                  save
//	Ctrl-Q                  quit
type Terminal struct {
	screen  tcell.Screen
	session *Session
	logger  *logging.Logger

	status    string
	statusErr bool
	top       int
}

// NewTerminal creates a front end on an initialised screen.
func NewTerminal(screen tcell.Screen, session *Session, logger *logging.Logger) *Terminal {
	return &Terminal{
		screen:  screen,
		session: session,
		logger:  logger.WithComponent("terminal"),
	}
}

// Run draws and handles events until quit.
func (t *Terminal) Run() error {
	t.Draw()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := t.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		t.Draw()
	}
}

// HandleEvent applies one event to the session. It returns ErrQuit when
// the user asks to leave or an interrupt event is posted.
func (t *Terminal) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventInterrupt:
		return ErrQuit
	case *tcell.EventKey:
		return t.handleKey(ev)
	}
	return nil
}

func (t *Terminal) handleKey(ev *tcell.EventKey) error {
	s := t.session
	var err error

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return ErrQuit
	case tcell.KeyRune:
		err = s.InsertChar(ev.Rune())
	case tcell.KeyEnter:
		err = s.InsertChar('\n')
	case tcell.KeyTab:
		err = s.InsertChar('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		err = s.Backspace()
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			s.MoveCursors(MotionPrevWord)
		} else {
			s.MoveCursors(MotionLeft)
		}
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			s.MoveCursors(MotionNextWord)
		} else {
			s.MoveCursors(MotionRight)
		}
	case tcell.KeyHome:
		s.MoveCursors(MotionLineStart)
	case tcell.KeyEnd:
		s.MoveCursors(MotionLineEnd)
	case tcell.KeyCtrlD:
		t.addCursorBelow()
	case tcell.KeyEsc:
		s.CollapseToPrimary()
	case tcell.KeyCtrlZ:
		err = s.Undo()
	case tcell.KeyCtrlY:
		err = s.Redo()
	case tcell.KeyCtrlE:
		s.SetEnabled(!s.Enabled())
		t.setStatus(fmt.Sprintf("expansion %s", onOff(s.Enabled())), false)
		return nil
	case tcell.KeyCtrlS:
		if err = s.Save(); err == nil {
			t.setStatus("saved "+s.Path(), false)
			return nil
		}
	default:
		return nil
	}

	if err != nil {
		t.logger.Debug("key %v: %v", ev.Name(), err)
		t.setStatus(err.Error(), true)
		return nil
	}
	t.status = ""
	return nil
}

// addCursorBelow adds a cursor on the line after the primary one, at the
// same byte column or the line end.
func (t *Terminal) addCursorBelow() {
	snap := t.session.Snapshot()
	line, col := snap.Position(t.session.Selection().Primary().Cursor())
	lines := snap.Lines()
	if line+1 >= len(lines) {
		return
	}
	next := lines[line+1]
	if col > len(next) {
		col = len(next)
	}
	t.session.AddCursor(snap.LineStart(line+1) + buffer.ByteOffset(col))
}

func (t *Terminal) setStatus(msg string, isErr bool) {
	t.status = msg
	t.statusErr = isErr
}

// Interrupt makes Run return. Safe to call from any goroutine.
func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Status returns the current status message.
func (t *Terminal) Status() string {
	return t.status
}

// Draw renders the session.
func (t *Terminal) Draw() {
	t.screen.Clear()
	width, height := t.screen.Size()
	if height < 2 {
		t.screen.Show()
		return
	}
	rows := height - 1

	snap := t.session.Snapshot()
	sel := t.session.Selection()
	lines := snap.Lines()

	primaryLine, primaryCol := snap.Position(sel.Primary().Cursor())
	t.scrollTo(primaryLine, rows)

	for y := 0; y < rows && t.top+y < len(lines); y++ {
		drawLine(t.screen, y, width, lines[t.top+y])
	}

	for i, r := range sel.Ranges() {
		if i == sel.PrimaryIndex() {
			continue
		}
		line, col := snap.Position(r.Cursor())
		y := line - t.top
		if y < 0 || y >= rows {
			continue
		}
		x := displayWidth(lines[line][:col])
		mainc, combc, _, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if mainc == 0 {
			mainc = ' '
		}
		t.screen.SetContent(x, y, mainc, combc, styleCursor)
	}

	t.screen.ShowCursor(displayWidth(lines[primaryLine][:primaryCol]), primaryLine-t.top)
	t.drawStatus(height-1, width)
	t.screen.Show()
}

func (t *Terminal) scrollTo(line, rows int) {
	if line < t.top {
		t.top = line
	}
	if line >= t.top+rows {
		t.top = line - rows + 1
	}
}

func (t *Terminal) drawStatus(y, width int) {
	s := t.session
	left := fmt.Sprintf(" abbrev %s | %d cursor(s)", onOff(s.Enabled()), s.Selection().Len())
	if s.Modified() {
		left += " | modified"
	}
	style := styleStatus
	if t.status != "" {
		left += " | " + t.status
		if t.statusErr {
			style = styleStatusErr
		}
	}
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
	drawString(t.screen, 0, y, width, left, style)
}

func drawLine(screen tcell.Screen, y, width int, line string) {
	x := 0
	for _, r := range line {
		if x >= width {
			return
		}
		if r == '\t' {
			x += tabWidth - x%tabWidth
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		screen.SetContent(x, y, r, nil, styleText)
		x += w
	}
}

func drawString(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// displayWidth returns the number of cells s occupies when drawn from
// column zero.
func displayWidth(s string) int {
	if !strings.ContainsRune(s, '\t') {
		return runewidth.StringWidth(s)
	}
	x := 0
	for _, r := range s {
		if r == '\t' {
			x += tabWidth - x%tabWidth
			continue
		}
		x += runewidth.RuneWidth(r)
	}
	return x
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

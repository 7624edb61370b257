package tui

import (
	"fmt"

	"github.com/vovakirdan/vitamin-drop/internal/app"
	"github.com/vovakirdan/vitamin-drop/internal/board"
	"github.com/vovakirdan/vitamin-drop/internal/core"
	"github.com/vovakirdan/vitamin-drop/internal/drag"
	"github.com/vovakirdan/vitamin-drop/internal/feedback"
)

// Draw paints the active screen of g into s.
func Draw(g *app.Game, s *core.Screen) {
	s.Clear()
	switch g.Screen() {
	case app.ScreenMain:
		drawTitle(g, s)
	case app.ScreenGameplay:
		drawGameplay(g, s)
	case app.ScreenFinished:
		drawFinished(g, s)
	}
}

func drawTitle(g *app.Game, s *core.Screen) {
	mid := s.Height() / 2
	s.DrawTextCentered(mid-3, "V I T A M I N   D R O P", core.ColorBrightYellow)
	s.DrawTextCentered(mid-1, "Drag every food that contains the vitamin", core.ColorWhite)
	s.DrawTextCentered(mid, "into the answer box with your mouse.", core.ColorWhite)
	s.DrawTextCentered(mid+2, "Press enter to start", core.ColorBrightGreen)
	s.DrawTextCentered(mid+4, soundLabel(g), core.ColorGray)
}

func drawGameplay(g *app.Game, s *core.Screen) {
	view := g.View()
	outcome := g.Outcome()
	sessionMistakes, _ := g.Mistakes()

	s.DrawTextCentered(0, fmt.Sprintf("Which foods contain vitamin %s?", view.Vitamin), core.ColorBrightYellow)
	s.DrawText(1, 1, fmt.Sprintf("Round %d/%d", view.Index+1, view.Total), core.ColorGray)
	status := fmt.Sprintf("Placed %d/%d  Mistakes %d", outcome.Placed, outcome.Required, sessionMistakes)
	if g.RoundEnding() {
		status = "Next round coming up..."
	}
	s.DrawTextCentered(1, status, core.ColorWhite)
	sound := soundLabel(g)
	s.DrawText(s.Width()-len([]rune(sound))-1, 1, sound, core.ColorGray)

	b := g.Board()
	source, target := b.Zone(drag.Source), b.Zone(drag.Target)
	s.DrawBox(source, core.ColorGray)
	s.DrawText(source.X+2, source.Y, " Foods ", core.ColorGray)
	s.DrawBox(target, core.ColorGreen)
	s.DrawText(target.X+2, target.Y, fmt.Sprintf(" Vitamin %s ", view.Vitamin), core.ColorGreen)

	m := g.Machine()
	session, dragging := m.Session()
	for _, tok := range b.DrawOrder() {
		if tok.Placeholder {
			continue
		}
		x, y := b.WorldPosition(tok.Handle).Cell()
		s.DrawText(x, y, tok.Text(), tokenColor(m, tok, dragging && session.Token == tok.Handle))
	}

	if msg, ok := g.Banner(); ok {
		color := core.ColorBrightGreen
		if msg.Kind == feedback.Negative {
			color = core.ColorRed
		}
		s.DrawTextCentered(target.Bottom(), msg.Text, color)
	}
}

func tokenColor(m *drag.Machine, tok board.Token, dragged bool) core.Color {
	switch {
	case dragged:
		return core.ColorBrightYellow
	case m.Locked(tok.Handle):
		return core.ColorBrightGreen
	default:
		return core.ColorWhite
	}
}

func drawFinished(g *app.Game, s *core.Screen) {
	mistakes, _ := g.Mistakes()
	stats := g.DropStats()
	mid := s.Height() / 2
	s.DrawTextCentered(mid-2, "All rounds complete!", core.ColorBrightGreen)
	s.DrawTextCentered(mid, fmt.Sprintf("Rounds %d   Mistakes %d", g.RoundsDone(), mistakes), core.ColorWhite)
	s.DrawTextCentered(mid+1, fmt.Sprintf("Placed %d   Bounced back %d", stats.Commits, stats.SnapBacks), core.ColorGray)
	s.DrawTextCentered(mid+3, "r to play again, q to quit", core.ColorGray)
}

func soundLabel(g *app.Game) string {
	if g.Muted() {
		return "sound off"
	}
	return "sound on"
}

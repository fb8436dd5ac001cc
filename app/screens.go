package app

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/mist"
	"github.com/phanxgames/mist/quiz"
)

const (
	margin      = 56.0
	buttonH     = 104.0
	buttonGap   = 22.0
	refsButtonW = 220.0
	refsButtonH = 72.0
)

// onNav resets per-screen state whenever the navigator moves.
func (g *Game) onNav(s quiz.NavState) {
	g.fade.Start()
	g.press = pressTracker{}
	g.showRefs = false
	g.reveal = nil
	g.question = nil
	switch s.Screen {
	case mist.ScreenQuiz:
		if t, err := g.nav.Current(); err == nil {
			g.question = quiz.NewQuestion(t)
		}
	case mist.ScreenFinal:
		g.initials = g.initials[:0]
		g.posted = false
		g.rank = -1
		g.loadBoard()
		g.qualifies = g.board.Qualifies(g.session.Score())
	case mist.ScreenLanding:
		g.session.Reset()
		g.fog.ResetTrail()
	}
	g.log.Debug("nav", "screen", s.Screen.String(), "index", s.Index, "total", s.Total, "topic", s.Topic)
}

func (g *Game) loadBoard() {
	entries, err := g.board.Entries()
	if err != nil {
		g.log.Error("leaderboard_load_failed", "error", err)
	}
	g.entries = entries
}

func (g *Game) handlePointer(e mist.PointerEvent) {
	if b, ok := g.press.handle(g.buttons(), e); ok && b.action != nil {
		b.action()
	}
}

// buttons lays out the tappable controls for the current screen.
func (g *Game) buttons() []button {
	cw, ch := g.vp.CanvasW, g.vp.CanvasH
	w := cw - 2*margin
	if !g.gate.Unlocked() {
		r := column(cw, ch*0.55, w, buttonH, 0, 1)[0]
		return []button{{id: "unlock", rect: r, label: "Enter", style: stylePrimary, action: g.submitPassword}}
	}

	if g.showRefs {
		p := refsPanel(cw, ch)
		r := mist.Rect{X: p.X + p.Width - 24 - refsButtonW, Y: p.Y + 24, Width: refsButtonW, Height: refsButtonH}
		return []button{{id: "close_refs", rect: r, label: "Close", style: styleMuted, action: func() { g.showRefs = false }}}
	}

	s := g.nav.State()
	switch s.Screen {
	case mist.ScreenLanding:
		topics := g.nav.Topics()
		rects := column(cw, ch*0.28, w, buttonH, buttonGap, len(topics))
		bs := make([]button, len(topics), len(topics)+1)
		for i, t := range topics {
			title := t.Title
			bs[i] = button{id: "topic:" + title, rect: rects[i], label: title, action: func() {
				if err := g.nav.SelectTopic(title); err != nil {
					g.log.Error("select_topic_failed", "topic", title, "error", err)
				}
			}}
		}
		r := mist.Rect{X: cw - margin - refsButtonW, Y: ch - margin - refsButtonH, Width: refsButtonW, Height: refsButtonH}
		bs = append(bs, button{id: "references", rect: r, label: "References", style: styleMuted, action: func() { g.showRefs = true }})
		return bs

	case mist.ScreenQuiz:
		if g.question == nil {
			return nil
		}
		answers := g.question.Topic.Answers
		rects := column(cw, ch*0.36, w, buttonH+16, buttonGap, len(answers))
		bs := make([]button, 0, len(answers)+2)
		for i, a := range answers {
			b := button{id: fmt.Sprintf("answer:%d", i), rect: rects[i], label: a.Text, action: func() { g.answer(i) }}
			if g.revealed() {
				switch {
				case a.Correct:
					b.style = styleCorrect
				case i == g.question.Selected():
					b.style = styleWrong
				default:
					b.style = styleMuted
				}
				b.action = nil
			}
			bs = append(bs, b)
		}
		half := (w - buttonGap) / 2
		y := ch - margin - buttonH
		bs = append(bs, button{id: "exit", rect: mist.Rect{X: margin, Y: y, Width: half, Height: buttonH},
			label: "Exit", style: styleMuted, action: g.nav.Exit})
		if g.revealed() {
			label := "Next"
			if s.Index+1 >= s.Total {
				label = "See results"
			}
			bs = append(bs, button{id: "next", rect: mist.Rect{X: margin + half + buttonGap, Y: y, Width: half, Height: buttonH},
				label: label, style: stylePrimary, action: func() {
					if err := g.nav.Next(); err != nil {
						g.log.Error("next_failed", "error", err)
					}
				}})
		}
		return bs

	case mist.ScreenFinal:
		var bs []button
		y := ch - margin - buttonH
		if g.canSubmit() {
			bs = append(bs, button{id: "submit", rect: mist.Rect{X: margin, Y: y - buttonH - buttonGap, Width: w, Height: buttonH},
				label: "Save score", style: stylePrimary, action: g.submitScore})
		}
		bs = append(bs, button{id: "restart", rect: mist.Rect{X: margin, Y: y, Width: w, Height: buttonH},
			label: "Back to topics", action: g.nav.Restart})
		return bs
	}
	return nil
}

func (g *Game) revealed() bool {
	return g.question != nil && g.question.Answered() && g.reveal != nil && g.reveal.Done()
}

func (g *Game) answer(i int) {
	if g.question == nil {
		return
	}
	correct, err := g.question.Answer(i)
	if err != nil {
		return
	}
	g.session.Record(correct)
	g.reveal = NewDelay(float32(g.cfg.Quiz.RevealDelay.Seconds()))
	g.log.Debug("answer", "topic", g.question.Topic.Title, "choice", i, "correct", correct)
}

func (g *Game) submitPassword() {
	if g.gate.Submit(string(g.password)) {
		g.log.Info("gate_unlocked")
		g.fade.Start()
	}
	g.password = g.password[:0]
}

// canSubmit reports whether the final screen takes initials.
func (g *Game) canSubmit() bool {
	return !g.posted && g.qualifies
}

func (g *Game) submitScore() {
	if !g.canSubmit() {
		return
	}
	entries, rank, err := g.board.Submit(string(g.initials), g.session.Score())
	if err != nil {
		g.log.Warn("leaderboard_submit_failed", "error", err)
		if entries == nil {
			return
		}
	}
	g.entries = entries
	g.rank = rank
	g.posted = true
	g.log.Info("score_submitted", "initials", string(g.initials), "score", g.session.Score(), "rank", rank)
}

// textField returns the text input on screen, its length limit, and its
// submit action. field is nil when nothing takes text.
func (g *Game) textField() (field *[]rune, limit int, submit func()) {
	switch {
	case !g.gate.Unlocked():
		return &g.password, 64, g.submitPassword
	case g.nav.State().Screen == mist.ScreenFinal && g.canSubmit():
		return &g.initials, 3, g.submitScore
	}
	return nil, 0, nil
}

// updateTyping feeds keyboard text to the gate password or the initials
// field, whichever is on screen.
func (g *Game) updateTyping() {
	field, limit, submit := g.textField()
	if field == nil {
		return
	}

	before := len(*field)
	for _, r := range ebiten.AppendInputChars(nil) {
		if len(*field) >= limit {
			break
		}
		if field == &g.initials {
			r = unicode.ToUpper(r)
			if r < 'A' || r > 'Z' {
				continue
			}
		}
		*field = append(*field, r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(*field) > 0 {
		*field = (*field)[:len(*field)-1]
	}
	if len(*field) != before {
		g.gate.ClearError()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		submit()
	}
}

// drawScreen draws the current screen's content (everything under the fog).
func (g *Game) drawScreen(dst *ebiten.Image) {
	cw, ch := g.vp.CanvasW, g.vp.CanvasH
	w := cw - 2*margin
	f := g.fonts

	if !g.gate.Unlocked() {
		f.title.Draw(dst, "Welcome", cw/2, ch*0.3, text.AlignCenter, colText)
		f.body.DrawWrapped(dst, "Enter the password to continue.", cw/2, ch*0.38, w, text.AlignCenter, colTextDim)
		f.title.Draw(dst, strings.Repeat("•", len(g.password))+"_", cw/2, ch*0.46, text.AlignCenter, colText)
		if g.gate.Failed() {
			f.body.Draw(dst, "Incorrect password", cw/2, ch*0.52, text.AlignCenter, colError)
		}
		g.drawButtons(dst)
		return
	}

	s := g.nav.State()
	switch s.Screen {
	case mist.ScreenLanding:
		f.title.DrawWrapped(dst, "Through the Fog", cw/2, ch*0.1, w, text.AlignCenter, colText)
		f.body.DrawWrapped(dst, "Choose a topic to begin. Touch the fog to clear it.", cw/2, ch*0.18, w, text.AlignCenter, colTextDim)

	case mist.ScreenQuiz:
		if g.question == nil {
			break
		}
		t := g.question.Topic
		f.small.Draw(dst, fmt.Sprintf("Question %d of %d", s.Index+1, s.Total), margin, margin, text.AlignStart, colTextDim)
		y := margin + f.small.LineHeight() + 12
		y += f.title.DrawWrapped(dst, t.Title, margin, y, w, text.AlignStart, colText) + 16
		f.body.DrawWrapped(dst, t.Question, margin, y, w, text.AlignStart, colText)
		if g.revealed() {
			n := len(t.Answers)
			top := ch*0.36 + float64(n)*(buttonH+16+buttonGap) + 8
			f.body.DrawWrapped(dst, t.Explanation, margin, top, w, text.AlignStart, colTextDim)
		}

	case mist.ScreenFinal:
		f.title.Draw(dst, "Well done", cw/2, margin, text.AlignCenter, colText)
		f.body.Draw(dst, fmt.Sprintf("%d of %d correct  ·  %d points", g.session.Correct(), g.session.Answered(), g.session.Score()),
			cw/2, margin+f.title.LineHeight()+8, text.AlignCenter, colTextDim)
		y := margin + f.title.LineHeight() + f.body.LineHeight() + 48
		for i, e := range g.entries {
			clr := colText
			if g.posted && i == g.rank {
				clr = colHighlight
			}
			f.body.Draw(dst, fmt.Sprintf("%2d.  %-3s", i+1, e.Initials), margin+40, y, text.AlignStart, clr)
			f.body.Draw(dst, fmt.Sprintf("%d", e.Score), cw-margin-40, y, text.AlignEnd, clr)
			y += f.body.LineHeight() + 4
		}
		promptY := ch - margin - 3*buttonH - 2*buttonGap
		switch {
		case g.canSubmit():
			prompt := "Your initials: " + string(g.initials) + strings.Repeat("_", 3-len(g.initials))
			f.body.Draw(dst, prompt, cw/2, promptY, text.AlignCenter, colText)
		case !g.posted:
			f.body.Draw(dst, "Not quite enough for the board this time", cw/2, promptY, text.AlignCenter, colTextDim)
		}
	}
	if !g.showRefs {
		g.drawButtons(dst)
	}
}

// refsPanel is the references panel rectangle.
func refsPanel(cw, ch float64) mist.Rect {
	return mist.Rect{X: margin / 2, Y: ch * 0.1, Width: cw - margin, Height: ch * 0.8}
}

// drawReferences draws the references panel above the fog.
func (g *Game) drawReferences(dst *ebiten.Image) {
	cw, ch := g.vp.CanvasW, g.vp.CanvasH
	p := refsPanel(cw, ch)
	vector.DrawFilledRect(dst, 0, 0, float32(cw), float32(ch), colBackdrop, false)
	vector.DrawFilledRect(dst, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), colPanel, true)
	vector.StrokeRect(dst, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, colTextDim, true)

	f := g.fonts
	x, w := p.X+40, p.Width-80
	y := p.Y + 40
	f.title.Draw(dst, "References", x, y, text.AlignStart, colAccent)
	y += f.title.LineHeight() + 40
	for i, ref := range g.refs {
		y += f.small.DrawWrapped(dst, fmt.Sprintf("%d. %s", i+1, ref), x, y, w, text.AlignStart, colTextDim) + 16
	}
	g.drawButtons(dst)
}

func (g *Game) drawButtons(dst *ebiten.Image) {
	for _, b := range g.buttons() {
		drawButton(dst, g.fonts.body, b, b.id == g.press.pressed)
	}
}

func (g *Game) debugLine() string {
	s := g.nav.State()
	line := fmt.Sprintf("TPS %.0f  FPS %.0f  %s %d/%d  density %.2f->%.2f  trail %s",
		ebiten.ActualTPS(), ebiten.ActualFPS(), s.Screen, s.Index+1, s.Total,
		g.fog.Density(), g.fog.TargetDensity(), g.fog.Backend())
	if g.fog.Disabled() {
		line += "  fog disabled"
	}
	return line
}

package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/cutoff/knobkit"
	"github.com/cutoff/knobkit/control"
	"github.com/cutoff/knobkit/internal/demo"
	"github.com/cutoff/knobkit/internal/tone"
	"github.com/cutoff/knobkit/remote"
)

const (
	windowW      = 960
	windowH      = 620
	uiSampleRate = 48000

	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale

	knobRadius = 34

	pianoBaseNote  = 48 // C3, two octaves of white keys upward
	pianoWhiteKeys = 14

	// Pointer id spaces for the note tracker. The mouse is pointer 0,
	// touches shift up by one, the computer keyboard counts down from -2
	// and MIDI keys live above 1000, so the sources never collide.
	mousePointer    = 0
	touchBase       = 1
	keyPointerBase  = -2
	midiPointerBase = 1000
)

var (
	bgColor        = color.RGBA{192, 192, 192, 255}
	panelColor     = color.RGBA{192, 192, 192, 255}
	borderColor    = color.RGBA{128, 128, 128, 255}
	buttonColor    = color.RGBA{192, 192, 192, 255}
	highlightColor = color.RGBA{0, 0, 128, 255}
	focusColor     = color.RGBA{255, 200, 0, 255}

	// 3D bevel colors for old-school embossed look.
	bevelLight  = color.RGBA{255, 255, 255, 255}
	bevelDarker = color.RGBA{64, 64, 64, 255}

	// Sunken panel interiors.
	sunkenBgColor = color.RGBA{24, 24, 32, 255}

	sliderFillColor = color.RGBA{0, 0, 128, 255}

	whiteKeyColor = color.RGBA{230, 230, 230, 255}
	blackKeyColor = color.RGBA{24, 24, 32, 255}
)

// White key degrees within an octave, and which of them carry a sharp.
var (
	whiteSemis = [7]int{0, 2, 4, 5, 7, 9, 11}
	blackAfter = [7]bool{true, true, false, true, true, true, false}
)

var repeatKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyArrowUp, "ArrowUp"},
	{ebiten.KeyArrowDown, "ArrowDown"},
	{ebiten.KeyArrowLeft, "ArrowLeft"},
	{ebiten.KeyArrowRight, "ArrowRight"},
}

var pressKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyHome, "Home"},
	{ebiten.KeyEnd, "End"},
	{ebiten.KeySpace, " "},
	{ebiten.KeyEnter, "Enter"},
}

// pianoKeys is the usual tracker-style letter row, one octave up from the
// on-screen keyboard's base note.
var pianoKeys = []struct {
	key  ebiten.Key
	step int
}{
	{ebiten.KeyA, 0}, {ebiten.KeyW, 1}, {ebiten.KeyS, 2}, {ebiten.KeyE, 3},
	{ebiten.KeyD, 4}, {ebiten.KeyF, 5}, {ebiten.KeyT, 6}, {ebiten.KeyG, 7},
	{ebiten.KeyY, 8}, {ebiten.KeyH, 9}, {ebiten.KeyU, 10}, {ebiten.KeyJ, 11},
	{ebiten.KeyK, 12},
}

type uiLayout struct {
	cells  map[string]image.Rectangle
	piano  image.Rectangle
	help   image.Rectangle
	status image.Rectangle
}

func buildLayout() uiLayout {
	pad := 16
	gap := 12
	knobW, knobH := 150, 160
	rowH := 44

	cells := make(map[string]image.Rectangle)
	x := pad
	for _, id := range []string{"gain", "pan", "cutoff"} {
		cells[id] = image.Rect(x, pad, x+knobW, pad+knobH)
		x += knobW + gap
	}
	for i, id := range []string{"wave", "power", "accent"} {
		top := pad + i*(rowH+gap)
		cells[id] = image.Rect(x, top, x+knobW, top+rowH)
	}
	help := image.Rect(x+knobW+gap, pad, windowW-pad, pad+knobH)

	resTop := pad + knobH + gap
	cells["resonance"] = image.Rect(pad, resTop, windowW-pad, resTop+rowH)
	lvlTop := resTop + rowH + gap
	cells["level"] = image.Rect(pad, lvlTop, windowW-pad, lvlTop+rowH)

	statusH := 36
	status := image.Rect(pad, windowH-pad-statusH, windowW-pad, windowH-pad)
	piano := image.Rect(pad, lvlTop+rowH+gap, windowW-pad, status.Min.Y-gap)

	return uiLayout{cells: cells, piano: piano, help: help, status: status}
}

type game struct {
	board  *demo.Board
	engine *tone.Engine
	player *tone.Player

	tracker *control.NoteTracker
	noteIDs map[int]int // pointer id -> engine voice id

	layout uiLayout

	focus      int
	mouseHold  *knobkit.Control
	keyHold    *knobkit.Control
	hover      map[string]bool
	touchHolds map[ebiten.TouchID]*knobkit.Control

	justTouched []ebiten.TouchID
	liveTouches []ebiten.TouchID
	goneTouches []ebiten.TouchID

	midiCh      chan midi.Message
	midiStop    func()
	midiSend    func(midi.Message) error
	midiInName  string
	midiOutName string

	remoteSrv  *remote.Server
	remoteStop context.CancelFunc
	listenAddr string

	textCache map[string]*ebiten.Image
}

func newGame(listenAddr, midiIn, midiOut string) (*game, error) {
	d, err := demo.Build()
	if err != nil {
		return nil, err
	}
	engine := tone.New(uiSampleRate, tone.DefaultParams())
	d.BindSynth(engine)
	player, err := tone.NewPlayer(uiSampleRate, engine)
	if err != nil {
		return nil, err
	}

	g := &game{
		board:      d,
		engine:     engine,
		player:     player,
		layout:     buildLayout(),
		noteIDs:    make(map[int]int),
		hover:      make(map[string]bool),
		touchHolds: make(map[ebiten.TouchID]*knobkit.Control),
		midiCh:     make(chan midi.Message, 64),
		textCache:  make(map[string]*ebiten.Image, 1024),
	}
	g.tracker = control.NewNoteTracker(control.NoteTrackerConfig{
		OnNoteOn: func(note, pointerID int) {
			g.noteIDs[pointerID] = engine.NoteOn(note, d.NoteVelocity())
		},
		OnNoteOff: func(note, pointerID int) {
			if id, ok := g.noteIDs[pointerID]; ok {
				engine.NoteOff(id)
				delete(g.noteIDs, pointerID)
			}
		},
	})
	d.OnChange(func(c *knobkit.Control) {
		if g.remoteSrv != nil {
			g.remoteSrv.Publish(demo.StateOf(c))
		}
		if g.midiSend != nil {
			for _, fb := range d.Mapper.Feedback(c) {
				_ = g.midiSend(fb)
			}
		}
	})

	if err := g.openMIDI(midiIn, midiOut); err != nil {
		return nil, err
	}
	if listenAddr != "" {
		g.startRemote(listenAddr)
	}
	player.Play()
	return g, nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.drainMIDI()
	g.drainRemote()
	g.handleMouse()
	g.handleTouches()
	g.handleKeys()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	for i, c := range g.board.Controls() {
		cell, ok := g.layout.cells[c.ID()]
		if !ok {
			continue
		}
		switch g.board.Kinds[c.ID()] {
		case "slider":
			g.drawSlider(screen, cell, c)
		case "switch":
			fill := buttonColor
			if c.On() {
				fill = highlightColor
			}
			g.drawButton(screen, cell, fmt.Sprintf("%s: %s", c.Name(), c.Text()), fill)
		case "selector":
			g.drawButton(screen, cell, fmt.Sprintf("%s: %s", c.Name(), c.Text()), buttonColor)
		default:
			g.drawKnob(screen, cell, c)
		}
		if i == g.focus {
			drawFocusRing(screen, cell)
		}
	}
	g.drawHelp(screen, g.layout.help)
	g.drawPiano(screen, g.layout.piano)
	g.drawStatus(screen, g.layout.status)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return windowW, windowH
}

func (g *game) Close() {
	g.tracker.CancelAll()
	g.board.Dispose()
	if g.midiStop != nil {
		g.midiStop()
	}
	if g.remoteStop != nil {
		g.remoteStop()
	}
	_ = g.player.Stop()
}

func (g *game) handleMouse() {
	mx, my := ebiten.CursorPosition()

	// Hover crossings run before the press so a paint-across gesture sees
	// the previous frame's global button state and a press-with-jump never
	// fires twice.
	g.trackSwitchHover(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.board.SetGlobalPointer(true)
		g.mouseHold = g.press(mousePointer, mx, my)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.mouseHold != nil {
			g.mouseHold.PointerMove(float64(mx), float64(my))
		}
		if _, ok := g.tracker.Held(mousePointer); ok {
			g.tracker.PointerMove(mousePointer, g.noteAt(mx, my))
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.board.SetGlobalPointer(false)
		if g.mouseHold != nil {
			g.mouseHold.PointerUp()
			g.mouseHold = nil
		}
		g.tracker.PointerUp(mousePointer)
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		if c, _ := g.controlAt(mx, my); c != nil {
			c.Wheel(wy)
		}
	}
}

// press routes a pointer press. It returns the control now held, if any, so
// the caller can feed it moves and the release.
func (g *game) press(pointer, mx, my int) *knobkit.Control {
	if pointInRect(mx, my, g.layout.piano) {
		g.tracker.PointerDown(pointer, g.noteAt(mx, my))
		return nil
	}
	c, cell := g.controlAt(mx, my)
	if c == nil {
		return nil
	}
	g.focusOn(c)
	if c.Stepper() != nil {
		c.Click()
		return nil
	}
	c.PointerDown(float64(mx), float64(my), rectOf(cell))
	return c
}

func (g *game) handleTouches() {
	g.justTouched = inpututil.AppendJustPressedTouchIDs(g.justTouched[:0])
	for _, id := range g.justTouched {
		x, y := ebiten.TouchPosition(id)
		if c := g.press(touchPointer(id), x, y); c != nil {
			g.touchHolds[id] = c
		}
	}
	g.liveTouches = ebiten.AppendTouchIDs(g.liveTouches[:0])
	for _, id := range g.liveTouches {
		x, y := ebiten.TouchPosition(id)
		if c := g.touchHolds[id]; c != nil {
			c.PointerMove(float64(x), float64(y))
		}
		if _, ok := g.tracker.Held(touchPointer(id)); ok {
			g.tracker.PointerMove(touchPointer(id), g.noteAt(x, y))
		}
	}
	g.goneTouches = inpututil.AppendJustReleasedTouchIDs(g.goneTouches[:0])
	for _, id := range g.goneTouches {
		if c := g.touchHolds[id]; c != nil {
			c.PointerUp()
			delete(g.touchHolds, id)
		}
		g.tracker.PointerUp(touchPointer(id))
	}
}

func (g *game) handleKeys() {
	controls := g.board.Controls()
	if n := len(controls); n > 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			if ebiten.IsKeyPressed(ebiten.KeyShift) {
				g.focus = (g.focus + n - 1) % n
			} else {
				g.focus = (g.focus + 1) % n
			}
		}
		focused := controls[g.focus]
		for _, k := range repeatKeys {
			if keyRepeats(k.key) {
				focused.Key(k.name)
			}
		}
		for _, k := range pressKeys {
			if inpututil.IsKeyJustPressed(k.key) {
				// Remember which switch took the press so the release
				// reaches it even if focus moves in between.
				if focused.Key(k.name) && focused.Button() != nil {
					g.keyHold = focused
				}
			}
			if inpututil.IsKeyJustReleased(k.key) {
				if g.keyHold != nil {
					g.keyHold.KeyUp(k.name)
					g.keyHold = nil
				} else {
					focused.KeyUp(k.name)
				}
			}
		}
	}
	for i, k := range pianoKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.tracker.PointerDown(keyPointerBase-i, pianoBaseNote+12+k.step)
		}
		if inpututil.IsKeyJustReleased(k.key) {
			g.tracker.PointerUp(keyPointerBase - i)
		}
	}
}

// keyRepeats reports a just-pressed key, then auto-repeat while held.
func keyRepeats(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= 24 && (d-24)%6 == 0
}

func (g *game) trackSwitchHover(mx, my int) {
	for _, c := range g.board.Controls() {
		if c.Button() == nil {
			continue
		}
		cell, ok := g.layout.cells[c.ID()]
		if !ok {
			continue
		}
		inside := pointInRect(mx, my, cell)
		if inside == g.hover[c.ID()] {
			continue
		}
		g.hover[c.ID()] = inside
		if inside {
			c.PointerEnter()
		} else {
			c.PointerLeave()
		}
	}
}

func (g *game) controlAt(mx, my int) (*knobkit.Control, image.Rectangle) {
	for _, c := range g.board.Controls() {
		cell, ok := g.layout.cells[c.ID()]
		if ok && pointInRect(mx, my, cell) {
			return c, cell
		}
	}
	return nil, image.Rectangle{}
}

func (g *game) focusOn(c *knobkit.Control) {
	for i, other := range g.board.Controls() {
		if other == c {
			g.focus = i
			return
		}
	}
}

func (g *game) drainMIDI() {
	for {
		select {
		case msg := <-g.midiCh:
			if g.board.Mapper.HandleMessage(msg) {
				continue
			}
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				g.tracker.PointerDown(midiPointerBase+int(key), int(key))
			case msg.GetNoteEnd(&ch, &key):
				g.tracker.PointerUp(midiPointerBase + int(key))
			}
		default:
			return
		}
	}
}

func (g *game) drainRemote() {
	if g.remoteSrv == nil {
		return
	}
	for {
		select {
		case req := <-g.remoteSrv.Requests():
			if c := g.board.Control(req.ID); c != nil {
				c.SetNormalized(req.Normalized)
			}
		default:
			return
		}
	}
}

func (g *game) openMIDI(inName, outName string) error {
	if inName != "" {
		in, err := midi.FindInPort(inName)
		if err != nil {
			return fmt.Errorf("midi input %q not found (available: %s)", inName, inPortNames())
		}
		stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			// The listener runs on the driver goroutine; hand a copy to
			// the update loop and drop messages when it falls behind.
			m := append(midi.Message(nil), msg...)
			select {
			case g.midiCh <- m:
			default:
			}
		})
		if err != nil {
			return fmt.Errorf("midi listen on %q: %w", inName, err)
		}
		g.midiStop = stop
		g.midiInName = in.String()
	}
	if outName != "" {
		out, err := midi.FindOutPort(outName)
		if err != nil {
			return fmt.Errorf("midi output %q not found (available: %s)", outName, outPortNames())
		}
		send, err := midi.SendTo(out)
		if err != nil {
			return fmt.Errorf("midi send to %q: %w", outName, err)
		}
		g.midiSend = send
		g.midiOutName = out.String()
	}
	return nil
}

func inPortNames() string {
	var names []string
	for _, p := range midi.GetInPorts() {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}

func outPortNames() string {
	var names []string
	for _, p := range midi.GetOutPorts() {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}

func (g *game) startRemote(addr string) {
	srv := remote.NewServer(nil, remote.ServerConfig{})
	srv.SetBoard(demo.Mirror(g.board.Board))
	mux := http.NewServeMux()
	srv.Register(mux, "/ws")
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})
	ctx, cancel := context.WithCancel(context.Background())
	g.remoteSrv = srv
	g.remoteStop = cancel
	g.listenAddr = addr
	go srv.Run(ctx)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("remote listen on %s: %v", addr, err)
		}
	}()
}

func (g *game) noteAt(mx, my int) int {
	rect := g.layout.piano
	if !pointInRect(mx, my, rect) {
		return control.NoNote
	}
	keysX := rect.Min.X + 2
	keysY := rect.Min.Y + 2
	keysH := rect.Dy() - 4
	whiteW := (rect.Dx() - 4) / pianoWhiteKeys
	bw := whiteW * 3 / 5
	// Black keys sit on top and win the upper part of the hit box.
	if my < keysY+keysH*3/5 {
		for i := 0; i < pianoWhiteKeys-1; i++ {
			if !blackAfter[i%7] {
				continue
			}
			bx := keysX + (i+1)*whiteW - bw/2
			if mx >= bx && mx < bx+bw {
				return whiteNote(i) + 1
			}
		}
	}
	wi := (mx - keysX) / whiteW
	if wi < 0 {
		wi = 0
	}
	if wi >= pianoWhiteKeys {
		wi = pianoWhiteKeys - 1
	}
	return whiteNote(wi)
}

func whiteNote(i int) int {
	return pianoBaseNote + (i/7)*12 + whiteSemis[i%7]
}

func touchPointer(id ebiten.TouchID) int { return touchBase + int(id) }

func rectOf(r image.Rectangle) control.Rect {
	return control.Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

func (g *game) drawKnob(screen *ebiten.Image, rect image.Rectangle, c *knobkit.Control) {
	g.drawPanel(screen, rect)
	g.drawCenteredText(screen, c.Name(), rect, rect.Min.Y+8)

	cx := float32(rect.Min.X) + float32(rect.Dx())/2
	cy := float32(rect.Min.Y+rect.Dy()/2) + 4
	vector.DrawFilledCircle(screen, cx, cy, knobRadius, sunkenBgColor, true)
	ring := borderColor
	if c.Dragging() {
		ring = focusColor
	}
	vector.StrokeCircle(screen, cx, cy, knobRadius, 2, ring, true)

	// Indicator sweeps 270 degrees from 7 o'clock to 5 o'clock.
	ang := (135 + 270*c.Normalized()) * math.Pi / 180
	tipX := cx + float32(math.Cos(ang)*(knobRadius-6))
	tipY := cy + float32(math.Sin(ang)*(knobRadius-6))
	vector.StrokeLine(screen, cx, cy, tipX, tipY, 3, sliderFillColor, true)

	g.drawCenteredText(screen, c.Text(), rect, rect.Max.Y-lineH-8)
}

func (g *game) drawSlider(screen *ebiten.Image, rect image.Rectangle, c *knobkit.Control) {
	g.drawPanel(screen, rect)
	g.drawText(screen, fmt.Sprintf("%s %s", c.Name(), c.Text()), rect.Min.X+8, rect.Min.Y+8)

	trackX := rect.Min.X + 240
	trackW := rect.Dx() - 256
	trackY := rect.Min.Y + rect.Dy()/2 - 4
	if trackW < 20 {
		return
	}
	// Sunken track groove.
	ebitenutil.DrawRect(screen, float64(trackX), float64(trackY), float64(trackW), 8, bevelDarker)
	ebitenutil.DrawRect(screen, float64(trackX), float64(trackY), float64(trackW-1), 1, borderColor)
	ebitenutil.DrawRect(screen, float64(trackX), float64(trackY), 1, 7, borderColor)
	// Fill.
	fillW := int(float64(trackW) * c.Normalized())
	if fillW > 2 {
		ebitenutil.DrawRect(screen, float64(trackX+1), float64(trackY+1), float64(fillW-1), 6, sliderFillColor)
	}
	// Raised knob.
	knobX := trackX + fillW - 5
	if knobX < trackX-5 {
		knobX = trackX - 5
	}
	if knobX > trackX+trackW-5 {
		knobX = trackX + trackW - 5
	}
	knobRect := image.Rect(knobX, trackY-4, knobX+10, trackY+12)
	ebitenutil.DrawRect(screen, float64(knobRect.Min.X), float64(knobRect.Min.Y), float64(knobRect.Dx()), float64(knobRect.Dy()), panelColor)
	drawBorder(screen, knobRect)
}

func (g *game) drawPiano(screen *ebiten.Image, rect image.Rectangle) {
	g.drawSunkenPanel(screen, rect)

	active := make(map[int]bool)
	for _, n := range g.tracker.ActiveNotes() {
		active[n] = true
	}
	keysX := rect.Min.X + 2
	keysY := rect.Min.Y + 2
	keysH := rect.Dy() - 4
	whiteW := (rect.Dx() - 4) / pianoWhiteKeys
	for i := 0; i < pianoWhiteKeys; i++ {
		fill := whiteKeyColor
		if active[whiteNote(i)] {
			fill = highlightColor
		}
		ebitenutil.DrawRect(screen, float64(keysX+i*whiteW+1), float64(keysY), float64(whiteW-2), float64(keysH), fill)
	}
	bw := whiteW * 3 / 5
	bh := keysH * 3 / 5
	for i := 0; i < pianoWhiteKeys-1; i++ {
		if !blackAfter[i%7] {
			continue
		}
		fill := blackKeyColor
		if active[whiteNote(i)+1] {
			fill = highlightColor
		}
		ebitenutil.DrawRect(screen, float64(keysX+(i+1)*whiteW-bw/2), float64(keysY), float64(bw), float64(bh), fill)
	}
}

func (g *game) drawHelp(screen *ebiten.Image, rect image.Rectangle) {
	g.drawSunkenPanel(screen, rect)
	lines := []string{
		"Tab  next control",
		"Arrows  adjust",
		"Space/Enter press",
		"A..K  play notes",
		"Esc  quit",
	}
	for i, line := range lines {
		g.drawText(screen, line, rect.Min.X+8, rect.Min.Y+8+i*lineH)
	}
}

func (g *game) drawStatus(screen *ebiten.Image, rect image.Rectangle) {
	g.drawSunkenPanel(screen, rect)
	parts := []string{g.board.Name()}
	if g.midiInName != "" {
		parts = append(parts, "in:"+g.midiInName)
	}
	if g.midiOutName != "" {
		parts = append(parts, "out:"+g.midiOutName)
	}
	if g.listenAddr != "" {
		parts = append(parts, "ws:"+g.listenAddr)
	}
	parts = append(parts, fmt.Sprintf("voices:%d", g.engine.ActiveVoiceCount()))
	msg := strings.Join(parts, "  ")
	maxChars := max(8, (rect.Dx()-16)/charW)
	g.drawText(screen, shortenEnd(msg, maxChars), rect.Min.X+8, rect.Min.Y+6)
}

func (g *game) drawPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), panelColor)
	drawBorder(screen, rect)
}

func (g *game) drawSunkenPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), sunkenBgColor)
	drawSunkenBorder(screen, rect)
}

func (g *game) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, fill color.Color) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), fill)
	drawBorder(screen, rect)
	labelW := len([]rune(label)) * charW
	x := rect.Min.X + (rect.Dx()-labelW)/2
	y := rect.Min.Y + (rect.Dy()-lineH)/2
	g.drawText(screen, label, x, y)
}

func (g *game) drawCenteredText(screen *ebiten.Image, msg string, rect image.Rectangle, y int) {
	x := rect.Min.X + (rect.Dx()-len([]rune(msg))*charW)/2
	g.drawText(screen, msg, x, y)
}

// drawBorder draws a raised 3D bevel (highlight top/left, shadow bottom/right).
func drawBorder(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w-1, 1, bevelLight)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, bevelLight)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelDarker)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelDarker)
	ebitenutil.DrawRect(screen, x+1, y+h-2, w-3, 1, borderColor)
	ebitenutil.DrawRect(screen, x+w-2, y+1, 1, h-3, borderColor)
}

// drawSunkenBorder draws a sunken 3D bevel (shadow top/left, highlight bottom/right).
func drawSunkenBorder(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w-1, 1, borderColor)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, borderColor)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelLight)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelLight)
	ebitenutil.DrawRect(screen, x+1, y+1, w-3, 1, bevelDarker)
	ebitenutil.DrawRect(screen, x+1, y+2, 1, h-4, bevelDarker)
}

func drawFocusRing(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x-2, y-2, w+4, 2, focusColor)
	ebitenutil.DrawRect(screen, x-2, y+h, w+4, 2, focusColor)
	ebitenutil.DrawRect(screen, x-2, y, 2, h, focusColor)
	ebitenutil.DrawRect(screen, x+w, y, 2, h, focusColor)
}

func (g *game) drawText(screen *ebiten.Image, msg string, x int, y int) {
	if msg == "" {
		return
	}
	img := g.textCache[msg]
	if img == nil {
		w := max(1, len([]rune(msg))*7)
		img = ebiten.NewImage(w, 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textCache) > 3000 {
			g.textCache = make(map[string]*ebiten.Image, 1024)
		}
		g.textCache[msg] = img
	}
	// Embossed shadow (dark offset behind text).
	opS := &ebiten.DrawImageOptions{}
	opS.GeoM.Scale(textScale, textScale)
	opS.GeoM.Translate(float64(x+2), float64(y+2))
	opS.ColorScale.Scale(0, 0, 0, 1)
	screen.DrawImage(img, opS)
	// Main text (white).
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func shortenEnd(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	if maxChars <= 3 {
		return string(r[:max(0, maxChars)])
	}
	return string(r[:maxChars-3]) + "..."
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>knobkit remote</title>
<style>
  body { font-family: monospace; background: #181820; color: #eee; margin: 2em; }
  .row { display: flex; align-items: center; gap: 1em; margin: .5em 0; }
  .row label { width: 8em; }
  .row output { width: 8em; }
  input[type=range] { width: 20em; }
  button { font-family: inherit; min-width: 20em; }
</style>
</head>
<body>
<h1 id="board">connecting...</h1>
<div id="controls"></div>
<script>
const rows = {};
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  if (msg.type === "board_init") {
    document.getElementById("board").textContent = msg.data.board;
    const root = document.getElementById("controls");
    root.textContent = "";
    for (const c of msg.data.controls) {
      root.appendChild(buildRow(c));
      update(c);
    }
  } else if (msg.type === "control_changed") {
    update(msg.data);
  }
};
function buildRow(c) {
  const row = document.createElement("div");
  row.className = "row";
  const label = document.createElement("label");
  label.textContent = c.name;
  row.appendChild(label);
  let input;
  if (c.kind === "switch") {
    input = document.createElement("button");
    input.onclick = () => send(c.id, rows[c.id].normalized >= 0.5 ? 0 : 1);
  } else {
    input = document.createElement("input");
    input.type = "range";
    input.min = 0;
    input.max = 1;
    input.step = 0.001;
    input.oninput = () => send(c.id, parseFloat(input.value));
  }
  row.appendChild(input);
  const out = document.createElement("output");
  row.appendChild(out);
  rows[c.id] = { input: input, out: out, normalized: c.normalized };
  return row;
}
function update(c) {
  const r = rows[c.id];
  if (!r) return;
  r.normalized = c.normalized;
  r.out.textContent = c.text;
  if (r.input.type === "range") {
    r.input.value = c.normalized;
  } else {
    r.input.textContent = c.text;
  }
}
function send(id, normalized) {
  ws.send(JSON.stringify({ type: "set", data: { id: id, normalized: normalized } }));
}
</script>
</body>
</html>
`

func main() {
	var (
		listenAddr = flag.String("listen", "", "serve the web mirror on this address, e.g. :8787")
		midiIn     = flag.String("midi-in", "", "MIDI input port substring for controller input")
		midiOut    = flag.String("midi-out", "", "MIDI output port substring for control feedback")
	)
	flag.Parse()
	defer midi.CloseDriver()

	g, err := newGame(*listenAddr, *midiIn, *midiOut)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("knobkit board")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

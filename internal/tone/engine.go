package tone

import (
	"math"
	"sync"
	"sync/atomic"
)

const twoPi = math.Pi * 2

type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
	WaveSquare
	WaveSaw
	WaveNoise
)

type Params struct {
	Voices     int
	MasterGain float64
	AttackSec  float64
	ReleaseSec float64
}

func DefaultParams() Params {
	return Params{
		Voices:     8,
		MasterGain: 0.25,
		AttackSec:  0.004,
		ReleaseSec: 0.25,
	}
}

type envState int

const (
	envAttack envState = iota
	envSustain
	envRelease
	envOff
)

type voice struct {
	active    bool
	id        int
	age       int
	wave      Wave
	freq      float64
	phase     float64
	velocity  float64
	env       float64
	envState  envState
	noiseLFSR uint16
}

// Engine is a small polyphonic synthesizer. NoteOn, NoteOff and the
// setters are safe to call while another goroutine runs Process; the
// continuous parameters go through atomics so the UI can sweep them
// without waiting on the audio thread.
type Engine struct {
	sampleRate float64
	params     Params

	mu     sync.Mutex
	voices []voice
	nextID int
	wave   Wave

	masterGain uint64 // float64 bits
	pan        uint64
	cutoff     uint64
	resonance  uint64

	lastCutoff float64
	alpha      float64
	lp1        float64
	lp2        float64
}

func storeFloat(dst *uint64, v float64) { atomic.StoreUint64(dst, math.Float64bits(v)) }
func loadFloat(src *uint64) float64     { return math.Float64frombits(atomic.LoadUint64(src)) }

func New(sampleRate int, params Params) *Engine {
	if params.Voices <= 0 {
		params.Voices = 8
	}
	e := &Engine{
		sampleRate: float64(sampleRate),
		params:     params,
		voices:     make([]voice, params.Voices),
	}
	storeFloat(&e.masterGain, params.MasterGain)
	storeFloat(&e.cutoff, float64(sampleRate)*0.45)
	for i := range e.voices {
		e.voices[i].noiseLFSR = uint16(0xACE1 + i*97)
	}
	return e
}

// NoteOn starts a voice with the engine's current waveform and returns
// the voice id to pass to NoteOff.
func (e *Engine) NoteOn(note, velocity int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	slot := e.stealVoice()
	id := e.nextID
	e.nextID++
	v := &e.voices[slot]
	v.active = true
	v.id = id
	v.age = 0
	v.wave = e.wave
	v.freq = midiToFreq(note)
	v.phase = 0
	v.velocity = clamp(float64(velocity)/127.0, 0, 1)
	v.env = 0
	v.envState = envAttack
	if v.noiseLFSR == 0 {
		v.noiseLFSR = 0xACE1
	}
	return id
}

func (e *Engine) NoteOff(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.voices {
		v := &e.voices[i]
		if v.active && v.id == id && v.envState != envRelease {
			v.envState = envRelease
		}
	}
}

// SetWave selects the waveform for voices started after the call;
// sounding voices keep the wave they latched at note-on.
func (e *Engine) SetWave(w Wave) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if w < WaveSine || w > WaveNoise {
		w = WaveSine
	}
	e.wave = w
}

func (e *Engine) SetMasterGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	storeFloat(&e.masterGain, gain)
}

// SetPan positions the whole mix, -1 hard left to +1 hard right.
func (e *Engine) SetPan(pan float64) {
	storeFloat(&e.pan, clamp(pan, -1, 1))
}

func (e *Engine) SetCutoff(hz float64) {
	storeFloat(&e.cutoff, clamp(hz, 20, e.sampleRate*0.45))
}

func (e *Engine) SetResonance(amount float64) {
	storeFloat(&e.resonance, clamp(amount, 0, 1))
}

// Process fills dst with interleaved stereo samples.
func (e *Engine) Process(dst []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	gain := loadFloat(&e.masterGain)
	res := loadFloat(&e.resonance)
	if cutoff := loadFloat(&e.cutoff); cutoff != e.lastCutoff {
		rc := 1.0 / (twoPi * cutoff)
		dt := 1.0 / e.sampleRate
		e.alpha = dt / (rc + dt)
		e.lastCutoff = cutoff
	}
	angle := (loadFloat(&e.pan) + 1) / 2 * (math.Pi / 2)
	panL := math.Cos(angle)
	panR := math.Sin(angle)

	for i := 0; i+1 < len(dst); i += 2 {
		var mono float64
		for j := range e.voices {
			v := &e.voices[j]
			if !v.active {
				continue
			}
			v.age++
			env := e.advanceEnv(v)
			if !v.active {
				continue
			}
			mono += e.renderWave(v) * env * (0.15 + 0.85*v.velocity)
		}
		mono = e.filter(mono, res)
		dst[i] = float32(clamp(mono*panL*gain, -1, 1))
		dst[i+1] = float32(clamp(mono*panR*gain, -1, 1))
	}
}

// filter is two cascaded one-pole lowpasses; resonance lifts the band
// between the stages, which peaks the response around the cutoff.
func (e *Engine) filter(x, res float64) float64 {
	e.lp1 += e.alpha * (x - e.lp1)
	e.lp2 += e.alpha * (e.lp1 - e.lp2)
	return e.lp2 + res*2.5*(e.lp1-e.lp2)
}

func (e *Engine) advanceEnv(v *voice) float64 {
	switch v.envState {
	case envAttack:
		step := 1.0 / (e.params.AttackSec * e.sampleRate)
		if step <= 0 {
			step = 1
		}
		v.env += step
		if v.env >= 1 {
			v.env = 1
			v.envState = envSustain
		}
	case envSustain:
	case envRelease:
		step := 1.0 / (e.params.ReleaseSec * e.sampleRate)
		if step <= 0 {
			step = 1
		}
		v.env -= step
		if v.env <= 0.0001 {
			v.env = 0
			v.envState = envOff
			v.active = false
		}
	case envOff:
		v.active = false
		v.env = 0
	}
	return v.env
}

// polyBLEP smooths waveform discontinuities to reduce aliasing.
// t is the phase position [0,1), dt the phase increment per sample.
func polyBLEP(t, dt float64) float64 {
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

func (e *Engine) renderWave(v *voice) float64 {
	dt := v.freq / e.sampleRate
	v.phase += dt
	if v.phase >= 1 {
		v.phase -= 1
	}
	switch v.wave {
	case WaveSine:
		return math.Sin(twoPi * v.phase)
	case WaveTriangle:
		return 2*math.Abs(2*v.phase-1) - 1
	case WaveSquare:
		out := -1.0
		if v.phase < 0.5 {
			out = 1
		}
		out += polyBLEP(v.phase, dt)
		out -= polyBLEP(math.Mod(v.phase+0.5, 1), dt)
		return out
	case WaveSaw:
		return 2*v.phase - 1 - polyBLEP(v.phase, dt)
	case WaveNoise:
		// LFSR steps once per waveform cycle, so low notes rattle and
		// high notes hiss.
		if v.phase < dt {
			bit := (v.noiseLFSR ^ (v.noiseLFSR >> 1)) & 1
			v.noiseLFSR = (v.noiseLFSR >> 1) | (bit << 15)
		}
		if v.noiseLFSR&1 == 1 {
			return 1
		}
		return -1
	default:
		return 0
	}
}

func (e *Engine) stealVoice() int {
	// Take a free slot when one exists.
	for i := range e.voices {
		if !e.voices[i].active {
			return i
		}
	}
	// Otherwise steal the oldest releasing voice, then the oldest voice
	// outright.
	oldestRelease := -1
	oldestReleaseAge := -1
	oldestActive := 0
	oldestActiveAge := -1
	for i := range e.voices {
		v := &e.voices[i]
		if v.envState == envRelease && v.age > oldestReleaseAge {
			oldestRelease = i
			oldestReleaseAge = v.age
		}
		if v.age > oldestActiveAge {
			oldestActive = i
			oldestActiveAge = v.age
		}
	}
	if oldestRelease >= 0 {
		return oldestRelease
	}
	return oldestActive
}

func (e *Engine) ActiveVoiceCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for i := range e.voices {
		if e.voices[i].active {
			n++
		}
	}
	return n
}

func midiToFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

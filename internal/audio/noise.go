// Package audio synthesizes the ambient focus noise: a looped white-noise
// buffer whose gain is slowly modulated by a per-profile LFO.
package audio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	SampleRate = 44100

	// baseGain scales the slider volume down for comfort.
	baseGain = 0.3
	lfoDepth = 0.1
)

type Profile string

const (
	None   Profile = "none"
	Rain   Profile = "rain"
	Forest Profile = "forest"
	Ocean  Profile = "ocean"
	Coffee Profile = "coffee"
)

// Profiles lists the selectable labels in display order.
var Profiles = []Profile{Rain, Forest, Ocean, Coffee, None}

var lfoRates = map[Profile]float64{
	Rain:   0.5,
	Forest: 0.3,
	Ocean:  0.2,
	Coffee: 0.8,
}

// LFORate returns the modulation rate in Hz for p.
func LFORate(p Profile) (float64, bool) {
	r, ok := lfoRates[p]
	return r, ok
}

func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if p == None {
		return p, nil
	}
	if _, ok := lfoRates[p]; !ok {
		return "", fmt.Errorf("unknown noise profile %q", s)
	}
	return p, nil
}

// Next cycles to the following profile.
func (p Profile) Next() Profile {
	for i, q := range Profiles {
		if q == p {
			return Profiles[(i+1)%len(Profiles)]
		}
	}
	return Profiles[0]
}

// NewNoiseBuffer fills two seconds of uniform noise in [-1, 1).
func NewNoiseBuffer(r *rand.Rand) []float32 {
	buf := make([]float32, 2*SampleRate)
	for i := range buf {
		buf[i] = float32(r.Float64()*2 - 1)
	}
	return buf
}

var (
	sharedOnce sync.Once
	shared     []float32
)

// SharedBuffer is generated once per process and reused by every graph.
func SharedBuffer() []float32 {
	sharedOnce.Do(func() {
		shared = NewNoiseBuffer(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	})
	return shared
}

// Graph is source -> gain, with an LFO summed into the gain parameter.
// Read is called from the streaming goroutine while SetVolume may be called
// from the UI, so the gain is stored atomically.
type Graph struct {
	buf   []float32
	pos   int
	gain  atomic.Uint64
	rate  float64
	phase float64
}

// NewGraph builds a graph for p at volume 0-1. None yields nil.
func NewGraph(buf []float32, p Profile, volume float64) *Graph {
	rate, ok := LFORate(p)
	if !ok || len(buf) == 0 {
		return nil
	}
	g := &Graph{buf: buf, rate: rate}
	g.SetVolume(volume)
	return g
}

func (g *Graph) SetVolume(volume float64) {
	volume = math.Max(0, math.Min(1, volume))
	g.gain.Store(math.Float64bits(volume * baseGain))
}

func (g *Graph) Gain() float64 { return math.Float64frombits(g.gain.Load()) }

func (g *Graph) Rate() float64 { return g.rate }

// Read renders len(out) samples, looping the buffer.
func (g *Graph) Read(out []float32) {
	gain := g.Gain()
	step := 2 * math.Pi * g.rate / SampleRate
	for i := range out {
		mod := gain + lfoDepth*math.Sin(g.phase)
		out[i] = g.buf[g.pos] * float32(mod)
		g.pos++
		if g.pos == len(g.buf) {
			g.pos = 0
		}
		g.phase += step
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}
	}
}

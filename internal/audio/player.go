package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os/exec"
	"sync"

	"github.com/idilsaglam/studyplan/internal/logging"
)

// SinkFactory opens a PCM destination accepting signed 16-bit little-endian
// mono samples at SampleRate.
type SinkFactory func() (io.WriteCloser, error)

// ExecSink pipes PCM into an external player such as aplay or pacat.
func ExecSink(name string, args ...string) SinkFactory {
	return func() (io.WriteCloser, error) {
		path, err := exec.LookPath(name)
		if err != nil {
			return nil, fmt.Errorf("audio player %s: %w", name, err)
		}
		cmd := exec.Command(path, args...)
		in, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("stdin pipe: %w", err)
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("start %s: %w", name, err)
		}
		return &cmdSink{in: in, cmd: cmd}, nil
	}
}

// DefaultSink tries aplay (ALSA).
func DefaultSink() SinkFactory {
	return ExecSink("aplay", "-q", "-t", "raw", "-f", "S16_LE", "-r", fmt.Sprint(SampleRate), "-c", "1")
}

type cmdSink struct {
	in   io.WriteCloser
	cmd  *exec.Cmd
	once sync.Once
}

func (s *cmdSink) Write(p []byte) (int, error) { return s.in.Write(p) }

func (s *cmdSink) Close() error {
	s.once.Do(func() {
		_ = s.in.Close()
		_ = s.cmd.Process.Kill()
		_ = s.cmd.Wait()
	})
	return nil
}

// Player owns at most one live graph. Play tears down the previous graph
// before building the next.
type Player struct {
	open SinkFactory
	buf  []float32
	log  *slog.Logger

	mu     sync.Mutex
	graph  *Graph
	sink   io.WriteCloser
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPlayer(open SinkFactory, log *slog.Logger) *Player {
	return &Player{open: open, buf: SharedBuffer(), log: logging.Component(log, "audio")}
}

// Playing reports whether a graph is streaming.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.graph != nil
}

// Play starts profile at volume 0-1. None only stops.
func (p *Player) Play(profile Profile, volume float64) error {
	p.Stop()
	g := NewGraph(p.buf, profile, volume)
	if g == nil {
		return nil
	}
	sink, err := p.open()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.mu.Lock()
	p.graph, p.sink, p.cancel, p.done = g, sink, cancel, done
	p.mu.Unlock()

	go p.stream(ctx, g, sink, done)
	p.log.Debug("noise_started", "profile", string(profile), "gain", g.Gain())
	return nil
}

func (p *Player) stream(ctx context.Context, g *Graph, sink io.WriteCloser, done chan struct{}) {
	defer close(done)
	samples := make([]float32, SampleRate/20)
	pcm := make([]byte, 2*len(samples))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		g.Read(samples)
		encodeS16(pcm, samples)
		if _, err := sink.Write(pcm); err != nil {
			if ctx.Err() == nil {
				p.log.Warn("noise_write_failed", "error", err)
			}
			return
		}
	}
}

// SetVolume retunes the live graph, if any.
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.graph != nil {
		p.graph.SetVolume(volume)
	}
}

// Stop cancels the source and the LFO. Safe when nothing is playing.
// Closing the sink unblocks a stream stuck on a full pipe.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel, sink, done := p.cancel, p.sink, p.done
	p.graph, p.sink, p.cancel, p.done = nil, nil, nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	_ = sink.Close()
	<-done
}

func encodeS16(dst []byte, src []float32) {
	for i, s := range src {
		v := math.Max(-1, math.Min(1, float64(s)))
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(int16(v*math.MaxInt16)))
	}
}

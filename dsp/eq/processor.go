package eq

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Processor filters a stereo stream with two identically configured chains.
//
// UpdateParameters may be called from any goroutine at any time. Prepare,
// Reset and the Process methods belong to the audio goroutine and must not
// be called concurrently with each other. The Process methods never block.
type Processor struct {
	// pending is the newest published snapshot, installed tracks what the
	// audio goroutine is filtering with.
	pending   atomic.Pointer[Settings]
	installed atomic.Pointer[Settings]
	nextGen   atomic.Uint64

	// designMu serializes Prepare and UpdateParameters from reading their
	// inputs to publishing, so neither can overwrite the other's result
	// with stale parameters or a stale rate. The audio path never takes it.
	designMu sync.Mutex
	// designed, if set, runs after a snapshot is designed and before it
	// is published.
	designed func()

	sampleRate atomic.Uint64 // float64 bits
	blockSize  atomic.Int64

	left, right Chain
}

// NewProcessor returns a processor prepared with the given options (default
// 44.1 kHz, 512-sample blocks) and configured for p.
func NewProcessor(p Params, opts ...core.ProcessorOption) (*Processor, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	proc := &Processor{}

	s, err := proc.newSettings(p, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	proc.pending.Store(s)

	if err := proc.Prepare(cfg.SampleRate, cfg.BlockSize); err != nil {
		return nil, err
	}

	return proc, nil
}

// Prepare readies the processor for a new stream format: the current
// parameters are redesigned for sampleRate, installed in both chains and all
// history is cleared. maxBlockSize is advisory; blocks are filtered in place
// whatever their length.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlockSize}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.designMu.Lock()

	s, err := p.newSettings(p.Params(), sampleRate)
	if err != nil {
		p.designMu.Unlock()
		return err
	}

	p.hook()
	p.sampleRate.Store(math.Float64bits(sampleRate))
	p.blockSize.Store(int64(maxBlockSize))
	p.publish(s)
	p.designMu.Unlock()

	p.install(s)
	p.Reset()

	return nil
}

// UpdateParameters designs coefficients for params and publishes them for
// the audio goroutine to pick up at its next block. On error nothing is
// published and the previous settings stay in force.
func (p *Processor) UpdateParameters(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	p.designMu.Lock()
	defer p.designMu.Unlock()

	s, err := p.newSettings(params, p.SampleRate())
	if err != nil {
		return err
	}

	p.hook()
	p.publish(s)

	return nil
}

func (p *Processor) hook() {
	if p.designed != nil {
		p.designed()
	}
}

func (p *Processor) newSettings(params Params, sampleRate float64) (*Settings, error) {
	s, err := NewSettings(params, sampleRate)
	if err != nil {
		return nil, err
	}

	s.Generation = p.nextGen.Add(1)

	return s, nil
}

// publish stores s unless a newer generation is already pending.
func (p *Processor) publish(s *Settings) {
	for {
		old := p.pending.Load()
		if old != nil && old.Generation > s.Generation {
			return
		}

		if p.pending.CompareAndSwap(old, s) {
			return
		}
	}
}

// sync installs the pending snapshot if it differs from the installed one.
// It runs at the start of every block and does not allocate.
func (p *Processor) sync() {
	s := p.pending.Load()
	if s == nil || s == p.installed.Load() {
		return
	}

	if s.SampleRate != p.SampleRate() {
		return
	}

	p.install(s)
}

func (p *Processor) install(s *Settings) {
	p.left.Apply(s)
	p.right.Apply(s)
	p.installed.Store(s)
}

// ProcessStereo filters left and right in place. Both channels use the same
// settings snapshot for the whole block.
func (p *Processor) ProcessStereo(left, right []float64) {
	p.sync()
	p.left.ProcessBlock(left)
	p.right.ProcessBlock(right)
}

// ProcessBlock filters the first two channels in place. A single channel is
// filtered with the left chain; channels beyond the second are not touched.
func (p *Processor) ProcessBlock(channels [][]float64) {
	switch len(channels) {
	case 0:
		return
	case 1:
		p.sync()
		p.left.ProcessBlock(channels[0])
	default:
		p.ProcessStereo(channels[0], channels[1])
	}
}

// Reset clears the filter history of both channels.
func (p *Processor) Reset() {
	p.left.Reset()
	p.right.Reset()
}

// Params returns the most recently published parameter set.
func (p *Processor) Params() Params {
	return p.pending.Load().Params
}

// Settings returns the most recently published snapshot. It may be newer
// than the one the audio goroutine is filtering with.
func (p *Processor) Settings() *Settings {
	return p.pending.Load()
}

// Installed returns the snapshot used for the most recent block.
func (p *Processor) Installed() *Settings {
	return p.installed.Load()
}

// Generation returns the generation of the installed snapshot.
func (p *Processor) Generation() uint64 {
	if s := p.installed.Load(); s != nil {
		return s.Generation
	}

	return 0
}

// SampleRate returns the prepared sample rate.
func (p *Processor) SampleRate() float64 {
	return math.Float64frombits(p.sampleRate.Load())
}

// MaxBlockSize returns the prepared maximum block size.
func (p *Processor) MaxBlockSize() int {
	return int(p.blockSize.Load())
}

// Left returns the left channel chain.
func (p *Processor) Left() *Chain { return &p.left }

// Right returns the right channel chain.
func (p *Processor) Right() *Chain { return &p.right }

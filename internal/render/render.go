// Package render runs audio through an equalizer processor as a beep
// streamer and renders WAV files offline.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// ErrChannels is returned for streams that are neither mono nor stereo.
var ErrChannels = errors.New("render: unsupported channel count")

// Streamer filters the samples of src through a Processor. It processes in
// chunks of at most the processor's maximum block size and allocates only
// in NewStreamer.
type Streamer struct {
	src  beep.Streamer
	proc *eq.Processor

	left, right []float64
}

// NewStreamer wraps src. The processor must already be prepared for the
// stream's sample rate.
func NewStreamer(src beep.Streamer, proc *eq.Processor) *Streamer {
	n := max(proc.MaxBlockSize(), 1)

	return &Streamer{
		src:   src,
		proc:  proc,
		left:  make([]float64, n),
		right: make([]float64, n),
	}
}

// Stream implements beep.Streamer.
func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)

	for off := 0; off < n; off += len(s.left) {
		chunk := samples[off:min(off+len(s.left), n)]
		l, r := s.left[:len(chunk)], s.right[:len(chunk)]

		for i, frame := range chunk {
			l[i], r[i] = frame[0], frame[1]
		}

		s.proc.ProcessStereo(l, r)

		for i := range chunk {
			chunk[i] = [2]float64{l[i], r[i]}
		}
	}

	return n, ok
}

// Err implements beep.Streamer.
func (s *Streamer) Err() error {
	return s.src.Err()
}

// ctxStreamer ends a stream early once ctx is done.
type ctxStreamer struct {
	ctx context.Context
	s   beep.Streamer
	err error
}

func (c *ctxStreamer) Stream(samples [][2]float64) (int, bool) {
	if err := c.ctx.Err(); err != nil {
		c.err = err
		return 0, false
	}

	return c.s.Stream(samples)
}

func (c *ctxStreamer) Err() error {
	if c.err != nil {
		return c.err
	}

	return c.s.Err()
}

// Stats describes a finished render.
type Stats struct {
	Frames     int
	SampleRate int
	Channels   int
}

// counter counts frames passing through.
type counter struct {
	beep.Streamer
	frames int
}

func (c *counter) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.Streamer.Stream(samples)
	c.frames += n

	return n, ok
}

// File decodes a WAV stream from in, prepares proc for its sample rate,
// filters it and encodes the result to out in the input's format.
func File(ctx context.Context, in io.Reader, out io.WriteSeeker, proc *eq.Processor, log zerolog.Logger) (Stats, error) {
	src, format, err := wav.Decode(in)
	if err != nil {
		return Stats{}, fmt.Errorf("render: decode: %w", err)
	}
	defer src.Close()

	if format.NumChannels != 1 && format.NumChannels != 2 {
		return Stats{}, fmt.Errorf("%w: %d", ErrChannels, format.NumChannels)
	}

	if err := proc.Prepare(float64(format.SampleRate), proc.MaxBlockSize()); err != nil {
		return Stats{}, fmt.Errorf("render: prepare: %w", err)
	}

	log.Info().
		Int("sample_rate", int(format.SampleRate)).
		Int("channels", format.NumChannels).
		Int("frames", src.Len()).
		Msg("rendering")

	cs := &ctxStreamer{ctx: ctx, s: NewStreamer(src, proc)}
	cnt := &counter{Streamer: cs}

	if err := wav.Encode(out, cnt, format); err != nil {
		return Stats{}, fmt.Errorf("render: encode: %w", err)
	}

	if err := cs.Err(); err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	stats := Stats{Frames: cnt.frames, SampleRate: int(format.SampleRate), Channels: format.NumChannels}
	log.Info().Int("frames", stats.Frames).Msg("render finished")

	return stats, nil
}

// Command eqresponse prints the magnitude response of an equalizer setting,
// both as designed and as measured from the rendered impulse response.
//
// Usage:
//
//	eqresponse [flags]
//
// Examples:
//
//	eqresponse -peak-freq 1000 -peak-gain 12 -peak-q 2
//	eqresponse -lowcut 80 -lowcut-slope 48 -points 40
//	eqresponse -preset vocal.yaml -rate 48000
//	eqresponse -slopes
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/config"
	"github.com/cwbudde/algo-eq/measure/response"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	def := eq.DefaultParams()

	fs := flag.NewFlagSet("eqresponse", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rate := fs.Float64("rate", 44100, "sample rate in Hz")
	points := fs.Int("points", 31, "number of log-spaced frequencies")
	lo := fs.Float64("from", eq.MinFreq, "lowest frequency in Hz")
	hi := fs.Float64("to", eq.MaxFreq, "highest frequency in Hz")
	irLen := fs.Int("ir", 1<<15, "impulse response length for the measured column")
	preset := fs.String("preset", "", "load parameters from a preset file (flags below are ignored)")
	slopes := fs.Bool("slopes", false, "list available slopes")

	peakFreq := fs.Float64("peak-freq", def.PeakFreq, "peak frequency in Hz")
	peakGain := fs.Float64("peak-gain", def.PeakGainDB, "peak gain in dB")
	peakQ := fs.Float64("peak-q", def.PeakQ, "peak quality")
	lowCut := fs.Float64("lowcut", def.LowCutFreq, "low-cut frequency in Hz")
	lowSlope := fs.String("lowcut-slope", "12", "low-cut slope in dB/oct")
	highCut := fs.Float64("highcut", def.HighCutFreq, "high-cut frequency in Hz")
	highSlope := fs.String("highcut-slope", "12", "high-cut slope in dB/oct")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: eqresponse [flags]\n\n")
		fmt.Fprintf(stderr, "Prints the designed and measured response of an equalizer setting.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *slopes {
		for _, s := range eq.Slopes {
			fmt.Fprintln(stdout, s)
		}

		return 0
	}

	var p eq.Params

	if *preset != "" {
		cfg, err := config.Load(*preset)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}

		p, _ = cfg.EQ.Params()
	} else {
		var err error

		p, err = config.EQConfig{
			PeakFreq:     *peakFreq,
			PeakGainDB:   *peakGain,
			PeakQ:        *peakQ,
			LowCutFreq:   *lowCut,
			LowCutSlope:  *lowSlope,
			HighCutFreq:  *highCut,
			HighCutSlope: *highSlope,
		}.Params()
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	s, err := eq.NewSettings(p, *rate)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	measured, err := response.Measure(s.ImpulseResponse(*irLen), s.SampleRate)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := printResponse(stdout, s, measured, *points, *lo, min(*hi, s.SampleRate/2)); err != nil {
		fmt.Fprintf(stderr, "error: failed to write output: %v\n", err)
		return 1
	}

	return 0
}

func printResponse(w io.Writer, s *eq.Settings, m *response.Response, points int, lo, hi float64) error {
	p := s.Params
	if _, err := fmt.Fprintf(w, "low cut %.0f Hz %v | peak %.0f Hz %+.1f dB Q %.2f | high cut %.0f Hz %v | %.0f Hz\n",
		p.LowCutFreq, p.LowCutSlope, p.PeakFreq, p.PeakGainDB, p.PeakQ, p.HighCutFreq, p.HighCutSlope, s.SampleRate); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "max pole radius %.6f\n\n", s.PoleRadius()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tDesigned [dB]\tMeasured [dB]\tDiff [dB]\t\n"); err != nil {
		return err
	}

	for _, f := range core.LogSpace(points, lo, hi) {
		d := s.MagnitudeDB(f)
		meas := m.MagnitudeDBAt(f)

		if _, err := fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.3f\t\n", f, d, meas, meas-d); err != nil {
			return err
		}
	}

	return tw.Flush()
}

package control_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/control"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

func ExampleController() {
	proc, err := eq.NewProcessor(eq.DefaultParams())
	if err != nil {
		panic(err)
	}

	reg := control.NewRegistry()
	ctl := control.NewController(reg, proc)

	_ = reg.Set(control.PeakFreq, 1200)
	_ = reg.Set(control.PeakGain, 4.2)
	_ = reg.SetNormalized(control.HighCutSlope, 1)

	if _, err := ctl.Poll(); err != nil {
		panic(err)
	}

	for _, id := range []string{control.PeakFreq, control.PeakGain, control.HighCutSlope} {
		p, _ := reg.Lookup(id)
		fmt.Printf("%s: %s\n", id, p.DisplayLabel())
	}

	fmt.Println(proc.Params().HighCutSlope)
	// Output:
	// Peak Freq: 1.20 kHz
	// Peak Gain: +4.0 dB
	// HiCut Slope: 48 dB/Oct
	// 48 dB/Oct
}

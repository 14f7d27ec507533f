package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

func ExampleStage_ProcessSample() {
	s := biquad.NewStage(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 4 {
		var x float64
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.6f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
}

func ExampleStage_SetBypassed() {
	s := biquad.NewStage(biquad.Coefficients{B0: 0.5, B1: 0.5})
	buf := []float64{1, 1, 1}

	s.SetBypassed(true)
	s.ProcessBlock(buf)
	fmt.Println(buf)

	s.SetBypassed(false)
	s.ProcessBlock(buf)
	fmt.Println(buf)
	// Output:
	// [1 1 1]
	// [0.5 1 1]
}

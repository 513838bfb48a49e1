package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-vocal/dsp/buffer"
)

func ExampleRing() {
	r, err := buffer.NewRing(4)
	if err != nil {
		panic(err)
	}

	r.Write([]float64{1, 2, 3})

	out := make([]float64, 2)
	r.Read(out)

	fmt.Println(out, r.Available())

	// Output:
	// [1 2] 1
}

// SPDX-License-Identifier: EPL-2.0

package detect_test

import (
	"fmt"

	"github.com/ik5/clicksplat/detect"
	"github.com/ik5/clicksplat/internal/audiotest"
	"github.com/ik5/clicksplat/pipeline"
)

func ExampleClicks() {
	// Two bursts in five seconds of silence.
	src := audiotest.NewClickSource(5*48000, 4800, 2000, 0.9, 48000, 3*48000)

	cfg := detect.DefaultConfig()
	stage, err := detect.Clicks(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	found, err := pipeline.Collect(stage(src))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range found {
		fmt.Printf("click at %d us, %d samples\n", c.Start, c.Sample.Frames())
	}
	// Output:
	// click at 997479 us, 20481 samples
	// click at 2997479 us, 20481 samples
}

// SPDX-License-Identifier: EPL-2.0

package pipeline_test

import (
	"fmt"

	"github.com/ik5/clicksplat/pipeline"
)

func ExampleChain() {
	stage := pipeline.Chain(pipeline.Every[int](2), pipeline.Group[int](3))
	batches, err := pipeline.Collect(stage(pipeline.FromSlice(1, 2, 3, 4, 5, 6, 7)))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(batches)
	// Output: [[2 4 6]]
}

func ExampleSubPipeline() {
	square := pipeline.Map(func(v int) (int, error) { return v * v, nil })
	out, _ := pipeline.Collect(pipeline.SubPipeline(square)(pipeline.FromSlice(2, 3)))
	fmt.Println(out)
	// Output: [[4] [9]]
}

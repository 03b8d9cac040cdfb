package pipeline_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/salesmap/pkg/pipeline"
)

func ExampleRunner_Execute() {
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	defer runner.Close()

	result, err := runner.Execute(context.Background(), pipeline.Options{
		Source:  "../../examples/video-game-sales.json",
		Formats: []string{pipeline.FormatSVG, pipeline.FormatHTML},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("tiles:", result.Stats.LeafCount)
	fmt.Println("platforms:", result.Stats.Categories)
	fmt.Println("tiling:", result.Layout.Tiling)
	fmt.Println("svg:", len(result.Artifacts["svg"]) > 0)
	fmt.Println("html:", len(result.Artifacts["html"]) > 0)
	// Output:
	// tiles: 24
	// platforms: 18
	// tiling: squarify
	// svg: true
	// html: true
}

package anypop

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PlotPopulationScore renders a line chart of every
// agent's fitness history against its recorded step
// counts, dropping the trailing step entry which has no
// fitness recorded yet. If an agent has more fitness
// scores than plotted steps, the extra trailing scores are
// dropped rather than plotted against missing steps.
//
// The chart is written to w as a standalone HTML page.
func PlotPopulationScore(pop Population, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Score History - Mutations"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Steps"}),
		charts.WithYAxisOpts(opts.YAxis{Min: -400}),
	)

	var longest []int
	for _, agent := range pop {
		if steps := plottedSteps(agent); len(steps) > len(longest) {
			longest = steps
		}
	}
	xs := make([]string, len(longest))
	for i, s := range longest {
		xs[i] = fmt.Sprintf("%d", s)
	}
	line.SetXAxis(xs)

	for _, agent := range pop {
		scores := agent.Fitness()
		steps := plottedSteps(agent)
		if len(scores) > len(steps) {
			scores = scores[:len(steps)]
		}
		items := make([]opts.LineData, len(scores))
		for i, s := range scores {
			items[i] = opts.LineData{Value: s}
		}
		line.AddSeries(fmt.Sprintf("agent %d", agent.Index()), items)
	}

	return line.Render(w)
}

// ServePopulationScore serves the population score chart
// over HTTP for interactive viewing.
func ServePopulationScore(pop Population, addr string) error {
	return http.ListenAndServe(addr, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			PlotPopulationScore(pop, w)
		}))
}

func plottedSteps(agent Agent) []int {
	steps := agent.Steps()
	if len(steps) == 0 {
		return nil
	}
	return steps[:len(steps)-1]
}

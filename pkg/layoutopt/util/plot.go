package util

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
)

// PlotFront renders a scatter plot of the found Pareto front, optionally
// against a reference front, into w as an HTML document. Only 2-objective
// fronts can be plotted.
func PlotFront(w io.Writer, found, reference []framework.ObjectiveSpacePoint, problemName, algorithmName string) error {
	if len(found) == 0 {
		return fmt.Errorf("results are empty for problem %s", problemName)
	}
	if len(found[0]) != 2 {
		return fmt.Errorf("can only plot 2D fronts for problem %s", problemName)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s", algorithmName, problemName),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f1(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "f2(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if len(reference) > 0 {
		refX := make([]opts.ScatterData, len(reference))
		for i, p := range reference {
			refX[i] = opts.ScatterData{
				Value:      p,
				Symbol:     "circle",
				SymbolSize: 10,
			}
		}
		scatter.AddSeries("Reference Front", refX)
	}

	foundX := make([]opts.ScatterData, len(found))
	for i, res := range found {
		foundX[i] = opts.ScatterData{
			Value:      []float64{res[0], res[1]},
			Symbol:     "triangle",
			SymbolSize: 10,
		}
	}

	scatter.AddSeries(fmt.Sprintf("%s Solutions", algorithmName), foundX).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	return scatter.Render(w)
}

// WriteFrontHTML plots the front into "<problem>_<algorithm>_results.html"
// in the current directory.
func WriteFrontHTML(found, reference []framework.ObjectiveSpacePoint, problemName, algorithmName string) error {
	f, err := os.Create(fmt.Sprintf("%s_%s_results.html", problemName, algorithmName))
	if err != nil {
		return err
	}
	defer f.Close()

	return PlotFront(f, found, reference, problemName, algorithmName)
}

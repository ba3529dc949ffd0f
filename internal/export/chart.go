package export

import (
	"errors"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// ErrNoChartData is returned by RenderChart when no host has at least two samples.
var ErrNoChartData = errors.New("no host has enough samples to chart")

// RenderChart draws one latency line per host over its sample window as PNG.
func RenderChart(w io.Writer, kind stats.Kind, hosts []string, snapshot map[string]stats.Stats) error {
	var series []chart.Series
	maxY, maxX := 0.0, 2.0

	for _, host := range hosts {
		st, ok := snapshot[host]
		if !ok {
			continue
		}
		samples := st.Samples()
		if len(samples) < 2 {
			continue
		}

		xs := make([]float64, len(samples))
		ys := make([]float64, len(samples))
		for i, d := range samples {
			xs[i] = float64(i + 1)
			ys[i] = float64(d) / float64(time.Millisecond)
			if ys[i] > maxY {
				maxY = ys[i]
			}
		}
		if float64(len(samples)) > maxX {
			maxX = float64(len(samples))
		}

		series = append(series, chart.ContinuousSeries{
			Name: host,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(len(series)),
				StrokeWidth: 2,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	if len(series) == 0 {
		return ErrNoChartData
	}

	title := "Ping Latency"
	yName := "Latency (ms)"
	if kind == stats.KindHTTP {
		title = "HTTP Response Time"
		yName = "Response Time (ms)"
	}

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 500,
		XAxis: chart.XAxis{
			Name: "Sample",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{Min: 1, Max: maxX},
		},
		YAxis: chart.YAxis{
			Name: yName,
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: maxY*1.1 + 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

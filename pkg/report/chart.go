/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report

import (
	"fmt"
	"strings"

	"github.com/kubernetes-sigs/issue-analytics/pkg/analysis"
	"github.com/kubernetes-sigs/issue-analytics/pkg/utils"
)

// chartSymbols fill the stacked segments, one per category.
const chartSymbols = "#*+=%@&$ox~^"

const minBarWidth = 10

func (p *Printer) barWidth(reserved int) int {
	if w := p.width - reserved; w > minBarWidth {
		return w
	}
	return minBarWidth
}

// stackedChart draws one horizontal bar per month, split into a segment per
// category. Categories without any activity are left out of the legend.
func (p *Printer) stackedChart(months []utils.Month, series []analysis.Series) {
	var active []analysis.Series
	for _, s := range series {
		if s.Total() > 0 {
			active = append(active, s)
		}
	}

	totals := make([]int, len(months))
	peak := 0
	for i := range months {
		for _, s := range active {
			totals[i] += s.Counts[i]
		}
		if totals[i] > peak {
			peak = totals[i]
		}
	}

	width := p.barWidth(len("2006-01 |") + 7)
	for i, m := range months {
		var bar strings.Builder
		cumulative, drawn := 0, 0
		for j, s := range active {
			cumulative += s.Counts[i]
			end := scale(cumulative, peak, width)
			bar.WriteString(strings.Repeat(string(chartSymbols[j%len(chartSymbols)]), end-drawn))
			drawn = end
		}
		fmt.Fprintf(p.out, "%s |%s %d\n", m, padRight(bar.String(), width), totals[i])
	}

	fmt.Fprintf(p.out, "legend:")
	for j, s := range active {
		fmt.Fprintf(p.out, " %c=%s(%d)", chartSymbols[j%len(chartSymbols)], s.Category, s.Total())
	}
	fmt.Fprintln(p.out)
}

func (p *Printer) histogramChart(bins []analysis.Bin) {
	peak := 0
	for _, b := range bins {
		if b.Count > peak {
			peak = b.Count
		}
	}
	width := p.barWidth(30)
	for _, b := range bins {
		fmt.Fprintf(p.out, "%9.2f - %9.2f |%s %d\n",
			b.Lower, b.Upper, padRight(strings.Repeat("#", scale(b.Count, peak, width)), width), b.Count)
	}
}

// scale maps value in [0, peak] onto [0, width], rounding to nearest.
func scale(value, peak, width int) int {
	if peak == 0 {
		return 0
	}
	return (value*width*2 + peak) / (peak * 2)
}

package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/ttacon/chalk"
)

type summary struct {
	Count         int
	MeanAValue    float64
	MinAValue     float64
	MaxAValue     float64
	MeanOcclusion float64
}

func summarize(results []types.Result) summary {
	s := summary{
		Count:     len(results),
		MinAValue: math.Inf(1),
		MaxAValue: math.Inf(-1),
	}

	if len(results) == 0 {
		s.MinAValue = 0
		s.MaxAValue = 0
		return s
	}

	for _, r := range results {
		s.MeanAValue += r.AValue
		s.MeanOcclusion += r.Occlusion
		s.MinAValue = math.Min(s.MinAValue, r.AValue)
		s.MaxAValue = math.Max(s.MaxAValue, r.AValue)
	}

	s.MeanAValue /= float64(len(results))
	s.MeanOcclusion /= float64(len(results))

	return s
}

func colorize(avalue float64) string {
	formatted := number.FloatToStr(avalue, 2)

	switch {
	case avalue >= 20:
		return chalk.Green.Color(formatted)
	case avalue >= 10:
		return chalk.Yellow.Color(formatted)
	default:
		return chalk.Red.Color(formatted)
	}
}

func printSummary(w io.Writer, results []types.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SPECTATOR\tA-VALUE\tOCCLUSION\tOCCLUDERS")
	for _, r := range results {
		label := r.Label
		if label == "" {
			label = r.SpectatorID.String()
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", label, colorize(r.AValue), number.FloatToStr(r.Occlusion, 2), len(r.OccluderIDs))
	}

	tw.Flush()

	s := summarize(results)
	fmt.Fprintf(w, "\n%d spectators; A-value mean %s (min %s, max %s); occlusion mean %s\n",
		s.Count,
		number.FloatToStr(s.MeanAValue, 2),
		number.FloatToStr(s.MinAValue, 2),
		number.FloatToStr(s.MaxAValue, 2),
		number.FloatToStr(s.MeanOcclusion, 2),
	)
}

package stats

import (
	"sort"

	"jobtrack/internal/model"
)

const (
	noVersionLabel   = "None"
	maxVersionGroups = 10
)

type Bar struct {
	Label string
	Count int
}

// Series is a derived chart over the committed collection. NoData is set when
// every bar has a zero count, which for ByStatus is not the same as having
// no bars.
type Series struct {
	Bars   []Bar
	NoData bool
}

func (s Series) Max() int {
	m := 0
	for _, b := range s.Bars {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

func ByResumeVersion(apps []model.Application) Series {
	bars := countBy(apps, func(a model.Application) string {
		if a.ResumeVersion == "" {
			return noVersionLabel
		}
		return a.ResumeVersion
	})
	if len(bars) > maxVersionGroups {
		bars = bars[:maxVersionGroups]
	}
	return newSeries(bars)
}

func ByPlatform(apps []model.Application) Series {
	return newSeries(countBy(apps, func(a model.Application) string {
		return a.Platform.String()
	}))
}

func ByStatus(apps []model.Application) Series {
	counts := make(map[model.Status]int, len(model.Statuses()))
	for _, a := range apps {
		counts[a.Status]++
	}
	bars := make([]Bar, 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		bars = append(bars, Bar{Label: s.String(), Count: counts[s]})
	}
	return newSeries(bars)
}

func countBy(apps []model.Application, label func(model.Application) string) []Bar {
	counts := map[string]int{}
	for _, a := range apps {
		counts[label(a)]++
	}
	bars := make([]Bar, 0, len(counts))
	for l, c := range counts {
		bars = append(bars, Bar{Label: l, Count: c})
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Count != bars[j].Count {
			return bars[i].Count > bars[j].Count
		}
		return bars[i].Label < bars[j].Label
	})
	return bars
}

func newSeries(bars []Bar) Series {
	s := Series{Bars: bars, NoData: true}
	for _, b := range bars {
		if b.Count > 0 {
			s.NoData = false
			break
		}
	}
	return s
}

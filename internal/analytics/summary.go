// Package analytics computes the read-only statistics shown on the analytics
// page and the inputs handed to the prediction and anomaly views.
package analytics

import (
	"math"
	"sort"

	"github.com/rongwang/nyayadrishti/internal/dataset"
)

// AgingThresholdDays is the disposal or pending age above which a case
// counts as older than a year
const AgingThresholdDays = 365

// HistogramBins is the number of buckets in the disposal day histogram
const HistogramBins = 40

// Filter restricts a summary to cases filed in the given years. An empty
// filter keeps everything.
type Filter struct {
	Years []int
}

// Count is a labelled tally
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// YearMean is the mean disposal time of cases filed in one year
type YearMean struct {
	Year  int     `json:"year"`
	Mean  float64 `json:"mean_disposal_days"`
	Cases int     `json:"cases"`
}

// Bucket is one histogram bin covering [Lower, Upper)
type Bucket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Summary is everything the analytics page shows
type Summary struct {
	TotalCases        int        `json:"total_cases"`
	OlderThanYear     int        `json:"older_than_one_year"`
	Years             []int      `json:"years"`
	DisposalTrend     []YearMean `json:"disposal_trend"`
	StageFunnel       []Count    `json:"stage_funnel"`
	JudgeWorkload     []Count    `json:"judge_workload"`
	DisposalHistogram []Bucket   `json:"disposal_histogram"`
}

// Summarize computes the analytics summary. Case counts and disposal figures
// come from the cases table; the stage funnel and judge workload come from
// the merged table. Missing columns leave the matching section empty.
func Summarize(ds *dataset.Datasets, f Filter) Summary {
	cases := FilterYears(ds.Cases, f.Years)
	merged := FilterYears(ds.Merged, f.Years)

	s := Summary{
		TotalCases: cases.Len(),
		Years:      FilingYears(ds.Cases),
	}

	var days []float64
	for i := 0; i < cases.Len(); i++ {
		d, ok := cases.Get(i, dataset.ColDisposalDays).Number()
		if !ok {
			continue
		}
		days = append(days, d)
		if d > AgingThresholdDays {
			s.OlderThanYear++
		}
	}

	s.DisposalTrend = disposalTrend(cases)
	s.DisposalHistogram = Histogram(days, HistogramBins)
	if col := merged.Lookup(dataset.ColStage); col != "" {
		s.StageFunnel = ValueCounts(merged, col)
	}
	if col := merged.Lookup(dataset.ColJudge); col != "" {
		s.JudgeWorkload = ValueCounts(merged, col)
	}
	return s
}

// FilingYears lists the distinct filing years present in t, ascending
func FilingYears(t *dataset.Table) []int {
	col := t.Lookup(dataset.ColFilingYear)
	if col == "" {
		return nil
	}
	seen := map[int]struct{}{}
	for i := 0; i < t.Len(); i++ {
		if y, ok := t.Get(i, col).Number(); ok {
			seen[int(y)] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// FilterYears keeps the rows whose filing year is in years. With no years,
// or no filing_year column, t is returned as is.
func FilterYears(t *dataset.Table, years []int) *dataset.Table {
	col := t.Lookup(dataset.ColFilingYear)
	if len(years) == 0 || col == "" {
		return t
	}
	want := make(map[int]struct{}, len(years))
	for _, y := range years {
		want[y] = struct{}{}
	}
	return t.Filter(func(r dataset.Row) bool {
		y, ok := r.Get(col).Number()
		if !ok {
			return false
		}
		_, keep := want[int(y)]
		return keep
	})
}

func disposalTrend(cases *dataset.Table) []YearMean {
	if !cases.Has(dataset.ColFilingYear) || !cases.Has(dataset.ColDisposalDays) {
		return nil
	}
	type acc struct {
		sum float64
		n   int
	}
	byYear := map[int]*acc{}
	for i := 0; i < cases.Len(); i++ {
		y, ok := cases.Get(i, dataset.ColFilingYear).Number()
		if !ok {
			continue
		}
		d, ok := cases.Get(i, dataset.ColDisposalDays).Number()
		if !ok {
			continue
		}
		a := byYear[int(y)]
		if a == nil {
			a = &acc{}
			byYear[int(y)] = a
		}
		a.sum += d
		a.n++
	}

	trend := make([]YearMean, 0, len(byYear))
	for y, a := range byYear {
		trend = append(trend, YearMean{Year: y, Mean: a.sum / float64(a.n), Cases: a.n})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Year < trend[j].Year })
	return trend
}

// ValueCounts tallies the non-null values of a column, most frequent first
// and ties broken by label
func ValueCounts(t *dataset.Table, column string) []Count {
	counts := map[string]int{}
	for i := 0; i < t.Len(); i++ {
		v := t.Get(i, column)
		if v.IsNull() {
			continue
		}
		counts[v.String()]++
	}
	out := make([]Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Histogram splits values into bins equal-width buckets between the minimum
// and maximum. The last bucket includes the maximum.
func Histogram(values []float64, bins int) []Bucket {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []Bucket{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bucket, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

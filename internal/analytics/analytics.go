// Package analytics derives dashboard statistics from stored threat and
// metric rows. Every function is a pure computation over its inputs.
package analytics

import (
	"math/big"
	"sort"
	"time"

	"github.com/arcdefender/arc-defender/internal/model"
)

const (
	// EfficiencyWindow is the number of most recent metric rows averaged.
	EfficiencyWindow = 10
	// TrendLimit caps the number of trend buckets returned.
	TrendLimit = 20
	// OriginLimit caps the number of source IPs returned.
	OriginLimit = 10
	// TrendKeyLayout formats a bucket key as month-day hour:minute.
	TrendKeyLayout = "01-02 15:04"
)

// Efficiency computes blocked/(blocked+active) for the newest metric row and
// averaged over the whole window. metrics must be ordered newest first.
func Efficiency(metrics []model.Metric) model.EfficiencyStats {
	if len(metrics) == 0 {
		return model.EfficiencyStats{}
	}

	var blockedSum, totalSum int
	for _, m := range metrics {
		blockedSum += m.BlockedIntrusions
		totalSum += m.BlockedIntrusions + m.ActiveThreats
	}

	latest := metrics[0]
	latestTotal := latest.BlockedIntrusions + latest.ActiveThreats

	return model.EfficiencyStats{
		Efficiency:    ratio(latest.BlockedIntrusions, latestTotal),
		AvgEfficiency: ratio(blockedSum, totalSum),
		Blocked:       latest.BlockedIntrusions,
		Total:         latestTotal,
	}
}

func ratio(part, whole int) model.Percent {
	if whole <= 0 {
		return model.Percent{}
	}
	v := float64(part) / float64(whole) * 100
	return model.Percent{Value: roundTenth(v), Valid: true}
}

// roundTenth rounds the exact binary value of v (v >= 0) to one decimal,
// ties away from zero.
func roundTenth(v float64) float64 {
	r := new(big.Rat).SetFloat64(v)
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())
	f, _ := new(big.Rat).SetFrac(n, big.NewInt(10)).Float64()
	return f
}

// BucketKey returns the minute-resolution trend key for t in loc.
func BucketKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TrendKeyLayout)
}

// Trends sums threat counts per minute bucket and returns the oldest limit
// buckets in chronological order. Buckets are ordered by their earliest
// timestamp, so a year rollover does not reorder them the way a plain key
// sort would.
func Trends(threats []model.Threat, loc *time.Location, limit int) []model.TrendBucket {
	type bucket struct {
		first time.Time
		count int
	}
	buckets := make(map[string]*bucket)
	for _, t := range threats {
		key := BucketKey(t.Timestamp, loc)
		b, ok := buckets[key]
		if !ok {
			buckets[key] = &bucket{first: t.Timestamp, count: t.Count}
			continue
		}
		b.count += t.Count
		if t.Timestamp.Before(b.first) {
			b.first = t.Timestamp
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		bi, bj := buckets[keys[i]], buckets[keys[j]]
		if !bi.first.Equal(bj.first) {
			return bi.first.Before(bj.first)
		}
		return keys[i] < keys[j]
	})

	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]model.TrendBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.TrendBucket{Key: k, Count: buckets[k].count})
	}
	return out
}

// Origins sums threat counts per source IP, highest first. Ties are broken
// by IP so repeated calls return identical output.
func Origins(threats []model.Threat, limit int) []model.OriginCount {
	sums := make(map[string]int)
	for _, t := range threats {
		sums[t.SourceIP] += t.Count
	}

	out := make([]model.OriginCount, 0, len(sums))
	for ip, count := range sums {
		out = append(out, model.OriginCount{SourceIP: ip, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].SourceIP < out[j].SourceIP
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Overview counts threat rows (not their count field) per severity.
// Unknown severities are ignored.
func Overview(threats []model.Threat) model.SeverityOverview {
	var o model.SeverityOverview
	for _, t := range threats {
		switch t.Severity {
		case model.SeverityHigh:
			o.HighSeverity++
		case model.SeverityMedium:
			o.MediumSeverity++
		case model.SeverityLow:
			o.LowSeverity++
		}
	}
	return o
}

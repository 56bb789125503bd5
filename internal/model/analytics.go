package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Percent is a ratio rendered as a one-decimal fixed-point string. A ratio
// with no denominator encodes as the number 0.
type Percent struct {
	Value float64
	Valid bool
}

func (p Percent) String() string {
	if !p.Valid {
		return "0"
	}
	return strconv.FormatFloat(p.Value, 'f', 1, 64)
}

func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("0"), nil
	}
	return json.Marshal(p.String())
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid percent %q: %w", s, err)
		}
		*p = Percent{Value: v, Valid: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Percent{Value: v, Valid: v != 0}
	return nil
}

type EfficiencyStats struct {
	Efficiency    Percent `json:"efficiency"`
	AvgEfficiency Percent `json:"avgEfficiency"`
	Blocked       int     `json:"blocked"`
	Total         int     `json:"total"`
}

// TrendBucket is the summed threat count for one minute-resolution bucket.
type TrendBucket struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

type OriginCount struct {
	SourceIP string `json:"_id"`
	Count    int    `json:"count"`
}

type SeverityOverview struct {
	HighSeverity   int `json:"highSeverity"`
	MediumSeverity int `json:"mediumSeverity"`
	LowSeverity    int `json:"lowSeverity"`
}

package reviews

import (
	"encoding/json"
	"math"
)

const (
	minRating = 1
	maxRating = 5
)

// Review is one shopper review. ID is the creation time in Unix milliseconds.
type Review struct {
	ID        string `json:"id"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	Image     string `json:"image"`
	CreatedAt string `json:"createdAt"`
}

// UnmarshalJSON accepts ratings stored as numbers or numeric strings.
func (r *Review) UnmarshalJSON(data []byte) error {
	type alias Review
	var raw struct {
		alias
		Rating json.RawMessage `json:"rating"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Review(raw.alias)
	r.Rating = 0
	var n json.Number
	if err := json.Unmarshal(raw.Rating, &n); err == nil {
		if f, err := n.Float64(); err == nil {
			r.Rating = int(math.Round(f))
		}
	}
	return nil
}

// Stats summarizes a review list. ByStar[i] counts (i+1)-star reviews.
type Stats struct {
	Count   int     `json:"count"`
	Average float64 `json:"avg"`
	ByStar  [5]int  `json:"byStar"`
}

// ComputeStats averages the stored ratings and buckets each one after clamping to 1-5.
func ComputeStats(list []Review) Stats {
	var stats Stats
	stats.Count = len(list)
	if stats.Count == 0 {
		return stats
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
		stats.ByStar[clampRating(r.Rating)-1]++
	}
	stats.Average = float64(sum) / float64(stats.Count)
	return stats
}

func clampRating(v int) int {
	if v < minRating {
		return minRating
	}
	if v > maxRating {
		return maxRating
	}
	return v
}

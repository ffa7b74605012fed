package resume

import (
	"math"
	"time"

	"github.com/riyanshibariyaa/jp5/internal/model"
)

const hoursPerYear = 24 * 365

// Score computes the candidate score in [0,100] from parsed resume data.
// Pure and deterministic apart from the clock used for spans still marked
// current; see ScoreAt.
func Score(p Parsed) int {
	return ScoreAt(p, time.Now())
}

// ScoreAt is Score with an explicit "now" for open-ended experience spans.
//
// Additive components, each capped, then the sum rounded and clamped:
//   - experience: total years across spans * 5, capped at 40
//   - skills:     2 per skill, capped at 30
//   - education:  10 per entry, capped at 20
//   - stability:  10 if average span >= 2 years, 5 if >= 1 year
func ScoreAt(p Parsed, now time.Time) int {
	years := experienceYears(p.Experience, now)

	score := math.Min(years*5, 40)
	score += math.Min(float64(len(p.Skills))*2, 30)
	score += math.Min(float64(len(p.Education))*10, 20)

	avgDuration := years / math.Max(float64(len(p.Experience)), 1)
	if avgDuration >= 2 {
		score += 10
	} else if avgDuration >= 1 {
		score += 5
	}

	total := int(math.Round(score))
	if total > 100 {
		return 100
	}
	if total < 0 {
		return 0
	}
	return total
}

// experienceYears sums span lengths. Spans with an end date count as is;
// open-ended spans count up to now only when explicitly marked current,
// otherwise they are excluded.
func experienceYears(entries []model.ExperienceEntry, now time.Time) float64 {
	var total float64
	for _, e := range entries {
		end := e.EndDate
		if end == nil {
			if !e.Current {
				continue
			}
			end = &now
		}
		if end.Before(e.StartDate) {
			continue
		}
		total += end.Sub(e.StartDate).Hours() / hoursPerYear
	}
	return total
}

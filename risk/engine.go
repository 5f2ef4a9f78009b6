package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	contributingThreshold = 30
	highRiskThreshold     = 50
	lowRiskThreshold      = 30

	maxContributing    = 8
	maxRecommendations = 5

	baseConfidence = 85
	minConfidence  = 60
	maxConfidence  = 95
)

// Engine scores driving conditions. It holds no state; the zero value is
// ready to use and safe for concurrent callers.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Predict never fails: unknown enum values contribute nothing to their
// factor and an input with no scoring factor yields a zero score.
func (e *Engine) Predict(in Input) Prediction {
	factors := scoreFactors(in)

	normalized := aggregate(factors)
	score := int(math.Round(normalized))

	return Prediction{
		Level:               LevelForNormalized(normalized),
		Score:               score,
		Confidence:          confidence(factors, normalized),
		ContributingFactors: contributing(factors),
		Recommendations:     recommendations(in, factors),
		Factors:             factors,
	}
}

// scoreFactors returns the factors with a nonzero score, in declaration
// order. Zero-score factors are left out entirely so they neither dilute
// the weighted average nor count towards confidence.
func scoreFactors(in Input) []Factor {
	all := []Factor{
		weatherFactor(in),
		trafficFactor(in),
		roadFactor(in),
		timeFactor(in),
		locationFactor(in),
		driverFactor(in),
	}

	out := make([]Factor, 0, len(all))
	for _, f := range all {
		if f.Score > 0 {
			out = append(out, f)
		}
	}
	return out
}

func aggregate(factors []Factor) float64 {
	if len(factors) == 0 {
		return 0
	}

	scores := make([]float64, len(factors))
	weights := make([]float64, len(factors))
	for i, f := range factors {
		scores[i] = float64(f.Score)
		weights[i] = f.Weight
	}

	maxPossible := maxFactorScore * floats.Sum(weights)
	if maxPossible <= 0 {
		return 0
	}
	return math.Min(100, floats.Dot(scores, weights)/maxPossible*100)
}

// LevelForNormalized buckets the unrounded weighted score, so 19.6 is still
// very low even though it publishes as 20.
func LevelForNormalized(normalized float64) Level {
	switch {
	case normalized < 20:
		return LevelVeryLow
	case normalized < 40:
		return LevelLow
	case normalized < 60:
		return LevelMedium
	case normalized < 80:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

func contributing(factors []Factor) []Clause {
	ranked := make([]Factor, 0, len(factors))
	for _, f := range factors {
		if f.Score > contributingThreshold {
			ranked = append(ranked, f)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Weight > ranked[j].Weight
	})

	out := make([]Clause, 0, maxContributing)
	for _, f := range ranked {
		for _, k := range f.Clauses {
			if len(out) == maxContributing {
				return out
			}
			out = append(out, Clause{Factor: f.ID, Severity: f.Score, Key: k})
		}
	}
	return out
}

func confidence(factors []Factor, normalized float64) int {
	c := baseConfidence

	if len(factors) < 3 {
		c -= 15
	}
	if normalized < 10 || normalized > 90 {
		c -= 10
	}

	high, low := countAbove(factors, highRiskThreshold), countBelow(factors, lowRiskThreshold)
	if high > 2 || low > 3 {
		c += 10
	}

	return clamp(c, minConfidence, maxConfidence)
}

func countAbove(factors []Factor, threshold int) int {
	n := 0
	for _, f := range factors {
		if f.Score > threshold {
			n++
		}
	}
	return n
}

func countBelow(factors []Factor, threshold int) int {
	n := 0
	for _, f := range factors {
		if f.Score < threshold {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

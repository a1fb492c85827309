package analytics

import (
	"log/slog"

	"github.com/shopspring/decimal"
)

// reducer defines how one score statistic folds incoming values.
type reducer interface {
	// Initial returns the statistic after the first score.
	Initial(incoming decimal.Decimal) decimal.Decimal

	// Apply folds an incoming score into the running statistic.
	Apply(current, incoming decimal.Decimal) decimal.Decimal
}

const (
	statSum = "sum"
	statMin = "min"
	statMax = "max"
)

var reducers = map[string]reducer{
	statSum: sumReducer{},
	statMin: minReducer{},
	statMax: maxReducer{},
}

type sumReducer struct{}

func (sumReducer) Initial(v decimal.Decimal) decimal.Decimal      { return v }
func (sumReducer) Apply(cur, inc decimal.Decimal) decimal.Decimal { return cur.Add(inc) }

type minReducer struct{}

func (minReducer) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (minReducer) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.LessThan(cur) {
		return inc
	}
	return cur
}

type maxReducer struct{}

func (maxReducer) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (maxReducer) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.GreaterThan(cur) {
		return inc
	}
	return cur
}

// ScoreStats summarizes generated.scoreGiven across GradeEvents. Values are
// exact decimals of the submitted numbers; no float rounding happens before
// the mean.
type ScoreStats struct {
	Count int64           `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
	Mean  decimal.Decimal `json:"mean"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

// foldScores parses and reduces raw score texts. Unparseable values are
// skipped. Returns nil when no score parsed.
func foldScores(raw []string) *ScoreStats {
	var (
		count int64
		state = make(map[string]decimal.Decimal, len(reducers))
	)

	for _, text := range raw {
		score, err := decimal.NewFromString(text)
		if err != nil {
			slog.Warn("[Analytics] Skipping unparseable score", "value", text, "error", err)
			continue
		}
		for name, r := range reducers {
			if count == 0 {
				state[name] = r.Initial(score)
				continue
			}
			state[name] = r.Apply(state[name], score)
		}
		count++
	}

	if count == 0 {
		return nil
	}
	return &ScoreStats{
		Count: count,
		Sum:   state[statSum],
		Mean:  state[statSum].Div(decimal.NewFromInt(count)),
		Min:   state[statMin],
		Max:   state[statMax],
	}
}

package staffing

// ScoreResult is one scorer's contribution to a total
type ScoreResult struct {
	Scorer string
	Score  float64

	// Note is a diagnostic from scorers that implement Explainer; nil otherwise
	Note error
}

// Breakdown is the per-scorer result of scoring one candidate assignment
type Breakdown struct {
	Results []ScoreResult
	Total   float64
}

// Engine sums the scores of a fixed list of scorers
type Engine struct {
	scorers []Scorer
}

// NewEngine creates an engine that evaluates the scorers in order
func NewEngine(scorers ...Scorer) *Engine {
	return &Engine{scorers: scorers}
}

// Scorers returns the configured scorers
func (e *Engine) Scorers() []Scorer {
	return e.scorers
}

// Score evaluates every scorer. It stops at the first contract violation.
func (e *Engine) Score(sc ScoreContext) (*Breakdown, error) {
	breakdown := &Breakdown{Results: make([]ScoreResult, 0, len(e.scorers))}

	for _, scorer := range e.scorers {
		score, err := Evaluate(scorer, sc)
		if err != nil {
			return nil, err
		}

		result := ScoreResult{Scorer: scorer.Name(), Score: score}
		if explainer, ok := scorer.(Explainer); ok {
			result.Note = explainer.Explain(sc)
		}

		breakdown.Results = append(breakdown.Results, result)
		breakdown.Total += score
	}

	return breakdown, nil
}

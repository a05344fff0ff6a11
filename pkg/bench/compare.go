package bench

// Comparison reports the change in one metric for one case between two
// runs, matched by the case's stable identifier.
type Comparison struct {
	CaseID    string
	Name      string
	Metric    Metric
	PctChange float64 // percentage change from prev to curr
	Prev      float64 // previous mean
	Curr      float64 // current mean
}

// Compare matches completed cases from two runs by stable ID and
// reports the percentage change in the mean of metric m. Cases missing
// from either run, or without a result for m, are skipped.
func Compare(prev, curr []*Case, m Metric) []Comparison {
	prevByID := make(map[string]*Case, len(prev))
	for _, c := range prev {
		prevByID[c.ID()] = c
	}

	var out []Comparison
	for _, c := range curr {
		p, ok := prevByID[c.ID()]
		if !ok {
			continue
		}
		pr, cr := p.Result(m), c.Result(m)
		if pr == nil || cr == nil {
			continue
		}
		comp := Comparison{
			CaseID: c.ID(),
			Name:   c.Name(),
			Metric: m,
			Prev:   pr.Stats.Mean,
			Curr:   cr.Stats.Mean,
		}
		if pr.Stats.Mean != 0 {
			comp.PctChange = (cr.Stats.Mean - pr.Stats.Mean) / pr.Stats.Mean * 100
		}
		out = append(out, comp)
	}
	return out
}

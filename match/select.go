package match

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/rxscan/medsearch/jptext"
)

var specNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// BestPerIngredient collapses match candidates so each active ingredient
// is represented by one medicine, in two stages: first duplicates of the
// same (ingredient, specification) pair are reduced to the most
// confident one, then one medicine per ingredient is kept. On equal
// confidence the lower numeric specification value wins, then the lower
// record id. The result is ordered by confidence descending, id
// ascending.
func BestPerIngredient(candidates []*Candidate) []*Candidate {
	if len(candidates) == 0 {
		return []*Candidate{}
	}

	type specKey struct {
		ingredient    string
		specification string
	}
	bySpec := make(map[specKey]*Candidate)
	for _, c := range candidates {
		key := specKey{c.Record.IngredientName, c.Record.Specification}
		if prev, ok := bySpec[key]; !ok || c.Confidence > prev.Confidence {
			bySpec[key] = c
		}
	}

	byIngredient := make(map[string]*Candidate)
	for _, c := range bySpec {
		prev, ok := byIngredient[c.Record.IngredientName]
		if !ok || betterForIngredient(c, prev) {
			byIngredient[c.Record.IngredientName] = c
		}
	}

	out := make([]*Candidate, 0, len(byIngredient))
	for _, c := range byIngredient {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Record.Id < out[j].Record.Id
	})
	return out
}

func betterForIngredient(c, prev *Candidate) bool {
	if c.Confidence != prev.Confidence {
		return c.Confidence > prev.Confidence
	}
	cs, ps := specValue(c.Record.Specification), specValue(prev.Record.Specification)
	if cs != ps {
		return cs < ps
	}
	return c.Record.Id < prev.Record.Id
}

// specValue extracts the leading numeric strength from a specification
// string ("60mg" -> 60). Specifications without a number sort last.
func specValue(specification string) float64 {
	m := specNumber.FindString(jptext.Normalize(specification))
	if m == "" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

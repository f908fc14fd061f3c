package goods

import "sort"

// Rand is the random-source subset deck draws need. *math/rand.Rand and the
// engine's seeded dice both satisfy it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// HandSize is how many cards a merchant has available to choose from.
const HandSize = 7

// Draw weights per good, from the physical game's card distribution
// (205 cards total). The deck is treated as infinite: draws are weighted
// picks with replacement, so it never runs dry mid-session.
var deckWeights = map[string]int{
	"apple":    48,
	"cheese":   36,
	"bread":    36,
	"chicken":  24,
	"pepper":   22,
	"mead":     22,
	"silk":     12,
	"crossbow": 5,
}

var totalDeckWeight = func() int {
	total := 0
	for _, w := range deckWeights {
		total += w
	}
	return total
}()

// weightedIDs is deckWeights flattened to a stable order so equal seeds
// produce equal draws.
var weightedIDs = func() []string {
	ids := make([]string, 0, len(deckWeights))
	for id := range deckWeights {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}()

// DrawProbability returns the chance of drawing the given good per card.
func DrawProbability(id string) float64 {
	w, ok := deckWeights[id]
	if !ok {
		return 0
	}
	return float64(w) / float64(totalDeckWeight)
}

func drawOne(rng Rand) Good {
	pick := rng.Intn(totalDeckWeight)
	for _, id := range weightedIDs {
		pick -= deckWeights[id]
		if pick < 0 {
			return byID[id]
		}
	}
	return byID[weightedIDs[len(weightedIDs)-1]]
}

// DrawHand draws size cards from the infinite deck.
func DrawHand(rng Rand, size int) []Good {
	if size <= 0 {
		size = HandSize
	}
	hand := make([]Good, size)
	for i := range hand {
		hand[i] = drawOne(rng)
	}
	return hand
}

// RedrawPreference controls which cards Redraw keeps.
type RedrawPreference byte

const (
	PreferNone       RedrawPreference = 0
	PreferLegal      RedrawPreference = 1
	PreferContraband RedrawPreference = 2
	PreferHighValue  RedrawPreference = 3
)

// Redraw discards n cards from the hand and replaces them with fresh draws.
// The discard choice follows the preference: keep legal, keep contraband, or
// keep high value; PreferNone discards at random.
func Redraw(rng Rand, hand []Good, n int, pref RedrawPreference) []Good {
	if n <= 0 || n > len(hand) {
		return hand
	}

	sorted := make([]Good, len(hand))
	copy(sorted, hand)
	switch pref {
	case PreferContraband:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].IsContraband() != sorted[j].IsContraband() {
				return sorted[i].IsContraband()
			}
			return sorted[i].Value > sorted[j].Value
		})
	case PreferLegal:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].IsLegal() != sorted[j].IsLegal() {
				return sorted[i].IsLegal()
			}
			return sorted[i].Value > sorted[j].Value
		})
	case PreferHighValue:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Value > sorted[j].Value
		})
	default:
		for i := len(sorted) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}

	kept := sorted[:len(sorted)-n]
	out := make([]Good, 0, len(hand))
	out = append(out, kept...)
	out = append(out, DrawHand(rng, n)...)
	return out
}

// HandAnalysis splits a hand for policy decisions.
type HandAnalysis struct {
	Legal      []Good
	Contraband []Good
	Counts     map[string]int
}

// AnalyzeHand partitions a hand by kind and counts each good type.
func AnalyzeHand(hand []Good) HandAnalysis {
	a := HandAnalysis{Counts: make(map[string]int, len(hand))}
	for _, g := range hand {
		if g.IsContraband() {
			a.Contraband = append(a.Contraband, g)
		} else {
			a.Legal = append(a.Legal, g)
		}
		a.Counts[g.ID]++
	}
	return a
}

// MostCommon returns the good id with the highest count among the given
// goods, breaking ties by id for determinism. ok is false when goods is empty.
func (a HandAnalysis) MostCommon(among []Good) (id string, count int, ok bool) {
	seen := map[string]bool{}
	for _, g := range among {
		seen[g.ID] = true
	}
	best := ""
	bestCount := 0
	for gid, c := range a.Counts {
		if !seen[gid] {
			continue
		}
		if c > bestCount || (c == bestCount && (best == "" || gid < best)) {
			best, bestCount = gid, c
		}
	}
	if best == "" {
		return "", 0, false
	}
	return best, bestCount, true
}

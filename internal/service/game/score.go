package game

// maxMeldCredit caps how many cards of a single meld count toward MeldCount.
const maxMeldCredit = 4

// DeadwoodPoints sums the point value of every card outside a meld.
func DeadwoodPoints(org Organization) int {
	points := 0
	for _, g := range org {
		if !g.IsMeld() {
			points += g.Points()
		}
	}
	return points
}

// MeldCount counts melded cards, crediting at most four cards per meld.
func MeldCount(org Organization) int {
	count := 0
	for _, g := range org {
		if g.IsMeld() {
			count += min(g.Size(), maxMeldCredit)
		}
	}
	return count
}

// MaxMeldCount is the best MeldCount over orgs, 0 when orgs is empty.
func MaxMeldCount(orgs []Organization) int {
	best := 0
	for _, o := range orgs {
		best = max(best, MeldCount(o))
	}
	return best
}

// BestOrganization returns the first organization with the least deadwood.
// Among equal scores the winner depends on enumeration order.
func BestOrganization(orgs []Organization) (Organization, bool) {
	if len(orgs) == 0 {
		return nil, false
	}
	best, bestPoints := orgs[0], DeadwoodPoints(orgs[0])
	for _, o := range orgs[1:] {
		if p := DeadwoodPoints(o); p < bestPoints {
			best, bestPoints = o, p
		}
	}
	return best, true
}

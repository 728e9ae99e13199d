package analytics

// Satisfies reports whether a set of starting positions fills req.
// QB, K and DEF must match exactly, RB, WR and TE are minimums, and FLEX
// slots can only be covered by surplus RB, WR or TE. A zero requirement
// accepts any lineup.
func Satisfies(positions []string, req RosterRequirement) bool {
	if req.IsZero() {
		return true
	}

	counts := make(map[string]int, len(positions))
	for _, pos := range positions {
		counts[pos]++
	}

	switch {
	case counts["QB"] != req.QB,
		counts["RB"] < req.RB,
		counts["WR"] < req.WR,
		counts["TE"] < req.TE,
		counts["K"] != req.K,
		counts["DEF"] != req.DEF:
		return false
	}

	flex := counts["RB"] + counts["WR"] + counts["TE"]
	return flex >= req.RB+req.WR+req.TE+req.Flex
}

// IsValidSubstitution checks the lineup that results from swapping one
// outgoing position for the incoming one. current is left untouched.
func IsValidSubstitution(current []string, incoming, outgoing string, req RosterRequirement) bool {
	test := make([]string, 0, len(current)+1)
	removed := false
	for _, pos := range current {
		if !removed && pos == outgoing {
			removed = true
			continue
		}
		test = append(test, pos)
	}
	test = append(test, incoming)

	return Satisfies(test, req)
}

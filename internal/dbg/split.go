package dbg

// SplitPath is the path splitter of spec.md §4.E: it cuts path at every
// interior vertex whose in-degree or out-degree (measured by TrueBranches,
// so Bloom-filter false-positive tips never force a cut) exceeds one. The
// branching vertex is shared between the two segments it separates, and any
// resulting singleton segment (a branch immediately followed by another
// branch) is discarded.
func SplitPath(path Path, g *Graph, minBranchLen int) []Path {
	if len(path) == 0 {
		return nil
	}

	var segments []Path
	current := Path{path[0]}
	for i := 1; i < len(path); i++ {
		v := path[i]
		current = append(current, v)
		if i == len(path)-1 {
			break
		}
		inDeg := len(g.TrueBranches(v, Reverse, minBranchLen))
		outDeg := len(g.TrueBranches(v, Forward, minBranchLen))
		if inDeg > 1 || outDeg > 1 {
			if len(current) > 1 {
				segments = append(segments, current)
			}
			current = Path{v}
		}
	}
	if len(current) > 1 {
		segments = append(segments, current)
	}
	return segments
}

package dbg

import "bloomdbg/internal/xutil"

// ExtendPath is the path extender of spec.md §4.D. It first chops up to
// minBranchLen vertices off each end of path (a path just emitted by
// SeqToPath carries its two endpoints' worth of uncertainty, since a read
// can end mid-branch), then extends one vertex at a time from each end
// while exactly one true branch exists. A single visited set, holding every
// vertex appended since extension began and shared by the forward and the
// reverse phase, stops the walk from looping back on itself; the chopped
// vertices are not in it, so the walk can cross them again.
func ExtendPath(path Path, g *Graph, minBranchLen int) Path {
	if len(path) == 0 {
		return path
	}

	visited := make(map[string]bool)

	chop := xutil.MinInt(len(path)-1, minBranchLen)
	path = path[:len(path)-chop].Clone()
	path = extendDirection(path, g, Forward, minBranchLen, visited)

	chop = xutil.MinInt(len(path)-1, minBranchLen)
	path = path[chop:].Clone()
	path = extendDirection(path, g, Reverse, minBranchLen, visited)

	return path
}

// extendDirection walks path's dir-end vertex by vertex: at each step it
// stops unless TrueBranches reports exactly one candidate, and it stops
// before revisiting any vertex already in visited.
func extendDirection(path Path, g *Graph, dir Direction, minBranchLen int, visited map[string]bool) Path {
	for {
		var cur Vertex
		if dir == Forward {
			cur = path[len(path)-1]
		} else {
			cur = path[0]
		}
		branches := g.TrueBranches(cur, dir, minBranchLen)
		if len(branches) != 1 {
			return path
		}
		next := branches[0]
		if visited[next.Key()] {
			return path
		}
		visited[next.Key()] = true
		if dir == Forward {
			path = append(path, next)
		} else {
			np := make(Path, len(path)+1)
			np[0] = next
			copy(np[1:], path)
			path = np
		}
	}
}

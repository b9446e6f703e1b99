// Package graphviz renders a breadth-first slice of the implicit de Bruijn
// graph of spec.md §4.J starting from a seed vertex, for visual inspection.
//
// It is grounded on the teacher's GraphvizDBGArr/GraphvizDBG
// (constructdbg.go, findPath/findPath.go): build a *gographviz.Graph via
// NewGraph/SetName/SetDir/SetStrict, AddNode/AddEdge as vertices are
// discovered, then write out g.String(). The traversal order itself follows
// original_source's GraphvizBFSVisitor: discover_vertex declares a node the
// first time it is reached, examine_edge declares an edge every time one is
// traversed (including non-tree edges back into an already-discovered
// vertex), and both directions (forward and reverse) are explored from
// every visited vertex, so an edge between two visited vertices is
// traversed, and declared, once from each of its endpoints.
package graphviz

import (
	"io"

	"github.com/awalterschulze/gographviz"

	"bloomdbg/internal/dbg"
)

// DumpBFS performs a breadth-first traversal of graph starting at start,
// declaring every distinct vertex visited as a node and every edge
// traversal as an edge of a GraphViz digraph written to out. It returns the
// number of distinct nodes visited and the number of edge traversals.
func DumpBFS(start dbg.Vertex, graph *dbg.Graph, out io.Writer) (nodes, edges int) {
	g := gographviz.NewGraph()
	g.SetName("g")
	g.SetDir(true)
	g.SetStrict(false)

	visited := map[string]bool{start.Key(): true}
	declareNode(g, start)
	nodes++

	queue := []dbg.Vertex{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, dir := range [2]dbg.Direction{dbg.Forward, dbg.Reverse} {
			for _, v := range graph.Neighbours(u, dir) {
				edges++
				declareEdge(g, u, v, dir)
				if !visited[v.Key()] {
					visited[v.Key()] = true
					declareNode(g, v)
					nodes++
					queue = append(queue, v)
				}
			}
		}
	}

	io.WriteString(out, g.String())
	return nodes, edges
}

func declareNode(g *gographviz.Graph, v dbg.Vertex) {
	attr := map[string]string{"label": v.Kmer.String()}
	g.AddNode("g", nodeName(v), attr)
}

func declareEdge(g *gographviz.Graph, u, v dbg.Vertex, dir dbg.Direction) {
	attr := map[string]string{}
	src, dst := nodeName(u), nodeName(v)
	if dir == dbg.Reverse {
		src, dst = dst, src
	}
	g.AddEdge(src, dst, true, attr)
}

// nodeName quotes the vertex's canonical key so that GraphViz accepts
// arbitrary k-mer bases as a node identifier.
func nodeName(v dbg.Vertex) string {
	return "\"" + v.Key() + "\""
}

package routing

import "strings"

// Segment is one ride on a single route between a boarding and an alighting
// stop, possibly passing intermediate stops.
type Segment struct {
	FromStopID string `json:"fromStopId"`
	ToStopID   string `json:"toStopId"`
	RouteID    string `json:"routeId"`
}

// Path is one structurally distinct way through the network, not yet bound to
// any timetable.
type Path struct {
	Segments []Segment `json:"segments"`
}

func (p Path) Transfers() int {
	if len(p.Segments) == 0 {
		return 0
	}

	return len(p.Segments) - 1
}

type PathOptions struct {
	MaxPaths     int
	MaxTransfers int
}

const (
	defaultMaxPaths     = 5
	defaultMaxTransfers = 2

	// search guards, not tuning knobs
	maxPathHops     = 60
	expansionBudget = 500_000
)

// FindAllPaths enumerates up to MaxPaths distinct paths between two stops,
// fewest transfers first. An unreachable destination yields an empty slice.
func (g *Graph) FindAllPaths(fromStopID string, toStopID string, opts PathOptions) []Path {
	if opts.MaxPaths <= 0 {
		opts.MaxPaths = defaultMaxPaths
	}
	if opts.MaxTransfers < 0 {
		opts.MaxTransfers = defaultMaxTransfers
	}

	search := &pathSearch{
		graph:      g,
		toStopID:   toStopID,
		maxPaths:   opts.MaxPaths,
		seenRiding: map[string]bool{},
	}

	// Iterative deepening on the transfer bound so lower-transfer paths are
	// always found before any alternative needing one change more.
	for bound := 0; bound <= opts.MaxTransfers && len(search.found) < opts.MaxPaths; bound++ {
		search.transferBound = bound
		search.visited = map[string]bool{fromStopID: true}
		search.walk(fromStopID)
	}

	return search.found
}

type pathSearch struct {
	graph    *Graph
	toStopID string

	maxPaths      int
	transferBound int

	visited    map[string]bool
	chain      []edge
	budget     int
	seenRiding map[string]bool

	found []Path
}

func (s *pathSearch) walk(stopID string) {
	if len(s.found) >= s.maxPaths || s.budget > expansionBudget || len(s.chain) > maxPathHops {
		return
	}
	s.budget++

	if stopID == s.toStopID {
		s.record()
		return
	}

	for _, next := range s.graph.adjacency[stopID] {
		if s.visited[next.toStopID] {
			continue
		}

		if s.chainTransfers(next.routeID) > s.transferBound {
			continue
		}

		s.visited[next.toStopID] = true
		s.chain = append(s.chain, next)
		s.walk(next.toStopID)
		s.chain = s.chain[:len(s.chain)-1]
		delete(s.visited, next.toStopID)
	}
}

// chainTransfers counts the route changes the current chain would contain
// after boarding nextRoute.
func (s *pathSearch) chainTransfers(nextRoute string) int {
	transfers := 0
	var riding string

	for _, hop := range s.chain {
		if riding != "" && hop.routeID != riding {
			transfers++
		}
		riding = hop.routeID
	}

	if riding != "" && nextRoute != riding {
		transfers++
	}

	return transfers
}

func (s *pathSearch) record() {
	path := compressChain(s.chain)
	if len(path.Segments) == 0 {
		return
	}

	// A path is considered a duplicate when it boards the same routes at the
	// same stops, regardless of intermediate stops travelled through.
	var signature strings.Builder
	for _, segment := range path.Segments {
		signature.WriteString(segment.RouteID)
		signature.WriteByte('@')
		signature.WriteString(segment.FromStopID)
		signature.WriteByte('>')
	}

	if s.seenRiding[signature.String()] {
		return
	}
	s.seenRiding[signature.String()] = true

	s.found = append(s.found, path)
}

// compressChain merges consecutive hops on the same route into ride segments.
func compressChain(chain []edge) Path {
	var path Path

	var fromStopID string
	var riding string
	var lastStopID string

	for index, hop := range chain {
		if index == 0 {
			fromStopID = hop.fromStopID
			riding = hop.routeID
		} else if hop.routeID != riding {
			path.Segments = append(path.Segments, Segment{FromStopID: fromStopID, ToStopID: lastStopID, RouteID: riding})
			fromStopID = lastStopID
			riding = hop.routeID
		}

		lastStopID = hop.toStopID
	}

	if riding != "" {
		path.Segments = append(path.Segments, Segment{FromStopID: fromStopID, ToStopID: lastStopID, RouteID: riding})
	}

	return path
}

package types

// LinkPair is one source → destination link.
type LinkPair struct {
	Source      string
	Destination string
}

// LinkSet is an ordered collection of link pairs in which both sources and
// destinations are unique. Adding a pair that shares its source or its
// destination with an existing pair replaces that pair (last write wins).
type LinkSet struct {
	pairs []LinkPair
}

// Add appends the pair and returns the pairs it replaced
func (s *LinkSet) Add(source, destination string) []LinkPair {
	var replaced []LinkPair
	kept := s.pairs[:0:0]
	for _, p := range s.pairs {
		if p.Source == source || p.Destination == destination {
			replaced = append(replaced, p)
			continue
		}
		kept = append(kept, p)
	}
	s.pairs = append(kept, LinkPair{Source: source, Destination: destination})
	return replaced
}

// Pairs returns the pairs in insertion order
func (s LinkSet) Pairs() []LinkPair {
	out := make([]LinkPair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Destinations returns the destinations in insertion order
func (s LinkSet) Destinations() []string {
	out := make([]string, 0, len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p.Destination)
	}
	return out
}

// Lookup returns the source linked to destination
func (s LinkSet) Lookup(destination string) (string, bool) {
	for _, p := range s.pairs {
		if p.Destination == destination {
			return p.Source, true
		}
	}
	return "", false
}

// Len returns the number of pairs
func (s LinkSet) Len() int {
	return len(s.pairs)
}

// Collision records a pair replaced by a later one in the same collection.
type Collision struct {
	Replaced LinkPair
	By       LinkPair
}

// LinkMapping is the set of links computed for a single extension. It is
// derived data and is recomputed for every unlink and link cycle.
type LinkMapping struct {
	// Directories are symlinked as a whole
	Directories LinkSet

	// Files are symlinked one by one
	Files LinkSet

	// HardLinks are hard-linked files
	HardLinks LinkSet

	// Collisions lists every pair replaced by a later declaration
	Collisions []Collision
}

// AddDirectory adds a directory link
func (m *LinkMapping) AddDirectory(source, destination string) {
	m.record(m.Directories.Add(source, destination), source, destination)
}

// AddFile adds a file symlink
func (m *LinkMapping) AddFile(source, destination string) {
	m.record(m.Files.Add(source, destination), source, destination)
}

// AddHardLink adds a hard link
func (m *LinkMapping) AddHardLink(source, destination string) {
	m.record(m.HardLinks.Add(source, destination), source, destination)
}

func (m *LinkMapping) record(replaced []LinkPair, source, destination string) {
	by := LinkPair{Source: source, Destination: destination}
	for _, p := range replaced {
		if p == by {
			continue
		}
		m.Collisions = append(m.Collisions, Collision{Replaced: p, By: by})
	}
}

// Len returns the total number of links
func (m LinkMapping) Len() int {
	return m.Directories.Len() + m.Files.Len() + m.HardLinks.Len()
}

package pushvm

import "fmt"

// IndexPair drives loop termination: a loop runs while Current is below
// Destination
type IndexPair struct {
	Current     uint64
	Destination uint64
}

// NewIndexPair creates a pair counting from 0 up to destination
func NewIndexPair(destination uint64) IndexPair {
	return IndexPair{Destination: destination}
}

// Done reports whether the loop driven by this pair has terminated
func (p IndexPair) Done() bool {
	return p.Current >= p.Destination
}

// String renders the pair as "current/destination"
func (p IndexPair) String() string {
	return fmt.Sprintf("%d/%d", p.Current, p.Destination)
}

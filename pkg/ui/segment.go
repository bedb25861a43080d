package ui

// Segment is a string that is styled as a whole, via the name of a face.
type Segment struct {
	Text string
	Face string
}

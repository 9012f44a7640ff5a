package gdocs

// Document is a simplified view of a Google Doc.
type Document struct {
	ID    string
	Title string
	URL   string
}

// ReplaceTextRequest is the input for a find-and-replace edit inside a document.
type ReplaceTextRequest struct {
	DocumentID  string
	Target      string
	Replacement string
	MatchCase   bool
}

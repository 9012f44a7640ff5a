package gmail

// MessageSummary is a lightweight view of a mailbox message, enough to
// render a result list without fetching full bodies.
type MessageSummary struct {
	ID       string
	ThreadID string
	From     string
	Subject  string
	Date     string
	Snippet  string
}

// Message is a fully fetched mailbox message.
type Message struct {
	ID       string
	ThreadID string
	From     string
	To       string
	Subject  string
	Date     string
	Body     string
}

// CreateDraftRequest is the input for creating a mail draft.
type CreateDraftRequest struct {
	To       string
	Subject  string
	Body     string
	ThreadID string // set to reply within an existing thread
}

// Draft is a stored, unsent mail draft.
type Draft struct {
	ID      string
	To      string
	Subject string
	Body    string
}

package types

// --- Notes tool inputs ---

type PersonalNotesInput struct {
	Topics []string `json:"topics" jsonschema:"Topics to search for (case-insensitive). An empty list returns the usage guide"`
}

type RelatedTopicsInput struct {
	Topics []string `json:"topics" jsonschema:"Topics whose notes are scanned for outgoing [[links]] and #tags"`
}

// --- Task tool inputs ---

type TodoItemsInput struct {
	Markers []string `json:"markers,omitempty" jsonschema:"Task markers to match (TODO, DOING, LATER, NOW, DONE). Default: TODO and DOING"`
}

// --- Journal tool inputs ---

type JournalNotesInput struct {
	From string `json:"from" jsonschema:"Start date (YYYY-MM-DD)"`
	To   string `json:"to" jsonschema:"End date (YYYY-MM-DD)"`
}

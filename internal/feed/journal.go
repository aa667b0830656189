package feed

// JournalEntry is one recommended journal.
type JournalEntry struct {
	Rank         int      `json:"rank"`
	Score        float64  `json:"score"`
	Similarity   float64  `json:"similarity"`
	TopicOverlap float64  `json:"topic_overlap"`
	JournalID    string   `json:"journal_id"`
	Journal      Journal  `json:"journal"`
	Analysis     Analysis `json:"analysis"`
	VectorUsed   bool     `json:"vector_used"`
}

// Journal is the catalog record of a journal.
type Journal struct {
	Title     string   `json:"title,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	ISSN      []string `json:"issn,omitempty"`
	URL       string   `json:"url,omitempty"`
	Subjects  []string `json:"subjects,omitempty"`
	Scope     string   `json:"scope,omitempty"`
}

// Analysis is the fit assessment of a journal against the active profile.
type Analysis struct {
	FitSummary string   `json:"fit_summary,omitempty"`
	Reasons    []string `json:"reasons,omitempty"`
	Risks      []string `json:"risks,omitempty"`
	FitScore   float64  `json:"fit_score,omitempty"`
	Tag        string   `json:"tag,omitempty"`
}

// JournalsResponse is the body of the journals endpoint.
type JournalsResponse struct {
	Items          []JournalEntry `json:"items"`
	CatalogSize    int            `json:"catalog_size"`
	Evaluated      int            `json:"evaluated"`
	Limit          int            `json:"limit"`
	GeneratedAt    string         `json:"generated_at"`
	EmbeddingModel string         `json:"embedding_model"`
	UsedEmbeddings bool           `json:"used_embeddings"`
	LLMEnabled     bool           `json:"llm_enabled"`
}

// JournalState is the held journals snapshot. Journals are never paged:
// each completed fetch replaces the whole snapshot.
type JournalState struct {
	Items          []JournalEntry
	CatalogSize    int
	GeneratedAt    string
	UsedEmbeddings bool
	Loading        bool
	LastError      string
}

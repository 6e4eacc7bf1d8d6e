package index

// DocumentRecord is one entry of the direct index: the display metadata for
// a single document.
type DocumentRecord struct {
	DocID string
	Title string
	URL   string
}

// DirectIndex holds document records in corpus ingestion order.
type DirectIndex []DocumentRecord

// PostingList is the set of doc_ids containing a term. After a build it is
// ascending and duplicate-free; the query set operations rely on that.
type PostingList []string

// InvertedIndex maps a normalised term to its posting list.
type InvertedIndex map[string]PostingList

package models

import "sort"

// SuggestionGroup collects transactions proposed for the same category,
// keyed by the suggested category name for the review screen.
type SuggestionGroup struct {
	CategoryName string        `json:"category_name"`
	Transactions []Transaction `json:"transactions"`
}

// SuggestionBatch is the in-memory review view over all transactions
// currently carrying classifier proposals. It is never persisted; it is
// rebuilt from transaction state on each review session.
type SuggestionBatch struct {
	Groups []SuggestionGroup `json:"groups"`
	Total  int               `json:"total"`
}

// BuildSuggestionBatch groups the transactions that carry suggestions by
// suggested category name, sorted by name for stable rendering.
func BuildSuggestionBatch(transactions []Transaction) SuggestionBatch {
	byName := make(map[string][]Transaction)
	for _, txn := range transactions {
		if !txn.HasSuggestion() {
			continue
		}
		byName[txn.SuggestedCategoryName] = append(byName[txn.SuggestedCategoryName], txn)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	batch := SuggestionBatch{Groups: make([]SuggestionGroup, 0, len(names))}
	for _, name := range names {
		batch.Groups = append(batch.Groups, SuggestionGroup{
			CategoryName: name,
			Transactions: byName[name],
		})
		batch.Total += len(byName[name])
	}
	return batch
}

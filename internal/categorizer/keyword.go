package categorizer

import (
	"sort"
	"strings"

	"fjacquet/spendlens/internal/models"
)

// KeywordIndex classifies descriptions by substring containment against a
// flattened keyword table. Longer keywords are tested first so that
// "food lion" wins over "food". The index is immutable after construction.
type KeywordIndex struct {
	entries []models.KeywordIndexEntry
}

// NewKeywordIndex flattens rules into (keyword, category) pairs and sorts them
// by descending keyword length. Equal-length keywords keep rule order.
func NewKeywordIndex(rules []models.CategoryRule) *KeywordIndex {
	var entries []models.KeywordIndexEntry
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			entries = append(entries, models.KeywordIndexEntry{Keyword: keyword, Category: rule.Name})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Keyword) > len(entries[j].Keyword)
	})

	return &KeywordIndex{entries: entries}
}

// Classify returns the category of the first keyword contained in the
// lower-cased description, or models.CategoryOther.
func (k *KeywordIndex) Classify(description string) string {
	if k == nil {
		return models.CategoryOther
	}
	lower := strings.ToLower(description)
	for _, e := range k.entries {
		if strings.Contains(lower, e.Keyword) {
			return e.Category
		}
	}
	return models.CategoryOther
}

// Match is like Classify but also returns the keyword that matched.
func (k *KeywordIndex) Match(description string) (models.KeywordIndexEntry, bool) {
	if k == nil {
		return models.KeywordIndexEntry{}, false
	}
	lower := strings.ToLower(description)
	for _, e := range k.entries {
		if strings.Contains(lower, e.Keyword) {
			return e, true
		}
	}
	return models.KeywordIndexEntry{}, false
}

// Entries returns the compiled table in match order.
func (k *KeywordIndex) Entries() []models.KeywordIndexEntry {
	out := make([]models.KeywordIndexEntry, len(k.entries))
	copy(out, k.entries)
	return out
}

// Len returns the number of keywords in the index.
func (k *KeywordIndex) Len() int {
	return len(k.entries)
}

package vectorindex

import "rag-assistant-be/pkg/rag/lexical"

// relevanceThreshold is the minimum share of query tokens that must appear
// in the candidate for it to count as relevant.
const relevanceThreshold = 0.2

// CheckRelevance is the token-overlap heuristic used to filter generated
// query variations (not final results): the share of the query's tokens
// found in the candidate must reach the threshold. A query with zero
// tokens is never relevant; this cannot fail or divide by zero.
func CheckRelevance(query, candidate string) bool {
	queryTokens := lexical.Tokenize(query)
	if len(queryTokens) == 0 {
		return false
	}

	candidateSet := make(map[string]struct{})
	for _, t := range lexical.Tokenize(candidate) {
		candidateSet[t] = struct{}{}
	}

	matched := 0
	seen := make(map[string]struct{}, len(queryTokens))
	for _, t := range queryTokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := candidateSet[t]; ok {
			matched++
		}
	}

	return float64(matched)/float64(len(seen)) >= relevanceThreshold
}

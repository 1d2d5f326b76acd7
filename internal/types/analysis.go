package types

// AnalysisResult is the derived completeness score of a resume and the suggestions
// for every category that scored below its maximum. It is never patched, only replaced.
type AnalysisResult struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// Clone returns a copy of the result with its own suggestions slice.
func (a AnalysisResult) Clone() AnalysisResult {
	out := AnalysisResult{Score: a.Score, Suggestions: make([]string, len(a.Suggestions))}
	copy(out.Suggestions, a.Suggestions)
	return out
}

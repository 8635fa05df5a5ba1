package doctorsearch

import "github.com/Madumtv/healthcentral-sub001/internal/model"

// SearchState is the full state of one doctor-search session, e.g. one open
// "add doctor" form. Snapshots returned by Session.State are copies; mutating
// them does not affect the session.
type SearchState struct {
	// Query is the caller-controlled free-text input.
	Query string `json:"query"`
	// LastQuery is the query Results/OfficialResults are valid for.
	LastQuery string `json:"last_query"`
	// Results are persisted records from the local store, newest first.
	Results []*model.Doctor `json:"results"`
	// OfficialResults are unpersisted candidates from the national directory.
	OfficialResults []*model.Doctor `json:"official_results"`
	// Suggestions are records the user promoted during this session.
	Suggestions []*model.Doctor `json:"suggestions"`
	// Searching and OfficialSearching track the two independent in-flight
	// lookups.
	Searching         bool `json:"is_searching"`
	OfficialSearching bool `json:"is_official_searching"`
}

func (s SearchState) clone() SearchState {
	out := s
	out.Results = append([]*model.Doctor(nil), s.Results...)
	out.OfficialResults = append([]*model.Doctor(nil), s.OfficialResults...)
	out.Suggestions = append([]*model.Doctor(nil), s.Suggestions...)
	return out
}

// merge combines local and official results for display, deduplicating by
// trimmed practitioner number. The persisted record wins over a candidate
// for the same practitioner.
func merge(local, official []*model.Doctor) []*model.Doctor {
	out := append([]*model.Doctor(nil), local...)
	for _, cand := range official {
		dup := false
		for _, rec := range local {
			if rec.SamePractitioner(cand) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, cand)
		}
	}
	return out
}

package doctorsearch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/pkg/metrics"
)

// LocalStore is the persisted doctor registry as the session sees it.
// SearchDoctors already degrades failures to an empty slice.
type LocalStore interface {
	SearchDoctors(ctx context.Context, query string) []*model.Doctor
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
}

// OfficialDirectory is the external authoritative practitioner search.
type OfficialDirectory interface {
	Search(ctx context.Context, query string) ([]*model.Doctor, error)
}

// EventLogger records security-relevant actions, best effort.
type EventLogger interface {
	LogEvent(ctx context.Context, eventType string, details map[string]interface{})
}

// Session orchestrates one doctor search: local results, official-directory
// candidates and promoted suggestions. All transitions run under one mutex;
// completions of superseded lookups are discarded by a generation check, so
// two rapid searches can resolve in either order without an older response
// overwriting a newer one.
type Session struct {
	mu         sync.Mutex
	state      SearchState
	generation uint64

	local    LocalStore
	official OfficialDirectory
	events   EventLogger
	logger   *zerolog.Logger
	metrics  *metrics.Metrics
}

func NewSession(local LocalStore, official OfficialDirectory, events EventLogger, logger *zerolog.Logger, m *metrics.Metrics) *Session {
	return &Session{
		local:    local,
		official: official,
		events:   events,
		logger:   logger,
		metrics:  m,
	}
}

// State returns a copy of the current session state.
func (s *Session) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SetQuery updates the query and invalidates in-flight lookups. It does not
// trigger a search; debouncing is the caller's concern.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q == s.state.Query {
		return
	}
	s.state.Query = q
	s.generation++
}

// Search runs a local-store lookup for the current query. The store call
// happens outside the lock; the result is applied only if no newer query or
// clear superseded it meanwhile.
func (s *Session) Search(ctx context.Context) {
	s.mu.Lock()
	query := s.state.Query
	gen := s.generation
	s.state.Searching = true
	s.mu.Unlock()

	results := s.local.SearchDoctors(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Searching = false
	if gen != s.generation {
		if s.metrics != nil {
			s.metrics.StaleResponses.Inc()
		}
		return
	}
	s.state.Results = results
	s.state.LastQuery = query
	if s.metrics != nil {
		s.metrics.SearchResultsSize.Observe(float64(len(results)))
	}
}

// SearchOfficial queries the national directory for the current query. A
// failed lookup leaves OfficialResults empty rather than stale.
func (s *Session) SearchOfficial(ctx context.Context) {
	s.mu.Lock()
	query := s.state.Query
	gen := s.generation
	s.state.OfficialSearching = true
	s.mu.Unlock()

	candidates, err := s.official.Search(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("official search failed")
		candidates = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.OfficialSearching = false
	if gen != s.generation {
		if s.metrics != nil {
			s.metrics.StaleResponses.Inc()
		}
		return
	}
	s.state.OfficialResults = candidates
	s.state.LastQuery = query
}

// AddSuggestedDoctor promotes a candidate into the persisted store. An
// already-persisted record is returned unchanged without a second create.
// When persistence fails nothing is added and nil is returned with the error.
func (s *Session) AddSuggestedDoctor(ctx context.Context, candidate *model.Doctor) (*model.Doctor, error) {
	if candidate == nil {
		return nil, nil
	}
	if candidate.IsPersisted() {
		return candidate, nil
	}

	created := *candidate
	if err := s.local.CreateDoctor(ctx, &created); err != nil {
		s.logger.Error().Err(err).Str("rpps", candidate.RPPSNumber).Msg("failed to promote doctor")
		return nil, err
	}

	s.mu.Lock()
	s.state.Suggestions = append(s.state.Suggestions, &created)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.DoctorsPromoted.Inc()
	}
	if s.events != nil {
		s.events.LogEvent(ctx, model.SecurityEventDoctorPromoted, map[string]interface{}{
			"doctor_id":   created.ID.String(),
			"rpps_number": created.RPPSNumber,
		})
	}
	return &created, nil
}

// Merged returns the display list: local results and official candidates,
// deduplicated by practitioner number with the persisted record winning.
func (s *Session) Merged() []*model.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return merge(s.state.Results, s.state.OfficialResults)
}

// ClearSearch resets the session. In-flight lookups are not cancelled; their
// completions are discarded by the generation check.
func (s *Session) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state.Query = ""
	s.state.LastQuery = ""
	s.state.Results = nil
	s.state.OfficialResults = nil
	s.state.Suggestions = nil
}

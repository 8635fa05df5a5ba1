package doctorsearch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
)

type fakeStore struct {
	mu      sync.Mutex
	results map[string][]*model.Doctor
	creates int
	failAll bool
	// release, when set, blocks SearchDoctors until the channel is closed
	release map[string]chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		results: make(map[string][]*model.Doctor),
		release: make(map[string]chan struct{}),
	}
}

func (f *fakeStore) SearchDoctors(_ context.Context, query string) []*model.Doctor {
	f.mu.Lock()
	ch := f.release[query]
	f.mu.Unlock()
	if ch != nil {
		<-ch
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results[query]
}

func (f *fakeStore) CreateDoctor(_ context.Context, d *model.Doctor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("insert failed")
	}
	f.creates++
	d.ID = uuid.New()
	return nil
}

type fakeDirectory struct {
	results []*model.Doctor
	err     error
}

func (f *fakeDirectory) Search(context.Context, string) ([]*model.Doctor, error) {
	return f.results, f.err
}

func newTestSession(store *fakeStore, dir *fakeDirectory) *Session {
	logger := zerolog.Nop()
	return NewSession(store, dir, nil, &logger, nil)
}

func persisted(rpps, last string) *model.Doctor {
	return &model.Doctor{
		Base:       model.Base{ID: uuid.New()},
		RPPSNumber: rpps,
		LastName:   last,
	}
}

func candidate(rpps, last string) *model.Doctor {
	return &model.Doctor{RPPSNumber: rpps, LastName: last}
}

func TestSearchPopulatesResults(t *testing.T) {
	store := newFakeStore()
	store.results["mar"] = []*model.Doctor{persisted("111", "Martin")}
	s := newTestSession(store, &fakeDirectory{})

	s.SetQuery("mar")
	s.Search(context.Background())

	state := s.State()
	require.Len(t, state.Results, 1)
	assert.Equal(t, "mar", state.LastQuery)
	assert.False(t, state.Searching)
}

func TestAddSuggestedDoctorIsIdempotentForPersistedRecords(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store, &fakeDirectory{})
	existing := persisted("222", "Durand")

	first, err := s.AddSuggestedDoctor(context.Background(), existing)
	require.NoError(t, err)
	second, err := s.AddSuggestedDoctor(context.Background(), existing)
	require.NoError(t, err)

	assert.Same(t, existing, first)
	assert.Same(t, existing, second)
	assert.Zero(t, store.creates, "persisted records must not be created again")
}

func TestAddSuggestedDoctorPromotesCandidate(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store, &fakeDirectory{})
	cand := candidate("333", "Petit")

	promoted, err := s.AddSuggestedDoctor(context.Background(), cand)
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.True(t, promoted.IsPersisted())
	assert.False(t, cand.IsPersisted(), "input candidate must not be mutated")
	assert.Equal(t, 1, store.creates)

	state := s.State()
	require.Len(t, state.Suggestions, 1)
	assert.Equal(t, promoted.ID, state.Suggestions[0].ID)
}

func TestAddSuggestedDoctorFailureLeavesStateUnchanged(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	s := newTestSession(store, &fakeDirectory{})

	before := len(s.State().Suggestions)
	promoted, err := s.AddSuggestedDoctor(context.Background(), candidate("444", "Leroy"))
	assert.Error(t, err)
	assert.Nil(t, promoted)
	assert.Equal(t, before, len(s.State().Suggestions))
}

func TestMergedDeduplicatesByPractitionerNumber(t *testing.T) {
	store := newFakeStore()
	local := persisted("555", "Moreau")
	store.results["mor"] = []*model.Doctor{local}
	dir := &fakeDirectory{results: []*model.Doctor{
		candidate(" 555 ", "Moreau"),
		candidate("666", "Morel"),
	}}
	s := newTestSession(store, dir)

	s.SetQuery("mor")
	s.Search(context.Background())
	s.SearchOfficial(context.Background())

	merged := s.Merged()
	require.Len(t, merged, 2)
	assert.Equal(t, local.ID, merged[0].ID, "persisted record wins the dedup")
	assert.Equal(t, "666", merged[1].RPPSNumber)
}

func TestOfficialSearchFailureLeavesResultsEmpty(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store, &fakeDirectory{err: errors.New("registry down")})

	s.SetQuery("x")
	s.SearchOfficial(context.Background())

	state := s.State()
	assert.Empty(t, state.OfficialResults)
	assert.False(t, state.OfficialSearching)
}

func TestStaleResponseDoesNotOverwriteNewerResults(t *testing.T) {
	store := newFakeStore()
	store.results["A"] = []*model.Doctor{persisted("111", "Old")}
	store.results["B"] = []*model.Doctor{persisted("222", "New")}
	hold := make(chan struct{})
	store.release["A"] = hold

	s := newTestSession(store, &fakeDirectory{})

	s.SetQuery("A")
	done := make(chan struct{})
	go func() {
		s.Search(context.Background()) // blocks on hold
		close(done)
	}()

	// User retypes while A is in flight; B's search completes first
	s.SetQuery("B")
	s.Search(context.Background())
	require.Len(t, s.State().Results, 1)
	assert.Equal(t, "222", s.State().Results[0].RPPSNumber)

	close(hold)
	<-done

	state := s.State()
	require.Len(t, state.Results, 1)
	assert.Equal(t, "222", state.Results[0].RPPSNumber, "late A response must be discarded")
	assert.Equal(t, "B", state.LastQuery)
}

func TestClearSearchResetsStateAndDiscardsInFlight(t *testing.T) {
	store := newFakeStore()
	store.results["q"] = []*model.Doctor{persisted("111", "Martin")}
	hold := make(chan struct{})
	store.release["q"] = hold

	s := newTestSession(store, &fakeDirectory{})
	s.SetQuery("q")

	done := make(chan struct{})
	go func() {
		s.Search(context.Background())
		close(done)
	}()

	s.ClearSearch()
	close(hold)
	<-done

	state := s.State()
	assert.Empty(t, state.Query)
	assert.Empty(t, state.Results)
	assert.Empty(t, state.OfficialResults)
	assert.Empty(t, state.Suggestions)
}

func TestSetQuerySameValueKeepsInFlightValid(t *testing.T) {
	store := newFakeStore()
	store.results["q"] = []*model.Doctor{persisted("111", "Martin")}
	s := newTestSession(store, &fakeDirectory{})

	s.SetQuery("q")
	s.SetQuery("q") // no-op, must not invalidate
	s.Search(context.Background())
	assert.Len(t, s.State().Results, 1)
}

package allocation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// memStore is an in-memory Store with copy-on-write transactions: a
// workflow closure runs against a deep copy of the state, and the copy
// replaces the live state only when both the closure and the simulated
// commit succeed.  Failed transactions therefore leave no partial
// mutation behind, matching the contract of the MySQL store.
type memStore struct {
	mu    sync.Mutex
	state memState

	// commitErrs is a queue of errors returned at commit time, one per
	// WithinTx call, to simulate transient conflicts.
	commitErrs []error

	// clock stamps created requests.
	clock time.Time

	// listCalls counts ListResidents hits so cache tests can assert the
	// store was not consulted again.
	listCalls int
}

type memState struct {
	residents map[uint64]model.Resident
	requests  map[uint64]model.AllocationRequest
	hostels   []model.Hostel
	rooms     map[uint64]model.Room
	cursor    int
	nextReqID uint64
	pairings  map[[2]uint64]model.ApprovedPairing
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			residents: map[uint64]model.Resident{},
			requests:  map[uint64]model.AllocationRequest{},
			rooms:     map[uint64]model.Room{},
			cursor:    -1,
			pairings:  map[[2]uint64]model.ApprovedPairing{},
		},
		clock: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memState) clone() memState {
	out := memState{
		residents: make(map[uint64]model.Resident, len(s.residents)),
		requests:  make(map[uint64]model.AllocationRequest, len(s.requests)),
		hostels:   append([]model.Hostel(nil), s.hostels...),
		rooms:     make(map[uint64]model.Room, len(s.rooms)),
		cursor:    s.cursor,
		nextReqID: s.nextReqID,
		pairings:  make(map[[2]uint64]model.ApprovedPairing, len(s.pairings)),
	}
	for k, v := range s.residents {
		out.residents[k] = v
	}
	for k, v := range s.requests {
		out.requests[k] = v
	}
	for k, v := range s.rooms {
		out.rooms[k] = v
	}
	for k, v := range s.pairings {
		out.pairings[k] = v
	}
	return out
}

// Fixture helpers.

func (s *memStore) addResident(r model.Resident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.residents[r.ID] = r
}

func (s *memStore) addHostel(h model.Hostel, rooms ...model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.hostels = append(s.state.hostels, h)
	for _, rm := range rooms {
		rm.HostelID = h.ID
		s.state.rooms[rm.ID] = rm
	}
}

func (s *memStore) addRequest(req model.AllocationRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ID == 0 {
		s.state.nextReqID++
		req.ID = s.state.nextReqID
	} else if req.ID > s.state.nextReqID {
		s.state.nextReqID = req.ID
	}
	s.state.requests[req.ID] = req
}

func (s *memStore) failNextCommits(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErrs = append(s.commitErrs, errs...)
}

func (s *memStore) request(id uint64) model.AllocationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.requests[id]
}

func (s *memStore) room(id uint64) model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.rooms[id]
}

func (s *memStore) cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.cursor
}

func (s *memStore) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.requests)
}

// Store implementation.

func (s *memStore) WithinTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	if err := fn(&memTx{state: &work, clock: s.clock}); err != nil {
		return err
	}
	if len(s.commitErrs) > 0 {
		err := s.commitErrs[0]
		s.commitErrs = s.commitErrs[1:]
		if err != nil {
			return err
		}
	}
	s.state = work
	return nil
}

func (s *memStore) ResidentByID(_ context.Context, id uint64) (*model.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.residents[id]
	if !ok {
		return nil, apperr.NotFound("resident")
	}
	return &r, nil
}

func (s *memStore) ListResidents(_ context.Context, excludeID uint64) ([]model.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]model.Resident, 0, len(s.state.residents))
	for _, r := range s.state.residents {
		if r.ID != excludeID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) StalePending(_ context.Context, olderThan time.Time, limit int) ([]Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := collectCandidates(&s.state, func(req model.AllocationRequest) bool {
		return req.Status == model.RequestPending && req.RoomID == nil && !req.CreatedAt.After(olderThan)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) RecordApprovedPairing(_ context.Context, p *model.ApprovedPairing) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uint64{p.ResidentA, p.ResidentB}
	if _, ok := s.state.pairings[key]; !ok {
		s.state.pairings[key] = *p
	}
	return len(s.state.pairings), nil
}

// memTx implements Tx against a cloned state.

type memTx struct {
	state *memState
	clock time.Time
}

func (t *memTx) ResidentByID(_ context.Context, id uint64) (*model.Resident, error) {
	r, ok := t.state.residents[id]
	if !ok {
		return nil, apperr.NotFound("resident")
	}
	return &r, nil
}

func (t *memTx) ActiveRequest(_ context.Context, residentID uint64, session string) (*model.AllocationRequest, error) {
	for _, req := range t.state.requests {
		if req.ResidentID == residentID && req.Session == session &&
			(req.Status == model.RequestPending || req.Status == model.RequestApproved) {
			out := req
			return &out, nil
		}
	}
	return nil, nil
}

func (t *memTx) CreateRequest(_ context.Context, req *model.AllocationRequest) error {
	t.state.nextReqID++
	req.ID = t.state.nextReqID
	req.CreatedAt = t.clock
	req.UpdatedAt = t.clock
	t.state.requests[req.ID] = *req
	return nil
}

func (t *memTx) RequestByID(_ context.Context, id uint64) (*model.AllocationRequest, error) {
	req, ok := t.state.requests[id]
	if !ok {
		return nil, apperr.NotFound("allocation request")
	}
	out := req
	return &out, nil
}

func (t *memTx) PendingCandidates(_ context.Context, excludeRequestID uint64) ([]Candidate, error) {
	return collectCandidates(t.state, func(req model.AllocationRequest) bool {
		return req.Status == model.RequestPending && req.RoomID == nil && req.ID != excludeRequestID
	}), nil
}

func (t *memTx) HostelsByType(_ context.Context, gender string) ([]model.Hostel, error) {
	out := make([]model.Hostel, 0)
	for _, h := range t.state.hostels {
		if h.Type == gender {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) RoomsByHostel(_ context.Context, hostelID uint64) ([]model.Room, error) {
	out := make([]model.Room, 0)
	for _, rm := range t.state.rooms {
		if rm.HostelID == hostelID {
			out = append(out, rm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) RoomWithHostel(_ context.Context, roomID uint64) (*model.Room, *model.Hostel, error) {
	rm, ok := t.state.rooms[roomID]
	if !ok {
		return nil, nil, apperr.NotFound("room")
	}
	for _, h := range t.state.hostels {
		if h.ID == rm.HostelID {
			room, hostel := rm, h
			return &room, &hostel, nil
		}
	}
	return nil, nil, apperr.NotFound("hostel")
}

func (t *memTx) FairnessCursor(_ context.Context) (int, error) { return t.state.cursor, nil }

func (t *memTx) SetFairnessCursor(_ context.Context, index int) error {
	t.state.cursor = index
	return nil
}

func (t *memTx) UpdateRequest(_ context.Context, req *model.AllocationRequest) error {
	if _, ok := t.state.requests[req.ID]; !ok {
		return apperr.NotFound("allocation request")
	}
	t.state.requests[req.ID] = *req
	return nil
}

func (t *memTx) AddOccupied(_ context.Context, roomID uint64, delta int) error {
	rm, ok := t.state.rooms[roomID]
	if !ok {
		return apperr.NotFound("room")
	}
	rm.Occupied += delta
	if rm.Occupied < 0 {
		rm.Occupied = 0
	}
	t.state.rooms[roomID] = rm
	return nil
}

func (t *memTx) ApprovedByRoom(_ context.Context, roomID, excludeRequestID uint64) ([]Candidate, error) {
	return collectCandidates(t.state, func(req model.AllocationRequest) bool {
		return req.Status == model.RequestApproved && req.RoomID != nil &&
			*req.RoomID == roomID && req.ID != excludeRequestID
	}), nil
}

func collectCandidates(state *memState, keep func(model.AllocationRequest) bool) []Candidate {
	out := make([]Candidate, 0)
	for _, req := range state.requests {
		if !keep(req) {
			continue
		}
		out = append(out, Candidate{Request: req, Resident: state.residents[req.ResidentID]})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Request, out[j].Request
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out
}

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"taskhive-be/internal/entities"
	"taskhive-be/internal/repository"
)

// In-memory fakes backing the service tests. A single memStore is shared
// across the repository fakes so joins behave like the real schema.

type memStore struct {
	seq    int
	users  map[string]*entities.User
	lists  map[string]*entities.List
	shares map[string][]entities.ShareEntry // by list id
	tasks  map[string][]*entities.Task      // by list id, in order
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]*entities.User),
		lists:  make(map[string]*entities.List),
		shares: make(map[string][]entities.ShareEntry),
		tasks:  make(map[string][]*entities.Task),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) Create(_ context.Context, email, firstName, lastName string, passwordHash, googleID *string) (*entities.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	user := &entities.User{
		ID:           r.store.nextID("user"),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		GoogleID:     googleID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.store.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	if u, ok := r.store.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*entities.User, error) {
	for _, u := range r.store.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) LinkGoogleID(_ context.Context, userID, googleID string) error {
	u, ok := r.store.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.GoogleID = &googleID
	return nil
}

func (r *fakeUserRepo) SetResetOTP(_ context.Context, userID, otp string, expiresAt time.Time) error {
	u, ok := r.store.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetOTP = &otp
	u.ResetOTPExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) ClearResetOTP(_ context.Context, userID string) error {
	u, ok := r.store.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetOTP = nil
	u.ResetOTPExpiresAt = nil
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := r.store.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = &passwordHash
	return nil
}

type fakeListRepo struct{ store *memStore }

func (r *fakeListRepo) Create(_ context.Context, title, ownerID string) (*entities.List, error) {
	list := &entities.List{
		ID:        r.store.nextID("list"),
		Title:     title,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
	r.store.lists[list.ID] = list
	return list, nil
}

func (r *fakeListRepo) FindByID(_ context.Context, id string) (*entities.List, error) {
	if l, ok := r.store.lists[id]; ok {
		return l, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeListRepo) FindIDsForUser(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for id, l := range r.store.lists {
		if l.OwnerID == userID {
			ids = append(ids, id)
			continue
		}
		for _, s := range r.store.shares[id] {
			if s.UserID == userID {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeListRepo) FindShares(_ context.Context, listID string) ([]entities.ShareEntry, error) {
	return r.store.shares[listID], nil
}

func (r *fakeListRepo) FindSharesWithUsers(_ context.Context, listID string) ([]repository.ShareWithUser, error) {
	var shares []repository.ShareWithUser
	for _, s := range r.store.shares[listID] {
		u, ok := r.store.users[s.UserID]
		if !ok {
			continue
		}
		shares = append(shares, repository.ShareWithUser{User: *u, Access: s.Access})
	}
	return shares, nil
}

func (r *fakeListRepo) UpdateTitle(_ context.Context, listID, title string) error {
	l, ok := r.store.lists[listID]
	if !ok {
		return repository.ErrNotFound
	}
	l.Title = title
	return nil
}

func (r *fakeListRepo) Delete(_ context.Context, listID, ownerID string) error {
	l, ok := r.store.lists[listID]
	if !ok || l.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.store.lists, listID)
	delete(r.store.shares, listID)
	delete(r.store.tasks, listID)
	return nil
}

func (r *fakeListRepo) UpsertShare(_ context.Context, listID, userID, access string) error {
	shares := r.store.shares[listID]
	for i, s := range shares {
		if s.UserID == userID {
			shares[i].Access = access
			return nil
		}
	}
	r.store.shares[listID] = append(shares, entities.ShareEntry{
		ListID: listID,
		UserID: userID,
		Access: access,
	})
	return nil
}

func (r *fakeListRepo) RemoveShare(_ context.Context, listID, userID string) error {
	shares := r.store.shares[listID]
	kept := shares[:0]
	for _, s := range shares {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	r.store.shares[listID] = kept
	return nil
}

type fakeTaskRepo struct{ store *memStore }

func (r *fakeTaskRepo) Create(_ context.Context, listID, name, status, priority string) (*entities.Task, error) {
	task := &entities.Task{
		ID:        r.store.nextID("task"),
		ListID:    listID,
		Name:      name,
		Status:    status,
		Priority:  priority,
		Position:  len(r.store.tasks[listID]),
		CreatedAt: time.Now(),
	}
	r.store.tasks[listID] = append(r.store.tasks[listID], task)
	return task, nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, listID, id string) (*entities.Task, error) {
	for _, t := range r.store.tasks[listID] {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTaskRepo) FindByListID(_ context.Context, listID string) ([]*entities.Task, error) {
	return r.store.tasks[listID], nil
}

func (r *fakeTaskRepo) Update(_ context.Context, listID, id string, name, status, priority *string) (*entities.Task, error) {
	for _, t := range r.store.tasks[listID] {
		if t.ID != id {
			continue
		}
		if name != nil {
			t.Name = *name
		}
		if status != nil {
			t.Status = *status
		}
		if priority != nil {
			t.Priority = *priority
		}
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTaskRepo) Delete(_ context.Context, listID, id string) error {
	tasks := r.store.tasks[listID]
	for i, t := range tasks {
		if t.ID == id {
			r.store.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeBroadcaster records every emitted event in order

type emitted struct {
	Room    string // "list:<id>" or "user:<id>"
	Event   string
	Payload interface{}
}

type fakeBroadcaster struct {
	events []emitted
}

func (b *fakeBroadcaster) ToList(listID, event string, payload interface{}) {
	b.events = append(b.events, emitted{Room: "list:" + listID, Event: event, Payload: payload})
}

func (b *fakeBroadcaster) ToUser(userID, event string, payload interface{}) {
	b.events = append(b.events, emitted{Room: "user:" + userID, Event: event, Payload: payload})
}

func (b *fakeBroadcaster) forRoom(room string) []emitted {
	var out []emitted
	for _, e := range b.events {
		if e.Room == room {
			out = append(out, e)
		}
	}
	return out
}

func (b *fakeBroadcaster) reset() { b.events = nil }

type fakeMailer struct {
	sent []string // "email:otp"
	fail bool
}

func (m *fakeMailer) SendPasswordResetOTP(email, otp string) error {
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, email+":"+otp)
	return nil
}

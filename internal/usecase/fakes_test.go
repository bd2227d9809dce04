package usecase

import (
	"context"
	"sync"
	"time"

	"dhruvtara/internal/domain/assessment"
	"dhruvtara/internal/domain/user"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu       sync.Mutex
	users    map[uuid.UUID]user.User
	profiles map[uuid.UUID]user.Profile
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uuid.UUID]user.User{}, profiles: map[uuid.UUID]user.Profile{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, u user.User, p user.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	f.profiles[u.ID] = p
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) lookup(match func(user.User) bool) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	return f.lookup(func(u user.User) bool { return u.Email == email })
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	return f.lookup(func(u user.User) bool { return u.Username == username })
}

func (f *fakeUsers) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return user.Profile{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetUserByUsername(ctx, username)
	return err == nil, nil
}

type fakeAssessments struct {
	mu      sync.Mutex
	records map[uuid.UUID]assessment.Record
	reads   int
	err     error
}

func newFakeAssessments() *fakeAssessments {
	return &fakeAssessments{records: map[uuid.UUID]assessment.Record{}}
}

func (f *fakeAssessments) Create(_ context.Context, r assessment.Record) (assessment.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return assessment.Record{}, f.err
	}
	if _, ok := f.records[r.UserID]; ok {
		return assessment.Record{}, assessment.ErrAlreadyAssessed
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	f.records[r.UserID] = r
	return r, nil
}

func (f *fakeAssessments) GetByUserID(_ context.Context, userID uuid.UUID) (assessment.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return assessment.Record{}, f.err
	}
	if r, ok := f.records[userID]; ok {
		return r, nil
	}
	return assessment.Record{}, assessment.ErrNotFound
}

type memoryStore struct {
	mu   sync.Mutex
	data map[string]any
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]any{}}
}

func (m *memoryStore) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

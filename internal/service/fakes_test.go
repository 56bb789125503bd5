package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/repository"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]model.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) delete(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			delete(f.users, id)
		}
	}
}

// fakeSnapshots serves fixed dashboard and analytics data.
type fakeSnapshots struct {
	alerts   []model.Alert
	metrics  []model.Metric
	statuses []model.SystemStatus
	activity []model.NetworkActivity
	threats  []model.Threat
	err      error

	lastLimit int
}

var errStoreDown = errors.New("store down")

func (f *fakeSnapshots) RecentAlerts(_ context.Context, limit int) ([]model.Alert, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return head(f.alerts, limit), nil
}

func (f *fakeSnapshots) RecentMetrics(_ context.Context, limit int) ([]model.Metric, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return head(f.metrics, limit), nil
}

func (f *fakeSnapshots) ListStatuses(context.Context) ([]model.SystemStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.statuses, nil
}

func (f *fakeSnapshots) RecentActivity(_ context.Context, limit int) ([]model.NetworkActivity, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return head(f.activity, limit), nil
}

func (f *fakeSnapshots) RecentThreats(_ context.Context, limit int) ([]model.Threat, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return head(f.threats, limit), nil
}

func (f *fakeSnapshots) AllThreats(context.Context) ([]model.Threat, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.threats, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

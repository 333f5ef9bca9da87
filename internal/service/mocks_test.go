package service

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// MockUserStore mocks the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// MockDomainStore mocks the store.DomainStore interface
type MockDomainStore struct {
	mock.Mock
}

func (m *MockDomainStore) Create(ctx context.Context, d *domain.Domain) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDomainStore) Update(ctx context.Context, d *domain.Domain) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDomainStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockDomainStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Domain, error) {
	args := m.Called(ctx, userID, id)
	d, _ := args.Get(0).(*domain.Domain)
	return d, args.Error(1)
}

func (m *MockDomainStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Domain, error) {
	args := m.Called(ctx, userID)
	ds, _ := args.Get(0).([]*domain.Domain)
	return ds, args.Error(1)
}

func (m *MockDomainStore) WithTx(tx *sql.Tx) store.DomainStore {
	return m
}

// MockSubDomainStore mocks the store.SubDomainStore interface
type MockSubDomainStore struct {
	mock.Mock
}

func (m *MockSubDomainStore) Create(ctx context.Context, sd *domain.SubDomain) error {
	args := m.Called(ctx, sd)
	return args.Error(0)
}

func (m *MockSubDomainStore) CreateMany(ctx context.Context, sds []*domain.SubDomain) error {
	args := m.Called(ctx, sds)
	return args.Error(0)
}

func (m *MockSubDomainStore) Update(ctx context.Context, userID uuid.UUID, sd *domain.SubDomain) error {
	args := m.Called(ctx, userID, sd)
	return args.Error(0)
}

func (m *MockSubDomainStore) UpdateMany(ctx context.Context, userID uuid.UUID, sds []*domain.SubDomain) error {
	args := m.Called(ctx, userID, sds)
	return args.Error(0)
}

func (m *MockSubDomainStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockSubDomainStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SubDomain, error) {
	args := m.Called(ctx, userID, id)
	sd, _ := args.Get(0).(*domain.SubDomain)
	return sd, args.Error(1)
}

func (m *MockSubDomainStore) ListByDomainID(ctx context.Context, userID, domainID uuid.UUID) ([]*domain.SubDomain, error) {
	args := m.Called(ctx, userID, domainID)
	sds, _ := args.Get(0).([]*domain.SubDomain)
	return sds, args.Error(1)
}

func (m *MockSubDomainStore) WithTx(tx *sql.Tx) store.SubDomainStore {
	return m
}

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskStore) Update(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, userID, id)
	t, _ := args.Get(0).(*domain.Task)
	return t, args.Error(1)
}

func (m *MockTaskStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	ts, _ := args.Get(0).([]*domain.Task)
	return ts, args.Error(1)
}

func (m *MockTaskStore) ListByDomainID(ctx context.Context, userID, domainID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, domainID)
	ts, _ := args.Get(0).([]*domain.Task)
	return ts, args.Error(1)
}

func (m *MockTaskStore) ListBySubDomainID(ctx context.Context, userID, subDomainID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, subDomainID)
	ts, _ := args.Get(0).([]*domain.Task)
	return ts, args.Error(1)
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// MockSessionStore mocks the store.SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Update(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) UpdateMany(ctx context.Context, userID uuid.UUID, sessions []*domain.Session) error {
	args := m.Called(ctx, userID, sessions)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockSessionStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, userID, id)
	s, _ := args.Get(0).(*domain.Session)
	return s, args.Error(1)
}

func (m *MockSessionStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	args := m.Called(ctx, userID)
	ss, _ := args.Get(0).([]*domain.Session)
	return ss, args.Error(1)
}

func (m *MockSessionStore) ListByTaskID(ctx context.Context, userID, taskID uuid.UUID) ([]*domain.Session, error) {
	args := m.Called(ctx, userID, taskID)
	ss, _ := args.Get(0).([]*domain.Session)
	return ss, args.Error(1)
}

func (m *MockSessionStore) ListBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Session, error) {
	args := m.Called(ctx, userID, start, end)
	ss, _ := args.Get(0).([]*domain.Session)
	return ss, args.Error(1)
}

func (m *MockSessionStore) FindOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Session, error) {
	args := m.Called(ctx, userID, start, end)
	ss, _ := args.Get(0).([]*domain.Session)
	return ss, args.Error(1)
}

func (m *MockSessionStore) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.ActiveSession, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*domain.ActiveSession)
	return a, args.Error(1)
}

func (m *MockSessionStore) CreateActive(ctx context.Context, a *domain.ActiveSession) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteActive(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return m
}

// countingMetrics is a SessionMetrics that just counts calls.
type countingMetrics struct {
	created  atomic.Int64
	rejected atomic.Int64
}

func (c *countingMetrics) RecordSessionCreated()   { c.created.Add(1) }
func (c *countingMetrics) RecordOverlapRejection() { c.rejected.Add(1) }

// fakeHasher is a deterministic PasswordHasher for tests.
type fakeHasher struct {
	err error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + password, nil
}

// fakeVerifier accepts passwords hashed by fakeHasher.
type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Compare(hashedPassword, password string) error {
	if f.err != nil {
		return f.err
	}
	if hashedPassword != "hashed:"+password {
		return errPasswordMismatch
	}
	return nil
}

var errPasswordMismatch = errors.New("password mismatch")

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"licensing-system/internal/entities"
	"licensing-system/internal/repositories"
	apperrors "licensing-system/pkg/errors"
	"licensing-system/pkg/types"
)

// memStore backs the in-memory repositories. fakeTxManager snapshots it and restores the
// snapshot when the transaction function fails.
type memStore struct {
	mu        sync.Mutex
	requests  map[uuid.UUID]entities.Request
	logs      []entities.ActionLog
	seq       map[string]int64
	users     map[uuid.UUID]entities.User
	provinces map[int]entities.Province
	feeTypes  []entities.FeeType

	lastScope sq.Sqlizer
}

func newMemStore() *memStore {
	return &memStore{
		requests: map[uuid.UUID]entities.Request{},
		seq:      map[string]int64{},
		users:    map[uuid.UUID]entities.User{},
		provinces: map[int]entities.Province{
			1: {ID: 1, Name: "الأمانة", Code: "AMN"},
			2: {ID: 2, Name: "صنعاء", Code: "SNA"},
		},
	}
}

type storeSnapshot struct {
	requests map[uuid.UUID]entities.Request
	logs     []entities.ActionLog
	seq      map[string]int64
}

func (s *memStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		requests: make(map[uuid.UUID]entities.Request, len(s.requests)),
		logs:     append([]entities.ActionLog(nil), s.logs...),
		seq:      make(map[string]int64, len(s.seq)),
	}
	for k, v := range s.requests {
		snap.requests[k] = v
	}
	for k, v := range s.seq {
		snap.seq[k] = v
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = snap.requests
	s.logs = snap.logs
	s.seq = snap.seq
}

func (s *memStore) logsFor(requestID uuid.UUID) []entities.ActionLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.ActionLog
	for _, l := range s.logs {
		if l.RequestID == requestID {
			out = append(out, l)
		}
	}
	return out
}

func (s *memStore) request(id uuid.UUID) entities.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id]
}

// --- tx manager ---

type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// --- requests ---

type fakeRequestRepo struct{ store *memStore }

func (r *fakeRequestRepo) CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.Request) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.requests {
		if existing.RequestNumber == req.RequestNumber {
			return fmt.Errorf("%w: request number %s", apperrors.ErrConflict, req.RequestNumber)
		}
	}
	r.store.requests[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.RequestDetails, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return r.details(req), nil
}

func (r *fakeRequestRepo) details(req entities.Request) *entities.RequestDetails {
	submitter := r.store.users[req.UserID]
	province := r.store.provinces[req.ProvinceID]
	return &entities.RequestDetails{
		Request:        req,
		SubmitterName:  submitter.Name,
		SubmitterEmail: submitter.Email,
		ProvinceName:   province.Name,
		ProvinceCode:   province.Code,
	}
}

func (r *fakeRequestRepo) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &req, nil
}

func (r *fakeRequestRepo) UpdateStateInTx(ctx context.Context, tx pgx.Tx, req *entities.Request) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.requests[req.ID]; !ok {
		return apperrors.ErrNotFound
	}
	if req.LicenseNumber.Valid {
		for id, existing := range r.store.requests {
			if id != req.ID && existing.LicenseNumber.Valid && existing.LicenseNumber.String == req.LicenseNumber.String {
				return fmt.Errorf("%w: license number %s", apperrors.ErrConflict, req.LicenseNumber.String)
			}
		}
	}
	r.store.requests[req.ID] = *req
	return nil
}

// GetRequests records the scope and returns every stored request, newest first.
func (r *fakeRequestRepo) GetRequests(ctx context.Context, scope sq.Sqlizer, filter types.Filter) ([]entities.RequestDetails, uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.lastScope = scope
	out := make([]entities.RequestDetails, 0, len(r.store.requests))
	for _, req := range r.store.requests {
		out = append(out, *r.details(req))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, uint64(len(out)), nil
}

type fakeSequenceRepo struct{ store *memStore }

func (r *fakeSequenceRepo) NextInTx(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq[name]++
	return r.store.seq[name], nil
}

// --- action logs ---

type fakeActionLogRepo struct{ store *memStore }

func (r *fakeActionLogRepo) CreateInTx(ctx context.Context, tx pgx.Tx, log *entities.ActionLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	log.ID = uuid.New()
	r.store.logs = append(r.store.logs, *log)
	return nil
}

func (r *fakeActionLogRepo) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]entities.ActionLogView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []entities.ActionLogView{}
	for i := len(r.store.logs) - 1; i >= 0; i-- {
		l := r.store.logs[i]
		if l.RequestID != requestID {
			continue
		}
		user := r.store.users[l.UserID]
		out = append(out, entities.ActionLogView{ActionLog: l, UserName: user.Name, UserRole: user.Role})
	}
	return out, nil
}

// --- reference data ---

type fakeReferenceRepo struct{ store *memStore }

func (r *fakeReferenceRepo) GetProvinces(ctx context.Context) ([]entities.Province, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entities.Province, 0, len(r.store.provinces))
	for _, p := range r.store.provinces {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReferenceRepo) FindProvince(ctx context.Context, id int) (*entities.Province, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.provinces[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *fakeReferenceRepo) GetFeeTypes(ctx context.Context, onlyActive bool) ([]entities.FeeType, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []entities.FeeType{}
	for _, f := range r.store.feeTypes {
		if onlyActive && !f.IsActive {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// --- users ---

type fakeUserRepo struct {
	store   *memStore
	lookups int
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrEmailTaken
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.lookups++
	u, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entities.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		out = append(out, u)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entities.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	for id, u := range r.store.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrEmailTaken
		}
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = false
	r.store.users[id] = u
	return nil
}

// --- cache ---

type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failAll error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return c.failAll
	}
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		c.data[key] = fmt.Sprint(v)
	}
	c.ttls[key] = expiration
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return "", c.failAll
	}
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return c.failAll
	}
	for _, k := range keys {
		delete(c.data, k)
		delete(c.ttls, k)
	}
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return 0, c.failAll
	}
	var n int64
	if v, ok := c.data[key]; ok {
		fmt.Sscan(v, &n)
	}
	n++
	c.data[key] = fmt.Sprint(n)
	return n, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return false, c.failAll
	}
	if _, ok := c.data[key]; !ok {
		return false, nil
	}
	c.ttls[key] = expiration
	return true, nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

var (
	_ repositories.TxManagerInterface                 = (*fakeTxManager)(nil)
	_ repositories.RequestRepositoryInterface         = (*fakeRequestRepo)(nil)
	_ repositories.RequestSequenceRepositoryInterface = (*fakeSequenceRepo)(nil)
	_ repositories.ActionLogRepositoryInterface       = (*fakeActionLogRepo)(nil)
	_ repositories.ReferenceRepositoryInterface       = (*fakeReferenceRepo)(nil)
	_ repositories.UserRepositoryInterface            = (*fakeUserRepo)(nil)
	_ repositories.CacheRepositoryInterface           = (*fakeCache)(nil)
)

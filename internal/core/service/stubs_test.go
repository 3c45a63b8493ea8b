package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	err    error // if set, every lookup returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	clone.ID = r.nextID
	r.nextID++
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubEmployeeRepo struct {
	rows   map[int64]*domain.Employee
	nextID int64

	creates  int
	updates  int
	lastList struct{ limit, offset int }
	failWith error // if set, mutating calls return this error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{rows: make(map[int64]*domain.Employee), nextID: 1}
}

func (r *stubEmployeeRepo) seed(e domain.Employee) *domain.Employee {
	e.ID = r.nextID
	r.nextID++
	r.rows[e.ID] = &e
	clone := e
	return &clone
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.creates++
	return r.seed(*e), nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if _, ok := r.rows[e.ID]; !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	r.updates++
	clone := *e
	r.rows[e.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.FindByID(ctx, id)
}

func (r *stubEmployeeRepo) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, e := range r.rows {
		if e.Email == email && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubEmployeeRepo) matching(f ports.EmployeeFilter) []*domain.Employee {
	var out []*domain.Employee
	for _, e := range r.rows {
		if f.Department != "" && (e.Department == nil || *e.Department != f.Department) {
			continue
		}
		if f.Role != "" && (e.Role == nil || *e.Role != f.Role) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubEmployeeRepo) Count(_ context.Context, f ports.EmployeeFilter) (int64, error) {
	return int64(len(r.matching(f))), nil
}

func (r *stubEmployeeRepo) List(_ context.Context, f ports.EmployeeFilter, limit, offset int) ([]*domain.Employee, error) {
	r.lastList.limit, r.lastList.offset = limit, offset
	all := r.matching(f)
	if offset >= len(all) {
		return []*domain.Employee{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// ---------------------------------------------------------------------------
// Transaction, audit and clock stubs
// ---------------------------------------------------------------------------

type countingTx struct {
	readOnly, readWrite int
}

func (t *countingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	t.readOnly++
	return fn(ctx)
}

func (t *countingTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	t.readWrite++
	return fn(ctx)
}

type recordingAudit struct {
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(e domain.AuditEvent) { a.events = append(a.events, e) }

type stubRevocations struct {
	revoked map[string]time.Duration
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Duration)}
}

func (s *stubRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[id] = ttl
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[id]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type fakeClock struct{ now time.Time }

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func strPtr(s string) *string { return &s }

func adminUser() *domain.User {
	return &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}
}

func plainUser() *domain.User {
	return &domain.User{ID: 2, Username: "bob", Role: domain.RoleUser}
}

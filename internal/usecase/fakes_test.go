package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"hirehub/internal/data/entity"
	"hirehub/internal/data/repository"
	"hirehub/pkg/mailer"
	"hirehub/pkg/metrics"
	"hirehub/pkg/social"
	"hirehub/pkg/token"
	"hirehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore backs the in-memory repositories used by the service tests.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	profiles map[uuid.UUID]entity.Profile
	sessions map[uuid.UUID]*entity.Session
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]*entity.User{},
		profiles: map[uuid.UUID]entity.Profile{},
		sessions: map[uuid.UUID]*entity.Session{},
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:    &memUsers{m},
		Profile: &memProfiles{m},
		Session: &memSessions{m},
	}
}

func (m *memStore) user(id uuid.UUID) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

func (m *memStore) profile(userID uuid.UUID) entity.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyProfile(m.profiles[userID])
}

func copyProfile(p entity.Profile) entity.Profile {
	switch p.Kind {
	case entity.CustomerKind:
		cp := *p.Customer
		return entity.NewCustomerProfile(&cp)
	case entity.ProviderKind:
		cp := *p.Provider
		return entity.NewProviderProfile(&cp)
	}
	return entity.Profile{}
}

type memUsers struct{ m *memStore }

func (r *memUsers) Create(ctx context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.Username != nil && user.Username != nil && *u.Username == *user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	cp := *user
	r.m.users[user.ID] = &cp
	return nil
}

func (r *memUsers) find(match func(*entity.User) bool) *entity.User {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.m.user(id), nil
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *memUsers) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username != nil && *u.Username == username }), nil
}

func (r *memUsers) providers(status entity.ApprovalStatus) []*entity.User {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.User
	for _, u := range r.m.users {
		if u.Role == entity.RoleProvider && u.Status == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memUsers) FindProviders(ctx context.Context, status entity.ApprovalStatus, limit, offset int) ([]*entity.User, error) {
	all := r.providers(status)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memUsers) CountProviders(ctx context.Context, status entity.ApprovalStatus) (int64, error) {
	return int64(len(r.providers(status))), nil
}

func (r *memUsers) update(id uuid.UUID, fn func(*entity.User)) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(u)
	return nil
}

func (r *memUsers) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.update(id, func(u *entity.User) { u.IsVerified = true })
}

func (r *memUsers) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(id, func(u *entity.User) { u.PasswordHash = passwordHash })
}

func (r *memUsers) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) error {
	return r.update(id, func(u *entity.User) { u.Status = status })
}

func (r *memUsers) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(id, func(u *entity.User) { u.LastLoginAt = &at })
}

type memProfiles struct{ m *memStore }

func profileOwner(p entity.Profile) uuid.UUID {
	if p.Kind == entity.CustomerKind {
		return p.Customer.UserID
	}
	return p.Provider.UserID
}

func (r *memProfiles) Create(ctx context.Context, profile entity.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.profiles[profileOwner(profile)] = copyProfile(profile)
	return nil
}

func (r *memProfiles) FindByUser(ctx context.Context, userID uuid.UUID, role entity.UserRole) (entity.Profile, error) {
	p := r.m.profile(userID)
	if !p.Matches(role) {
		return entity.Profile{}, nil
	}
	return p, nil
}

func (r *memProfiles) Update(ctx context.Context, profile entity.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	owner := profileOwner(profile)
	if _, ok := r.m.profiles[owner]; !ok {
		return repository.ErrNotFound
	}
	r.m.profiles[owner] = copyProfile(profile)
	return nil
}

type memSessions struct{ m *memStore }

func (r *memSessions) Create(ctx context.Context, session *entity.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *session
	r.m.sessions[session.Token] = &cp
	return nil
}

func (r *memSessions) FindValidSession(ctx context.Context, tok uuid.UUID) (*entity.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[tok]
	if !ok || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSessions) Revoke(ctx context.Context, tok uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[tok]
	if !ok || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return repository.ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *memSessions) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := time.Now()
	for _, s := range r.m.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *memSessions) CleanExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

// recordingMailer keeps every message; fail makes Send return an error after recording.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail bool
}

func (r *recordingMailer) Send(ctx context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	if r.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (r *recordingMailer) last() mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return mailer.Message{}
	}
	return r.sent[len(r.sent)-1]
}

func (r *recordingMailer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type fakeProvider struct {
	name    string
	profile *social.Profile
	err     error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) UserInfo(ctx context.Context, accessToken string) (*social.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.profile
	p.Provider = f.name
	return &p, nil
}

type harness struct {
	svc    *Service
	store  *memStore
	mail   *recordingMailer
	tokens *token.Manager
	google *fakeProvider
	config *utils.Config
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{BaseURL: "http://api.test", AppScheme: "myapp"},
		JWT: utils.JWTConfig{
			Secret:     "unit-test-secret",
			Issuer:     "hirehub",
			AccessTTL:  time.Hour,
			RefreshTTL: 7 * 24 * time.Hour,
			VerifyTTL:  time.Hour,
			ResetTTL:   72 * time.Hour,
			BcryptCost: 4,
		},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	config := testConfig()
	store := newMemStore()
	mail := &recordingMailer{}
	tokens := token.NewManager(config.JWT)
	google := &fakeProvider{name: "google"}

	svc := NewService(Deps{
		Repo:      store.repository(),
		Tokens:    tokens,
		Mailer:    mail,
		Providers: map[string]social.Provider{"google": google},
		Metrics:   metrics.New(),
		Config:    config,
		Log:       zap.NewNop(),
	})

	return &harness{svc: svc, store: store, mail: mail, tokens: tokens, google: google, config: config}
}

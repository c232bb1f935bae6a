package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/urbavisu/urbavisu-api/internal/domain/admin"
	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/creditpack"
	"github.com/urbavisu/urbavisu-api/internal/domain/order"
	"github.com/urbavisu/urbavisu-api/internal/domain/tool"
	"github.com/urbavisu/urbavisu-api/internal/domain/translation"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
)

// Store is an in-memory stand-in for Postgres. WithinTx runs one unit of work
// at a time and restores the previous state when it fails. Units of work
// must not nest.
type Store struct {
	txMu sync.Mutex

	mu           sync.Mutex
	users        map[uuid.UUID]user.User
	entries      []credit.Entry
	orders       []order.Order
	tools        map[uuid.UUID]tool.Tool
	packs        map[uuid.UUID]creditpack.Pack
	translations map[uuid.UUID]translation.Translation
	routes       []admin.Route

	calls    int
	writes   int
	failures map[string]error
	clock    time.Time
}

var _ database.Transactor = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]user.User),
		tools:        make(map[uuid.UUID]tool.Tool),
		packs:        make(map[uuid.UUID]creditpack.Pack),
		translations: make(map[uuid.UUID]translation.Translation),
		failures:     make(map[string]error),
		clock:        time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

type snapshot struct {
	users        map[uuid.UUID]user.User
	entries      []credit.Entry
	orders       []order.Order
	tools        map[uuid.UUID]tool.Tool
	packs        map[uuid.UUID]creditpack.Pack
	translations map[uuid.UUID]translation.Translation
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:        copyMap(s.users),
		entries:      append([]credit.Entry(nil), s.entries...),
		orders:       append([]order.Order(nil), s.orders...),
		tools:        copyMap(s.tools),
		packs:        copyMap(s.packs),
		translations: copyMap(s.translations),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.entries = snap.entries
	s.orders = snap.orders
	s.tools = snap.tools
	s.packs = snap.packs
	s.translations = snap.translations
}

// WithinTx passes a nil *sqlx.Tx to fn; the in-memory repositories ignore it.
func (s *Store) WithinTx(ctx context.Context, fn database.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx, nil); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// FailOn makes the named operation return err until cleared with a nil err.
// Operation names are "<repo>.<method>", e.g. "credit.insert".
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Calls counts every repository operation, reads included.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Writes counts every mutating repository operation that was attempted.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// enter records a call and returns the injected failure for op. Callers hold mu.
func (s *Store) enter(op string, write bool) error {
	s.calls++
	if write {
		s.writes++
	}
	return s.failures[op]
}

// tick returns a strictly increasing timestamp. Callers hold mu.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// AddUser seeds a user, filling ID, email, role and status when empty. The
// balance is stored as given without a ledger entry.
func (s *Store) AddUser(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Email == "" {
		u.Email = "user-" + u.ID.String()[:8] + "@example.ch"
	}
	if u.Role == "" {
		u.Role = user.RoleClient
	}
	if u.Status == "" {
		u.SetStatus(user.StatusApproved)
	}
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	return u
}

// User returns the stored copy of a user.
func (s *Store) User(id uuid.UUID) (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// Entries returns the ledger entries of a user in insertion order.
func (s *Store) Entries(userID uuid.UUID) []credit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []credit.Entry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// AllOrders returns every stored order in insertion order.
func (s *Store) AllOrders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]order.Order(nil), s.orders...)
}

func (s *Store) AddTool(t tool.Tool) tool.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = s.tick()
	t.UpdatedAt = t.CreatedAt
	s.tools[t.ID] = t
	return t
}

func (s *Store) AddPack(p creditpack.Pack) creditpack.Pack {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	s.packs[p.ID] = p
	return p
}

func (s *Store) AddRoute(r admin.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.routes = append(s.routes, r)
}

func (s *Store) Users() user.Repository               { return userRepo{s} }
func (s *Store) Credits() credit.Repository           { return creditRepo{s} }
func (s *Store) Orders() order.Repository             { return orderRepo{s} }
func (s *Store) Tools() tool.Repository               { return toolRepo{s} }
func (s *Store) Packs() creditpack.Repository         { return packRepo{s} }
func (s *Store) Translations() translation.Repository { return translationRepo{s} }
func (s *Store) Routes() admin.RouteRepository        { return routeRepo{s} }

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *user.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("user.create", true); err != nil {
		return err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (r userRepo) get(op string, id uuid.UUID) (*user.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(op, false); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.get("user.get_by_id", id)
}

func (r userRepo) GetForUpdate(_ context.Context, _ *sqlx.Tx, id uuid.UUID) (*user.User, error) {
	return r.get("user.get_for_update", id)
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("user.get_by_email", false); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r userRepo) update(op string, u *user.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(op, true); err != nil {
		return err
	}
	stored, ok := s.users[u.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	stored.FirstName, stored.LastName = u.FirstName, u.LastName
	stored.Company, stored.Address, stored.Phone = u.Company, u.Address, u.Phone
	stored.Role, stored.Status, stored.Validated = u.Role, u.Status, u.Validated
	stored.WelcomeBonusGranted = u.WelcomeBonusGranted
	stored.UpdatedAt = s.tick()
	s.users[u.ID] = stored
	u.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r userRepo) Update(_ context.Context, u *user.User) error {
	return r.update("user.update", u)
}

func (r userRepo) UpdateTx(_ context.Context, _ *sqlx.Tx, u *user.User) error {
	return r.update("user.update", u)
}

func (r userRepo) List(_ context.Context, filter user.ListFilter) ([]*user.User, int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("user.list", false); err != nil {
		return nil, 0, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]*user.User, 0)
	for _, u := range s.users {
		if filter.Status != nil && u.Status != *filter.Status {
			continue
		}
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if search != "" {
			hay := strings.ToLower(u.Email + " " + u.FirstName + " " + u.LastName + " " + u.Company)
			if !strings.Contains(hay, search) {
				continue
			}
		}
		u := u
		matched = append(matched, &u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	return paginate(matched, limit, filter.Offset), len(matched), nil
}

func (r userRepo) Count(_ context.Context, status *user.Status) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("user.count", false); err != nil {
		return 0, err
	}
	n := 0
	for _, u := range s.users {
		if status == nil || u.Status == *status {
			n++
		}
	}
	return n, nil
}

type creditRepo struct{ s *Store }

func (r creditRepo) LockBalance(_ context.Context, _ *sqlx.Tx, userID uuid.UUID) (int, error) {
	return r.balance("credit.lock_balance", userID)
}

func (r creditRepo) GetBalance(_ context.Context, userID uuid.UUID) (int, error) {
	return r.balance("credit.get_balance", userID)
}

func (r creditRepo) balance(op string, userID uuid.UUID) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(op, false); err != nil {
		return 0, err
	}
	u, ok := s.users[userID]
	if !ok {
		return 0, credit.ErrUserNotFound
	}
	return u.Credits, nil
}

func (r creditRepo) SetBalance(_ context.Context, _ *sqlx.Tx, userID uuid.UUID, balance int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("credit.set_balance", true); err != nil {
		return err
	}
	if balance < 0 {
		return fmt.Errorf("%w: users_credits_check", credit.ErrInternal)
	}
	u, ok := s.users[userID]
	if !ok {
		return credit.ErrUserNotFound
	}
	u.Credits = balance
	u.UpdatedAt = s.tick()
	s.users[userID] = u
	return nil
}

func (r creditRepo) Insert(_ context.Context, _ *sqlx.Tx, e *credit.Entry) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("credit.insert", true); err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = s.tick()
	s.entries = append(s.entries, *e)
	return nil
}

func (r creditRepo) ListByUser(_ context.Context, userID uuid.UUID, page credit.Pagination) ([]credit.Entry, int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("credit.list_by_user", false); err != nil {
		return nil, 0, err
	}
	page = page.Normalize()
	matched := make([]credit.Entry, 0)
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID == userID {
			matched = append(matched, s.entries[i])
		}
	}
	return paginate(matched, page.Limit, page.Offset), len(matched), nil
}

func (r creditRepo) SumByUser(_ context.Context, userID uuid.UUID) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("credit.sum_by_user", false); err != nil {
		return 0, err
	}
	sum := 0
	for _, e := range s.entries {
		if e.UserID == userID {
			sum += e.Quantity
		}
	}
	return sum, nil
}

func (r creditRepo) Totals(_ context.Context) (*credit.Totals, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("credit.totals", false); err != nil {
		return nil, err
	}
	var t credit.Totals
	for _, e := range s.entries {
		switch e.Type {
		case credit.TypePurchase:
			t.Sold += e.Quantity
		case credit.TypeUsage:
			t.Used -= e.Quantity
		}
	}
	return &t, nil
}

type orderRepo struct{ s *Store }

func (r orderRepo) Insert(_ context.Context, _ *sqlx.Tx, o *order.Order) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("order.insert", true); err != nil {
		return err
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = s.tick()
	s.orders = append(s.orders, *o)
	return nil
}

func (r orderRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]order.Order, int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("order.list_by_user", false); err != nil {
		return nil, 0, err
	}
	matched := make([]order.Order, 0)
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			matched = append(matched, s.orders[i])
		}
	}
	return paginate(matched, limit, offset), len(matched), nil
}

func (r orderRepo) List(_ context.Context, limit, offset int) ([]order.AdminOrder, int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("order.list", false); err != nil {
		return nil, 0, err
	}
	all := make([]order.AdminOrder, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		o := s.orders[i]
		all = append(all, order.AdminOrder{Order: o, UserEmail: s.users[o.UserID].Email})
	}
	return paginate(all, limit, offset), len(all), nil
}

func (r orderRepo) CountSince(_ context.Context, since time.Time) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("order.count_since", false); err != nil {
		return 0, err
	}
	n := 0
	for _, o := range s.orders {
		if !o.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type toolRepo struct{ s *Store }

func (r toolRepo) sorted(activeOnly bool) []tool.Tool {
	out := make([]tool.Tool, 0, len(r.s.tools))
	for _, t := range r.s.tools {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreditCost != out[j].CreditCost {
			return out[i].CreditCost < out[j].CreditCost
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r toolRepo) ListActive(_ context.Context) ([]tool.Tool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("tool.list_active", false); err != nil {
		return nil, err
	}
	return r.sorted(true), nil
}

func (r toolRepo) ListAll(_ context.Context) ([]tool.Tool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("tool.list_all", false); err != nil {
		return nil, err
	}
	return r.sorted(false), nil
}

func (r toolRepo) GetByID(_ context.Context, id uuid.UUID) (*tool.Tool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("tool.get_by_id", false); err != nil {
		return nil, err
	}
	t, ok := r.s.tools[id]
	if !ok {
		return nil, tool.ErrToolNotFound
	}
	return &t, nil
}

func (r toolRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]tool.Tool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("tool.get_by_ids", false); err != nil {
		return nil, err
	}
	out := make([]tool.Tool, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.s.tools[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r toolRepo) Create(_ context.Context, t *tool.Tool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("tool.create", true); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = r.s.tick()
	t.UpdatedAt = t.CreatedAt
	r.s.tools[t.ID] = *t
	return nil
}

func (r toolRepo) Update(_ context.Context, t *tool.Tool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("tool.update", true); err != nil {
		return err
	}
	if _, ok := r.s.tools[t.ID]; !ok {
		return tool.ErrToolNotFound
	}
	t.UpdatedAt = r.s.tick()
	r.s.tools[t.ID] = *t
	return nil
}

type packRepo struct{ s *Store }

func (r packRepo) sorted(activeOnly bool) []creditpack.Pack {
	out := make([]creditpack.Pack, 0, len(r.s.packs))
	for _, p := range r.s.packs {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceRappen < out[j].PriceRappen })
	return out
}

func (r packRepo) ListActive(_ context.Context) ([]creditpack.Pack, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("pack.list_active", false); err != nil {
		return nil, err
	}
	return r.sorted(true), nil
}

func (r packRepo) ListAll(_ context.Context) ([]creditpack.Pack, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("pack.list_all", false); err != nil {
		return nil, err
	}
	return r.sorted(false), nil
}

func (r packRepo) GetByID(_ context.Context, id uuid.UUID) (*creditpack.Pack, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("pack.get_by_id", false); err != nil {
		return nil, err
	}
	p, ok := r.s.packs[id]
	if !ok {
		return nil, creditpack.ErrPackNotFound
	}
	return &p, nil
}

func (r packRepo) Create(_ context.Context, p *creditpack.Pack) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("pack.create", true); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = r.s.tick()
	p.UpdatedAt = p.CreatedAt
	r.s.packs[p.ID] = *p
	return nil
}

func (r packRepo) Update(_ context.Context, p *creditpack.Pack) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("pack.update", true); err != nil {
		return err
	}
	if _, ok := r.s.packs[p.ID]; !ok {
		return creditpack.ErrPackNotFound
	}
	p.UpdatedAt = r.s.tick()
	r.s.packs[p.ID] = *p
	return nil
}

type translationRepo struct{ s *Store }

func (r translationRepo) List(_ context.Context) ([]translation.Translation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("translation.list", false); err != nil {
		return nil, err
	}
	out := make([]translation.Translation, 0, len(r.s.translations))
	for _, t := range r.s.translations {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r translationRepo) GetByID(_ context.Context, id uuid.UUID) (*translation.Translation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("translation.get_by_id", false); err != nil {
		return nil, err
	}
	t, ok := r.s.translations[id]
	if !ok {
		return nil, translation.ErrTranslationNotFound
	}
	return &t, nil
}

func (r translationRepo) ExistsKey(_ context.Context, key string, except uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("translation.exists_key", false); err != nil {
		return false, err
	}
	return r.keyTaken(key, except), nil
}

func (r translationRepo) keyTaken(key string, except uuid.UUID) bool {
	for id, t := range r.s.translations {
		if t.Key == key && id != except {
			return true
		}
	}
	return false
}

func (r translationRepo) Create(_ context.Context, t *translation.Translation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("translation.create", true); err != nil {
		return err
	}
	if r.keyTaken(t.Key, uuid.Nil) {
		return translation.ErrDuplicateKey
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = r.s.tick()
	t.UpdatedAt = t.CreatedAt
	r.s.translations[t.ID] = *t
	return nil
}

func (r translationRepo) Update(_ context.Context, t *translation.Translation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("translation.update", true); err != nil {
		return err
	}
	if _, ok := r.s.translations[t.ID]; !ok {
		return translation.ErrTranslationNotFound
	}
	if r.keyTaken(t.Key, t.ID) {
		return translation.ErrDuplicateKey
	}
	t.UpdatedAt = r.s.tick()
	r.s.translations[t.ID] = *t
	return nil
}

type routeRepo struct{ s *Store }

func (r routeRepo) ListActive(_ context.Context) ([]admin.Route, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("route.list_active", false); err != nil {
		return nil, err
	}
	out := make([]admin.Route, 0, len(r.s.routes))
	for _, route := range r.s.routes {
		if route.IsActive {
			out = append(out, route)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

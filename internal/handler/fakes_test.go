package handler

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/cheapies/internal/model"
	"github.com/iliyamo/cheapies/internal/queue"
	"github.com/iliyamo/cheapies/internal/repository"
)

// memDB backs the store fakes so a place delete can cascade to listings the
// way the SQL repository does.
type memDB struct {
	mu       sync.Mutex
	places   map[string]model.Place
	cheapies map[uint64]model.Cheapie
	users    map[string]model.User
	nextID   uint64
	failWith error
}

func newMemDB() *memDB {
	return &memDB{
		places:   map[string]model.Place{},
		cheapies: map[uint64]model.Cheapie{},
		users:    map[string]model.User{},
	}
}

type memPlaces struct{ *memDB }
type memCheapies struct{ *memDB }
type memUsers struct{ *memDB }

func (m memPlaces) List(_ context.Context, name string) ([]model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []model.Place{}
	for _, p := range m.places {
		if name == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out, nil
}

func (m memPlaces) Get(_ context.Context, id string) (*model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.places[id]
	if !ok {
		return nil, repository.ErrPlaceNotFound
	}
	return &p, nil
}

func (m memPlaces) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.places[id]
	return ok, nil
}

func (m memPlaces) Create(_ context.Context, p *model.Place) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.places[p.Identifier]; ok {
		return repository.ErrConflict
	}
	m.places[p.Identifier] = *p
	return nil
}

func (m memPlaces) Update(_ context.Context, id string, u repository.PlaceUpdate) (*model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.places[id]
	if !ok {
		return nil, repository.ErrPlaceNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Lng != nil {
		p.Lng = *u.Lng
	}
	if u.Lat != nil {
		p.Lat = *u.Lat
	}
	m.places[id] = p
	return &p, nil
}

func (m memPlaces) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, c := range m.cheapies {
		if c.Store == id {
			delete(m.cheapies, k)
		}
	}
	if _, ok := m.places[id]; !ok {
		return repository.ErrPlaceNotFound
	}
	delete(m.places, id)
	return nil
}

func (m memCheapies) List(_ context.Context, f repository.CheapieFilter) ([]model.Cheapie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Cheapie{}
	for _, c := range m.cheapies {
		if f.Store != "" && c.Store != f.Store {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memCheapies) Get(_ context.Context, id uint64) (*model.Cheapie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cheapies[id]
	if !ok {
		return nil, repository.ErrCheapieNotFound
	}
	return &c, nil
}

func (m memCheapies) Create(_ context.Context, c *model.Cheapie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now().UTC()
	m.cheapies[c.ID] = *c
	return nil
}

func (m memCheapies) Update(_ context.Context, id uint64, u repository.CheapieUpdate) (*model.Cheapie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cheapies[id]
	if !ok {
		return nil, repository.ErrCheapieNotFound
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Store != nil {
		c.Store = *u.Store
	}
	if u.Quantity != nil {
		c.Quantity = *u.Quantity
	}
	if u.Price != nil {
		c.Price = *u.Price
	}
	if u.Exp != nil {
		t := *u.Exp
		c.Exp = &t
	}
	if u.Image != nil {
		if *u.Image == "" {
			c.Image = nil
		} else {
			img := *u.Image
			c.Image = &img
		}
	}
	if u.Stock != nil {
		c.Stock = *u.Stock
	}
	m.cheapies[id] = c
	return &c, nil
}

func (m memCheapies) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cheapies[id]; !ok {
		return repository.ErrCheapieNotFound
	}
	delete(m.cheapies, id)
	return nil
}

func (m memCheapies) DeleteByStock(_ context.Context, s model.Stock) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, c := range m.cheapies {
		if c.Stock == s {
			delete(m.cheapies, k)
			n++
		}
	}
	return n, nil
}

func (m memCheapies) ListImages(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.cheapies {
		if c.Image != nil {
			out = append(out, *c.Image)
		}
	}
	return out, nil
}

func (m memUsers) List(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m memUsers) GetByID(_ context.Context, id string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return model.User{}, m.failWith
	}
	email = repository.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m memUsers) emailTaken(email, except string) bool {
	for _, u := range m.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

func (m memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = repository.NormalizeEmail(u.Email)
	if m.emailTaken(u.Email, "") {
		return repository.ErrEmailExists
	}
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = *u
	return nil
}

func (m memUsers) Update(_ context.Context, id string, upd repository.UserUpdate) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	if upd.Email != nil {
		email := repository.NormalizeEmail(*upd.Email)
		if m.emailTaken(email, id) {
			return model.User{}, repository.ErrEmailExists
		}
		u.Email = email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	m.users[id] = u
	return u, nil
}

func (m memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// eventLog records published activity events.
type eventLog struct {
	mu     sync.Mutex
	events []queue.ActivityEvent
}

func (l *eventLog) Publish(_ context.Context, ev queue.ActivityEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func (l *eventLog) types() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	for i, e := range l.events {
		out[i] = e.Type
	}
	return out
}

var errStoreDown = errors.New("store down")

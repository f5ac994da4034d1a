package repository

import (
	"strings"
	"sync"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/fixture"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost bcrypt cost used when seeding demo passwords
var PasswordCost = bcrypt.DefaultCost

type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]*entity.User
	byEmail map[string]string
	order   []string
	plants  []entity.Plant
}

// NewUserRepository hashes the plaintext fixture passwords with bcrypt
func NewUserRepository(records []fixture.UserRecord, plants []entity.Plant) (*UserRepository, error) {
	r := &UserRepository{
		users:   make(map[string]*entity.User, len(records)),
		byEmail: make(map[string]string, len(records)),
		plants:  append([]entity.Plant(nil), plants...),
	}
	for _, rec := range records {
		hash, err := bcrypt.GenerateFromPassword([]byte(rec.PlainPassword), PasswordCost)
		if err != nil {
			return nil, err
		}
		u := rec.User
		u.Password = string(hash)
		r.users[u.ID] = &u
		r.byEmail[strings.ToLower(u.Email)] = u.ID
		r.order = append(r.order, u.ID)
	}
	return r, nil
}

func (r *UserRepository) FindByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[strings.ToLower(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.FindByID(id)
}

func (r *UserRepository) List() []entity.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.users[id])
	}
	return out
}

func (r *UserRepository) ListPlants() []entity.Plant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Plant(nil), r.plants...)
}

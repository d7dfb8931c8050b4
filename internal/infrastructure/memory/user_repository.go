package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

type userRepo struct {
	store *Store
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	defer r.store.lock(false)()
	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.store.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.store.lock(false)()
	for _, u := range r.store.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) UpdatePassword(_ context.Context, id, passwordHash string, updatedAt time.Time) error {
	defer r.store.lock(false)()
	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = updatedAt
	r.store.users[id] = u
	return nil
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	defer r.store.lock(false)()
	list := make([]*entity.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		cp := u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return list, nil
}

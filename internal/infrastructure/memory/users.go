package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria, en orden de alta.
type UserRepo struct{ view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.do(func(st *state) error {
		for _, cur := range st.users {
			if strings.EqualFold(cur.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		c := *u
		c.Email = strings.ToLower(c.Email)
		st.users = append(st.users, &c)
		return nil
	})
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				c := *u
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.do(func(st *state) error {
		for _, u := range st.users {
			if u.ID == id {
				u.Status = status
				u.UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.do(func(st *state) error {
		from, to := page(len(st.users), limit, offset)
		for _, u := range st.users[from:to] {
			c := *u
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.do(func(st *state) error {
		n = len(st.users)
		return nil
	})
	return n, err
}

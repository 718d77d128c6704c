package favorite_test

import (
	"context"
	"sort"
	"sync"

	"newsfox/internal/domain/entity"
	"newsfox/internal/repository"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

// memStore enforces the same uniqueness rules as the database schema.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*entity.User     // email -> user
	favorites map[string]*entity.Favorite // userID|url -> favorite
	err       error                       // 強制エラー注入用
	hideOnce  map[string]bool             // 最初の検索で見えないふりをするキー(競合再現用)
	creates   int
}

func newStore() *memStore {
	return &memStore{
		users:     map[string]*entity.User{},
		favorites: map[string]*entity.Favorite{},
		hideOnce:  map[string]bool{},
	}
}

type userRepo struct{ *memStore }
type favoriteRepo struct{ *memStore }

/* --- repository.UserRepository を満たす --- */

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.hideOnce["user:"+email] {
		delete(r.hideOnce, "user:"+email)
		return nil, nil
	}
	return r.users[email], nil
}

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[u.Email]; ok {
		return repository.ErrDuplicate
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

/* --- repository.FavoriteRepository を満たす --- */

func (r favoriteRepo) FindByUserAndURL(_ context.Context, userID, url string) (*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	key := userID + "|" + url
	if r.hideOnce["fav:"+url] {
		delete(r.hideOnce, "fav:"+url)
		return nil, nil
	}
	return r.favorites[key], nil
}

func (r favoriteRepo) Create(_ context.Context, f *entity.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	key := f.UserID + "|" + f.URL
	if _, ok := r.favorites[key]; ok {
		return repository.ErrDuplicate
	}
	cp := *f
	r.favorites[key] = &cp
	r.creates++
	return nil
}

func (r favoriteRepo) ListByUser(_ context.Context, userID string) ([]*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*entity.Favorite{}
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.After(out[j].AddedAt) })
	return out, nil
}

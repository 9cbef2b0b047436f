package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"basket/internal/domain/entity"
	domainerrors "basket/internal/domain/errors"
	"basket/internal/domain/reconcile"
	"basket/internal/domain/repository"
	"basket/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes backing the service tests. They enforce the same
// invariants as the real postgres implementations so the services can be
// exercised end to end without a database.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- transaction manager ---

type fakeRepoFactory struct {
	users    *fakeUserRepo
	cats     *fakeCategoryRepo
	lists    *fakeListRepo
	sessions *fakeRefreshTokenRepo
}

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		users:    newFakeUserRepo(),
		cats:     newFakeCategoryRepo(),
		lists:    newFakeListRepo(),
		sessions: newFakeRefreshTokenRepo(),
	}
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.users }
func (f *fakeRepoFactory) CategoryRepo() repository.CategoryRepository { return f.cats }
func (f *fakeRepoFactory) ListRepo() repository.ListRepository { return f.lists }
func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository { return f.sessions }

type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- user repository ---

type fakeUserRepo struct {
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		return &user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user

	return nil
}

// --- category repository ---

type fakeCategoryRepo struct {
	cats map[uuid.UUID]entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{cats: make(map[uuid.UUID]entity.Category)}
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	if cat, ok := r.cats[id]; ok && cat.UserID == userID {
		return &cat, nil
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, cat := range r.cats {
		if cat.UserID == userID {
			c := cat
			out = append(out, &c)
		}
	}

	return out, nil
}

func (r *fakeCategoryRepo) ExistsByName(_ context.Context, userID uuid.UUID, name string) (bool, error) {
	for _, cat := range r.cats {
		if cat.UserID == userID && strings.EqualFold(strings.TrimSpace(cat.Name), strings.TrimSpace(name)) {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	if exists, _ := r.ExistsByName(context.Background(), category.UserID, category.Name); exists {
		return domainerrors.ErrCategoryExists
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.cats[category.ID] = *category

	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if cat, ok := r.cats[id]; !ok || cat.UserID != userID {
		return repository.ErrCategoryNotFound
	}
	delete(r.cats, id)

	return nil
}

// --- list repository ---

type fakeListRepo struct {
	lists map[uuid.UUID]entity.List
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{lists: make(map[uuid.UUID]entity.List)}
}

func (r *fakeListRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.List, error) {
	if list, ok := r.lists[id]; ok && list.UserID == userID {
		l := list
		l.Items = append([]entity.Item(nil), list.Items...)

		return &l, nil
	}

	return nil, repository.ErrListNotFound
}

func (r *fakeListRepo) FindByCategory(_ context.Context, userID, categoryID uuid.UUID) ([]*entity.List, error) {
	var out []*entity.List
	for _, list := range r.lists {
		if list.UserID == userID && list.CategoryID == categoryID {
			l := list
			out = append(out, &l)
		}
	}

	return out, nil
}

func (r *fakeListRepo) FindByItemID(_ context.Context, userID, itemID uuid.UUID) (*entity.List, error) {
	for _, list := range r.lists {
		if list.UserID != userID {
			continue
		}
		for _, item := range list.Items {
			if item.ID == itemID {
				l := list
				l.Items = append([]entity.Item(nil), list.Items...)

				return &l, nil
			}
		}
	}

	return nil, repository.ErrListNotFound
}

func (r *fakeListRepo) ExistsByName(_ context.Context, userID uuid.UUID, name string) (bool, error) {
	for _, list := range r.lists {
		if list.UserID == userID && list.Name == name {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeListRepo) Create(_ context.Context, list *entity.List) error {
	if name, dup := reconcile.FindDuplicateName(list.Items); dup {
		return errors.Wrapf(repository.ErrDuplicateItemName, "item %q", name)
	}
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	list.CreatedAt = time.Now()
	list.UpdatedAt = list.CreatedAt
	stored := *list
	stored.Items = append([]entity.Item(nil), list.Items...)
	r.lists[list.ID] = stored

	return nil
}

func (r *fakeListRepo) SaveItems(_ context.Context, userID, listID uuid.UUID, items []entity.Item) error {
	if name, dup := reconcile.FindDuplicateName(items); dup {
		return errors.Wrapf(repository.ErrDuplicateItemName, "item %q", name)
	}
	list, ok := r.lists[listID]
	if !ok || list.UserID != userID {
		return repository.ErrListNotFound
	}
	list.Items = append([]entity.Item(nil), items...)
	list.UpdatedAt = time.Now()
	r.lists[listID] = list

	return nil
}

func (r *fakeListRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if list, ok := r.lists[id]; !ok || list.UserID != userID {
		return repository.ErrListNotFound
	}
	delete(r.lists, id)

	return nil
}

func (r *fakeListRepo) DeleteByCategory(_ context.Context, userID, categoryID uuid.UUID) (int64, error) {
	var deleted int64
	for id, list := range r.lists {
		if list.UserID == userID && list.CategoryID == categoryID {
			delete(r.lists, id)
			deleted++
		}
	}

	return deleted, nil
}

// --- refresh token repository ---

type fakeRefreshTokenRepo struct {
	sessions map[string]entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{sessions: make(map[string]entity.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now()
	r.sessions[token.TokenHash] = *token

	return nil
}

func (r *fakeRefreshTokenRepo) FindRefreshTokenByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	token, ok := r.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if token.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrRefreshTokenExpired
	}

	return &token, nil
}

func (r *fakeRefreshTokenRepo) DeleteRefreshTokenByHash(_ context.Context, tokenHash string) error {
	if _, ok := r.sessions[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.sessions, tokenHash)

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteRefreshTokensByUserID(_ context.Context, userID uuid.UUID) error {
	for hash, token := range r.sessions {
		if token.UserID == userID {
			delete(r.sessions, hash)
		}
	}

	return nil
}

// --- domain service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService mints deterministic tokens so tests can follow them around.
type fakeTokenService struct{}

func (s fakeTokenService) GenerateTokens(userID uuid.UUID, email string) (string, string, error) {
	access, err := s.GenerateAccessToken(userID, email)
	if err != nil {
		return "", "", err
	}

	return access, fmt.Sprintf("refresh.%s.%d", userID, time.Now().UnixNano()), nil
}

func (fakeTokenService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return fmt.Sprintf("access.%s.%s", userID, email), nil
}

func (fakeTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return parseFakeToken(tokenString, "access")
}

func (fakeTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return parseFakeToken(tokenString, "refresh")
}

func parseFakeToken(tokenString, wantKind string) (*service.Claims, error) {
	parts := strings.SplitN(tokenString, ".", 3)
	if len(parts) != 3 || parts[0] != wantKind {
		return nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, errors.New("invalid token subject")
	}

	claims := &service.Claims{UserID: userID}
	if wantKind == "access" {
		claims.Email = parts[2]
	}

	return claims, nil
}

func (fakeTokenService) HashToken(tokenString string) string {
	return "hash(" + tokenString + ")"
}

func (fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

// appErrorCode digs the business error code out of a wrapped error chain.
func appErrorCode(t *testing.T, err error) string {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)

	return appErr.ErrorCode()
}

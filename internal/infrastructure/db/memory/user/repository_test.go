package user

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/domain/user"
)

func TestNewSeededRepository(t *testing.T) {
	r := NewSeededRepository()

	us, err := r.FetchUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, us, 3)
	for idx, u := range us {
		assert.Equal(t, user.ID(idx+1), u.ID)
	}
	assert.Equal(t, "John Doe", us[0].Name)
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewSeededRepository()

	created, err := r.CreateUser(ctx, user.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	assert.Equal(t, user.ID(4), created.ID)

	got, err := r.FetchUserByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := r.UpdateUser(ctx, user.User{ID: 4, Name: "Annie"})
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.Equal(t, "ann@x.com", updated.Email)

	updated, err = r.UpdateUser(ctx, user.User{ID: 4, Email: "annie@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.Equal(t, "annie@x.com", updated.Email)

	deleted, err := r.DeleteUser(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", deleted.Name)

	us, err := r.FetchUsers(ctx)
	require.NoError(t, err)
	ids := make([]user.ID, 0, len(us))
	for _, u := range us {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []user.ID{1, 3, 4}, ids)

	got, err = r.FetchUserByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	r := NewSeededRepository()

	u, err := r.FetchUserByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = r.UpdateUser(ctx, user.User{ID: 99, Name: "x"})
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = r.DeleteUser(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, u)

	us, _ := r.FetchUsers(ctx)
	assert.Len(t, us, 3)
}

func TestRepository_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	r := NewSeededRepository()

	_, err := r.DeleteUser(ctx, 3)
	require.NoError(t, err)
	_, err = r.DeleteUser(ctx, 2)
	require.NoError(t, err)

	u, err := r.CreateUser(ctx, user.User{Name: "Bo", Email: "bo@x.com"})
	require.NoError(t, err)
	assert.Equal(t, user.ID(4), u.ID)

	u, err = r.CreateUser(ctx, user.User{Name: "Cy", Email: "cy@x.com"})
	require.NoError(t, err)
	assert.Equal(t, user.ID(5), u.ID)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewSeededRepository()

	u, err := r.FetchUserByID(ctx, 1)
	require.NoError(t, err)
	u.Name = "mutated"

	us, err := r.FetchUsers(ctx)
	require.NoError(t, err)
	us[0].Email = "mutated"

	again, err := r.FetchUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", again.Name)
	assert.Equal(t, "john@example.com", again.Email)
}

func TestRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = r.CreateUser(ctx, user.User{Name: "n", Email: "e"})
		}()
	}
	wg.Wait()

	us, err := r.FetchUsers(ctx)
	require.NoError(t, err)
	require.Len(t, us, n)

	seen := make(map[user.ID]struct{}, n)
	for _, u := range us {
		seen[u.ID] = struct{}{}
	}
	assert.Len(t, seen, n)
}

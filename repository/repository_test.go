package repository

import (
	"context"
	"testing"

	"github.com/sambbaron/tuneful/model"
	"github.com/sambbaron/tuneful/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongRepositoryListOrder(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	files := testutil.SeedFiles(t, gdb, "A", "B")
	testutil.SeedSong(t, gdb, files[0].ID)
	testutil.SeedSong(t, gdb, files[1].ID)

	songs, err := NewGormSongRepository(gdb).List(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "A", songs[0].File.Name)
	assert.Equal(t, "B", songs[1].File.Name)
	assert.Less(t, songs[0].ID, songs[1].ID)
}

func TestSongRepositoryGetByIDMissing(t *testing.T) {
	gdb := testutil.SetupTestDB(t)

	song, err := NewGormSongRepository(gdb).GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, song)
}

func TestSongRepositoryCreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.SetupTestDB(t)
	files := testutil.SeedFiles(t, gdb, "A", "B")
	repo := NewGormSongRepository(gdb)

	song := &model.Song{FileID: files[0].ID}
	require.NoError(t, repo.Create(ctx, song))
	require.NotZero(t, song.ID)

	require.NoError(t, repo.UpdateFile(ctx, song, files[1].ID))
	assert.Equal(t, files[1].ID, song.FileID)

	got, err := repo.GetByID(ctx, song.ID)
	require.NoError(t, err)
	require.NotNil(t, got.File)
	assert.Equal(t, "B", got.File.Name)

	n, err := repo.Delete(ctx, song.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	f, err := NewGormFileRepository(gdb).GetByID(ctx, files[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, f, "deleting a song leaves its file alone")
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.SetupTestDB(t)
	repo := NewGormFileRepository(gdb)

	f := &model.File{Name: "song.mp3"}
	require.NoError(t, repo.Create(ctx, f))

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "song.mp3", got.Name)

	missing, err := repo.GetByID(ctx, f.ID+1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.SetupTestDB(t)
	store := NewStore(gdb)

	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Files.Create(ctx, &model.File{Name: "kept.mp3"}))
	require.NoError(t, sess.Commit())
	require.NoError(t, sess.Close(), "close after commit is a no-op")
	assert.ErrorIs(t, sess.Commit(), ErrSessionClosed)

	sess, err = store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Files.Create(ctx, &model.File{Name: "dropped.mp3"}))
	require.NoError(t, sess.Close())

	var names []string
	require.NoError(t, gdb.Model(&model.File{}).Order("id").Pluck("name", &names).Error)
	assert.Equal(t, []string{"kept.mp3"}, names)

	require.NoError(t, store.Ping(ctx))
}

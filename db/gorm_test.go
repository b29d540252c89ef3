package db

import (
	"testing"

	"github.com/sambbaron/tuneful/config"
	"github.com/sambbaron/tuneful/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(config.DBConfig{Driver: driver, Host: "localhost", Port: "1", Name: "tuneful"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	gdb, err := Connect(config.DBConfig{Driver: "sqlite", Name: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { Close(gdb) })

	require.NoError(t, Migrate(gdb))

	assert.True(t, gdb.Migrator().HasTable("file"))
	assert.True(t, gdb.Migrator().HasTable("song"))

	file := &model.File{Name: "a.mp3"}
	require.NoError(t, gdb.Create(file).Error)
	require.NoError(t, gdb.Create(&model.Song{FileID: file.ID}).Error)

	var song model.Song
	require.NoError(t, gdb.Preload("File").First(&song).Error)
	assert.Equal(t, "a.mp3", song.File.Name)
}

func TestMigrateNil(t *testing.T) {
	assert.Error(t, Migrate(nil))
	assert.NoError(t, Close(nil))
}

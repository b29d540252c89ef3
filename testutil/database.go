package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sambbaron/tuneful/db"
	"github.com/sambbaron/tuneful/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB returns a migrated in-memory SQLite database private to t.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// A single connection keeps the shared in-memory database alive and
	// serializes access the way one request session would.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return gdb
}

// SeedFiles inserts one file row per name and returns them in order.
func SeedFiles(t *testing.T, gdb *gorm.DB, names ...string) []*model.File {
	t.Helper()

	files := make([]*model.File, 0, len(names))
	for _, n := range names {
		f := &model.File{Name: n}
		if err := gdb.Create(f).Error; err != nil {
			t.Fatalf("Failed to seed file %q: %v", n, err)
		}
		files = append(files, f)
	}
	return files
}

// SeedSong inserts a song pointing at fileID.
func SeedSong(t *testing.T, gdb *gorm.DB, fileID uint) *model.Song {
	t.Helper()

	s := &model.Song{FileID: fileID}
	if err := gdb.Omit("File").Create(s).Error; err != nil {
		t.Fatalf("Failed to seed song: %v", err)
	}
	return s
}

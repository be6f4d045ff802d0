package services

import (
	"testing"
	"time"

	"github.com/Itish41/ActionScribe/models"
	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FixedTime is what now returns while a test has time pinned.
var FixedTime = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

const sampleNote = `Sprint sync
TODO: Write release notes @alice
URGENT: Fix login bug!
Should we adopt Go 1.24?`

// newTestDB opens a private in-memory sqlite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Note{}, &models.ActionItem{}))
	return db
}

func pinTime(t *testing.T) {
	t.Helper()
	patches := gomonkey.ApplyGlobalVar(&now, func() time.Time { return FixedTime })
	t.Cleanup(patches.Reset)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id TEXT PRIMARY KEY,
		business_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		business_type TEXT,
		description TEXT,
		address TEXT,
		location TEXT,
		website TEXT,
		year_established INTEGER DEFAULT 0,
		logo_locator TEXT,
		business_hours TEXT,
		onboarding_status TEXT NOT NULL DEFAULT 'credentials_sent',
		profile_completeness INTEGER NOT NULL DEFAULT 0,
		documents_completeness INTEGER NOT NULL DEFAULT 0,
		verified BOOLEAN NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		featured BOOLEAN NOT NULL DEFAULT 0,
		featured_at DATETIME,
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		password_hash TEXT,
		setup_token TEXT,
		setup_token_expires_at DATETIME,
		account_setup_at DATETIME,
		documents_submitted_at DATETIME,
		verified_at DATETIME,
		revision INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE documents (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		type TEXT NOT NULL,
		storage_locator TEXT NOT NULL,
		original_filename TEXT,
		size INTEGER NOT NULL DEFAULT 0,
		mime_type TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		reviewed_by TEXT,
		reviewed_at DATETIME,
		notes TEXT,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createVerificationHistoryTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification_history (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		action TEXT NOT NULL,
		performed_by TEXT,
		notes TEXT,
		document_ids TEXT DEFAULT '[]',
		created_at DATETIME
	);`)
}

func createReviewTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		reviewer_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'merchant',
		merchant_id TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

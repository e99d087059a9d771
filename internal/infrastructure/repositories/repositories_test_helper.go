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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		phone TEXT,
		role TEXT NOT NULL,
		referral_code TEXT UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		email_verified BOOLEAN NOT NULL DEFAULT 0,
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSessionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token_hash TEXT UNIQUE NOT NULL,
		expires_at DATETIME NOT NULL,
		ip_address TEXT,
		user_agent TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAgentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE agents (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		status TEXT NOT NULL,
		metrics TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLeadTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE leads (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT NOT NULL,
		status TEXT NOT NULL,
		source TEXT NOT NULL,
		assigned_agent_id TEXT,
		budget REAL,
		notes TEXT,
		metadata TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createFollowUpTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE follow_ups (
		id TEXT PRIMARY KEY,
		lead_id TEXT NOT NULL,
		type TEXT NOT NULL,
		note TEXT,
		scheduled_at DATETIME NOT NULL,
		reminder BOOLEAN NOT NULL DEFAULT 0,
		reminded BOOLEAN NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		completed_at DATETIME,
		created_by TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createActivityTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE activities (
		id TEXT PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		action TEXT NOT NULL,
		detail TEXT,
		actor_id TEXT,
		created_at DATETIME
	);`)
}

func createProjectTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		description TEXT,
		min_price REAL,
		max_price REAL,
		status TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE units (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		number TEXT NOT NULL,
		floor INTEGER NOT NULL DEFAULT 0,
		size_sqft REAL,
		price REAL NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createBookingTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		lead_id TEXT NOT NULL,
		unit_id TEXT NOT NULL,
		amount REAL NOT NULL,
		status TEXT NOT NULL,
		booked_by TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		booking_id TEXT NOT NULL,
		amount REAL NOT NULL,
		mode TEXT NOT NULL,
		reference TEXT,
		paid_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

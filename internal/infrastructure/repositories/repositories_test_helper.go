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

func createFarmerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE farmers (
		address TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		farm_type TEXT NOT NULL,
		email TEXT NOT NULL,
		phone_no TEXT NOT NULL,
		proof_image_ref TEXT NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		total_received TEXT NOT NULL DEFAULT '0',
		last_disbursement_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createDonorTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE donors (
		address TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		email TEXT NOT NULL,
		phone_no TEXT NOT NULL,
		proof_image_ref TEXT NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		total_donated TEXT NOT NULL DEFAULT '0',
		successful_disbursements INTEGER NOT NULL DEFAULT 0,
		reputation_score INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAidRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE aid_requests (
		id INTEGER PRIMARY KEY,
		farmer_address TEXT NOT NULL,
		name TEXT NOT NULL,
		purpose TEXT NOT NULL,
		amount_requested TEXT NOT NULL,
		amount_funded TEXT NOT NULL DEFAULT '0',
		fulfilled BOOLEAN NOT NULL DEFAULT 0,
		timestamp DATETIME,
		updated_at DATETIME
	);`)
}

func createLedgerEventTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ledger_events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT UNIQUE NOT NULL,
		event_type TEXT NOT NULL,
		actor TEXT,
		subject TEXT,
		payload TEXT,
		delivered_at DATETIME,
		created_at DATETIME
	);`)
}

func createContractStatsTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE contract_stats (
		id INTEGER PRIMARY KEY,
		total_donors INTEGER NOT NULL DEFAULT 0,
		total_beneficiaries INTEGER NOT NULL DEFAULT 0,
		total_funds_distributed TEXT NOT NULL DEFAULT '0',
		updated_at DATETIME
	);`)
}

func createBalanceTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE balance_accounts (
		address TEXT PRIMARY KEY,
		balance TEXT NOT NULL DEFAULT '0',
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE deposits (
		tx_hash TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		amount TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	createFarmerTable(t, db)
	createDonorTable(t, db)
	createAidRequestTable(t, db)
	createLedgerEventTable(t, db)
	createContractStatsTable(t, db)
	createBalanceTables(t, db)
}

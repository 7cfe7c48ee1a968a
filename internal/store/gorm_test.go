package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

// dryRunDB opens a connection that only renders SQL. Neither driver dials
// until a statement is executed.
func dryRunDB(t *testing.T, driver string) *gorm.DB {
	t.Helper()

	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       "fd:secret@tcp(127.0.0.1:3306)/flow_dispatch?parseTime=True",
			SkipInitializeWithVersion: true,
		})
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN: "host=127.0.0.1 port=5432 user=fd password=secret dbname=flow_dispatch sslmode=disable",
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestGormStore_SQL(t *testing.T) {
	tests := []struct {
		driver string
		table  string
		upsert string
	}{
		{driver: "mysql", table: "`executors`", upsert: "ON DUPLICATE KEY UPDATE"},
		{driver: "postgres", table: `"executors"`, upsert: "ON CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			db := dryRunDB(t, tt.driver)

			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var record ExecutorRecord
				return byID(tx, 7).Take(&record)
			})
			assert.Contains(t, sql, "FROM "+tt.table)
			assert.Contains(t, sql, "id = 7")
			assert.Contains(t, sql, "LIMIT 1")

			sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var records []ExecutorRecord
				return active(tx).Find(&records)
			})
			assert.Contains(t, sql, "FROM "+tt.table)
			assert.Contains(t, sql, "active = true")
			assert.Contains(t, sql, "ORDER BY id")

			sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				return upsert(tx, newExecutorRecord(types.NewExecutor(7, "exec-7", 12321, true)))
			})
			assert.Contains(t, sql, "INSERT INTO")
			assert.Contains(t, sql, "exec-7")
			assert.Contains(t, sql, tt.upsert)
		})
	}
}

func TestExecutorRecord(t *testing.T) {
	assert.Equal(t, "executors", ExecutorRecord{}.TableName())

	e := types.NewExecutor(3, "exec-3", 12321, true)
	assert.Equal(t, e, newExecutorRecord(e).toExecutor())
}

func TestDialector(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 3306, Username: "fd", Password: "secret", Database: "flow_dispatch"}

	d, err := Dialector("mysql", cfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector("postgres", cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector("sqlite", cfg)
	assert.Error(t, err)
}

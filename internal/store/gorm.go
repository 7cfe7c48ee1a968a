package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

// ExecutorRecord is the database row of an executor.
type ExecutorRecord struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement:false"`
	Host      string    `gorm:"column:host;size:255;not null"`
	Port      int       `gorm:"column:port;not null"`
	Active    bool      `gorm:"column:active;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName 表名
func (ExecutorRecord) TableName() string {
	return "executors"
}

func (r *ExecutorRecord) toExecutor() *types.Executor {
	return types.NewExecutor(r.ID, r.Host, r.Port, r.Active)
}

func newExecutorRecord(e *types.Executor) *ExecutorRecord {
	return &ExecutorRecord{ID: e.ID, Host: e.Host, Port: e.Port, Active: e.Active}
}

// GormStore implements ExecutorStore on MySQL or PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Dialector 根据驱动类型构建数据库方言
func Dialector(driver string, cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Database,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.Database,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// OpenGormStore 初始化数据库连接并迁移executors表
func OpenGormStore(driver string, cfg *config.DatabaseConfig) (*GormStore, error) {
	dialector, err := Dialector(driver, cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&ExecutorRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate executors table: %w", err)
	}
	return NewGormStore(db), nil
}

// Get implements ExecutorStore.
func (s *GormStore) Get(ctx context.Context, id int) (*types.Executor, error) {
	var record ExecutorRecord
	err := byID(s.db.WithContext(ctx), id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExecutorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get executor %d: %w", id, err)
	}
	return record.toExecutor(), nil
}

// Put implements ExecutorStore.
func (s *GormStore) Put(ctx context.Context, executor *types.Executor) error {
	if err := validateExecutor(executor); err != nil {
		return err
	}
	if err := upsert(s.db.WithContext(ctx), newExecutorRecord(executor)).Error; err != nil {
		return fmt.Errorf("failed to put executor %d: %w", executor.ID, err)
	}
	return nil
}

// Remove implements ExecutorStore.
func (s *GormStore) Remove(ctx context.Context, id int) error {
	if err := byID(s.db.WithContext(ctx), id).Delete(&ExecutorRecord{}).Error; err != nil {
		return fmt.Errorf("failed to remove executor %d: %w", id, err)
	}
	return nil
}

// ActiveExecutors implements ExecutorStore.
func (s *GormStore) ActiveExecutors(ctx context.Context) ([]*types.Executor, error) {
	var records []ExecutorRecord
	if err := active(s.db.WithContext(ctx)).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list executors: %w", err)
	}

	result := make([]*types.Executor, 0, len(records))
	for i := range records {
		result = append(result, records[i].toExecutor())
	}
	return result, nil
}

// Close implements ExecutorStore.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func byID(tx *gorm.DB, id int) *gorm.DB {
	return tx.Model(&ExecutorRecord{}).Where("id = ?", id)
}

func active(tx *gorm.DB) *gorm.DB {
	return tx.Model(&ExecutorRecord{}).Where("active = ?", true).Order("id")
}

func upsert(tx *gorm.DB, record *ExecutorRecord) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"host", "port", "active", "updated_at"}),
	}).Create(record)
}

package storage

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvRow is one logical table persisted as a single row; the whole-table
// replace semantics of the adapter carry over unchanged, the database just
// provides durability and a place to point a real DSN at.
type kvRow struct {
	Key       string    `gorm:"column:table_name;primaryKey"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (kvRow) TableName() string {
	return "kv_tables"
}

// GormBackend runs the key-value tables on a relational database through
// GORM (sqlite or postgres, selected by the caller's dialector).
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&kvRow{}); err != nil {
		return nil, err
	}
	return &GormBackend{db: db}, nil
}

func (g *GormBackend) Get(table Table) ([]byte, bool, error) {
	var row kvRow
	err := g.db.Where("table_name = ?", string(table)).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Value, true, nil
}

func (g *GormBackend) Set(table Table, data []byte) error {
	row := kvRow{Key: string(table), Value: data, UpdatedAt: time.Now()}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "table_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (g *GormBackend) Remove(table Table) error {
	return g.db.Where("table_name = ?", string(table)).Delete(&kvRow{}).Error
}

func (g *GormBackend) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

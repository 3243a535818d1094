package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate, parents
// before children.
func AllModels() []any {
	return []any{
		&Run{},
		&Store{},
		&Review{},
		&Tag{},
		&ReviewTag{},
		&StoreStat{},
		&ZoneStat{},
		&TagStat{},
		&RedactionEvent{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// Reset deletes all rows of all vocan tables, children first. It is meant
// to run inside a transaction together with a following insert.
func Reset(db *gorm.DB) error {
	models := AllModels()
	for i := len(models) - 1; i >= 0; i-- {
		err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(models[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

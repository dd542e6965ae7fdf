package storage

import (
	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database at path and brings the schema up
// to date. The champion catalog lives in code, so there is nothing to seed.
func OpenAndMigrate(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	models := []interface{}{
		&arena.Match{},
		&arena.ChampionSlot{},
		&arena.PayoutNote{},
		&arena.PlayerProfile{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, err
	}
	return db, nil
}

// Package storage persists the run index: an audit trail of every song and
// arena the converter produced, kept next to the output tree.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultIndexFile = "index.db"

type IndexDB struct {
	DB *gorm.DB
	db *sql.DB
}

type SongRecord struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	SHA          string `gorm:"uniqueIndex:idx_song_sha" json:"sha"`
	SongID       int    `gorm:"index:idx_song_id" json:"song_id"`
	Name         string `json:"name"`
	Difficulties int    `json:"difficulties"`
	CreatedAt    time.Time
}

type ArenaRecord struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"index:idx_arena_name" json:"name"`
	ArenaID   int    `json:"arena_id"`
	CreatedAt time.Time
}

// Open creates or opens the run index database at the given path.
func Open(path string) (*IndexDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	if err := db.AutoMigrate(&SongRecord{}, &ArenaRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &IndexDB{DB: db, db: sqlDB}, nil
}

func (d *IndexDB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// RecordSong stores one converted song. Re-running over the same content
// hash replaces the earlier row.
func (d *IndexDB) RecordSong(sha string, songID int, name string, difficulties int) error {
	if d == nil || d.DB == nil {
		return errors.New("index db is nil")
	}
	record := SongRecord{SHA: sha, SongID: songID, Name: name, Difficulties: difficulties}
	if err := d.DB.Where("sha = ?", sha).Delete(&SongRecord{}).Error; err != nil {
		return err
	}
	return d.DB.Create(&record).Error
}

// RecordArena stores one converted arena.
func (d *IndexDB) RecordArena(name string, arenaID int) error {
	if d == nil || d.DB == nil {
		return errors.New("index db is nil")
	}
	return d.DB.Create(&ArenaRecord{Name: name, ArenaID: arenaID}).Error
}

// Songs lists every recorded song ordered by assigned ID.
func (d *IndexDB) Songs() ([]SongRecord, error) {
	if d == nil || d.DB == nil {
		return nil, errors.New("index db is nil")
	}
	var songs []SongRecord
	if err := d.DB.Order("song_id").Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

// Arenas lists every recorded arena ordered by assigned ID.
func (d *IndexDB) Arenas() ([]ArenaRecord, error) {
	if d == nil || d.DB == nil {
		return nil, errors.New("index db is nil")
	}
	var arenas []ArenaRecord
	if err := d.DB.Order("arena_id").Find(&arenas).Error; err != nil {
		return nil, err
	}
	return arenas, nil
}

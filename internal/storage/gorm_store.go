package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const tokenKey = "token"

// Entry is one key/value row in the local store file.
type Entry struct {
	Key   string `gorm:"primaryKey;type:varchar(64)"`
	Value string `gorm:"type:text"`
}

// GORMTokenStore persists the credential token in a local SQLite file so a
// signed-in session survives restarts.
type GORMTokenStore struct {
	db *gorm.DB
}

// Open opens (creating if needed) the local store at the given path.
func Open(path string) (*GORMTokenStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store at %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}
	return &GORMTokenStore{db: db}, nil
}

// Token returns the stored credential token, or ErrNoToken if absent.
func (s *GORMTokenStore) Token() (string, error) {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", tokenKey).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if entry.Value == "" {
		return "", ErrNoToken
	}
	return entry.Value, nil
}

// SetToken stores the credential token, replacing any previous value.
func (s *GORMTokenStore) SetToken(token string) error {
	entry := Entry{Key: tokenKey, Value: token}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// ClearToken removes the stored credential token. Clearing an absent token
// is not an error.
func (s *GORMTokenStore) ClearToken() error {
	if err := s.db.Delete(&Entry{}, "key = ?", tokenKey).Error; err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds composite indexes that the timeline queries rely on.
// Follow lookups are served by the follows primary key and its follower index.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Timeline: messages by owner, newest first
		{"messages", "idx_messages_user_timestamp", "user_id, timestamp"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			logrus.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.WithFields(logrus.Fields{
			"index":   idx.name,
			"table":   idx.table,
			"columns": idx.columns,
		}).Info("Created index")
	}

	return nil
}

// MigrateDatabase runs the migrations AutoMigrate cannot express
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}

package repository

import (
	"encoding/json"
	"errors"

	"github.com/donghaechoir/choir-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository whole-document settings access. Every write replaces
// the entire document (last writer wins); readers always see a full
// snapshot, never a partial merge.
type SettingsRepository interface {
	Get(name string, out interface{}) error
	Replace(name string, value interface{}) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a SettingsRepository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get unmarshals the document named name into out. A missing document is
// not an error: out keeps its zero value, matching the original's
// empty-state handling for absent Firestore docs.
func (r *settingsRepository) Get(name string, out interface{}) error {
	var doc domain.SettingsDocument
	err := r.db.Where("name = ?", name).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(doc.Value), out)
}

// Replace overwrites the full document, creating it on first write
func (r *settingsRepository) Replace(name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	doc := domain.SettingsDocument{Name: name, Value: string(data)}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&doc).Error
}

// Package gormstore is the embedded document store backend. Records are kept
// in a single sqlite table with the property bag serialized as JSON, which
// keeps the Store surface identical to the hosted backend for local
// development and tests.
package gormstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/config"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

// document is the persisted row; Properties holds the JSON-encoded bag.
type document struct {
	ID             string    `gorm:"column:id;primaryKey"`
	CollectionID   string    `gorm:"column:collection_id;not null;index"`
	Properties     []byte    `gorm:"column:properties;not null"`
	Archived       bool      `gorm:"column:archived;not null;default:false"`
	CreatedTime    time.Time `gorm:"column:created_time;autoCreateTime"`
	LastEditedTime time.Time `gorm:"column:last_edited_time;autoUpdateTime"`
}

func (document) TableName() string {
	return "documents"
}

// Store implements docstore.Store over a local sqlite file.
type Store struct {
	conn *gorm.DB
	logg *logger.Logger
}

// New opens (or creates) the sqlite file and migrates the documents table.
func New(ctx context.Context, cfg config.DocstoreConfig, logg *logger.Logger) (*Store, error) {
	if cfg.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("migrating documents table: %w", err)
	}

	logg.Info(ctx, "embedded document store ready")

	return &Store{conn: conn, logg: logg}, nil
}

// Create inserts a new record into the collection.
func (s *Store) Create(ctx context.Context, collectionID string, props docstore.Properties) (*docstore.Record, error) {
	if collectionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection id is required")
	}

	encoded, err := json.Marshal(props)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding properties")
	}

	doc := document{
		ID:           uuid.NewString(),
		CollectionID: collectionID,
		Properties:   encoded,
	}
	if err := s.conn.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating record")
	}
	return s.toRecord(doc)
}

// Update replaces the named properties on an existing record. Properties not
// present in props are left untouched, matching the hosted backend's
// partial-update semantics.
func (s *Store) Update(ctx context.Context, recordID string, props docstore.Properties) (*docstore.Record, error) {
	doc, err := s.load(ctx, recordID)
	if err != nil {
		return nil, err
	}

	var bag docstore.Properties
	if err := json.Unmarshal(doc.Properties, &bag); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding stored properties")
	}
	if bag == nil {
		bag = docstore.Properties{}
	}
	for name, value := range props {
		bag[name] = value
	}

	encoded, err := json.Marshal(bag)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding properties")
	}

	updates := map[string]any{
		"properties":       encoded,
		"last_edited_time": time.Now().UTC(),
	}
	if err := s.conn.WithContext(ctx).Model(&document{}).Where("id = ?", recordID).Updates(updates).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating record")
	}
	return s.Retrieve(ctx, recordID)
}

// Retrieve fetches a record by id.
func (s *Store) Retrieve(ctx context.Context, recordID string) (*docstore.Record, error) {
	doc, err := s.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return s.toRecord(*doc)
}

// FindOne scans the collection for the first record matching filter and
// returns (nil, nil) when nothing matches.
func (s *Store) FindOne(ctx context.Context, collectionID string, filter docstore.Filter) (*docstore.Record, error) {
	var docs []document
	err := s.conn.WithContext(ctx).
		Where("collection_id = ? AND archived = ?", collectionID, false).
		Order("created_time ASC").
		Find(&docs).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "querying collection")
	}

	for _, doc := range docs {
		record, err := s.toRecord(doc)
		if err != nil {
			return nil, err
		}
		if matches(record, filter) {
			return record, nil
		}
	}
	return nil, nil
}

// List returns up to pageSize records from the collection, oldest first.
func (s *Store) List(ctx context.Context, collectionID string, pageSize int) ([]docstore.Record, error) {
	if pageSize <= 0 {
		pageSize = 50
	}

	var docs []document
	err := s.conn.WithContext(ctx).
		Where("collection_id = ? AND archived = ?", collectionID, false).
		Order("created_time ASC").
		Limit(pageSize).
		Find(&docs).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing collection")
	}

	records := make([]docstore.Record, 0, len(docs))
	for _, doc := range docs {
		record, err := s.toRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// Archive tombstones a record; archived records vanish from queries but keep
// their data.
func (s *Store) Archive(ctx context.Context, recordID string) (*docstore.Record, error) {
	if _, err := s.load(ctx, recordID); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"archived":         true,
		"last_edited_time": time.Now().UTC(),
	}
	if err := s.conn.WithContext(ctx).Model(&document{}).Where("id = ?", recordID).Updates(updates).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archiving record")
	}
	return s.Retrieve(ctx, recordID)
}

// Close releases the underlying sqlite handle.
func (s *Store) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) load(ctx context.Context, recordID string) (*document, error) {
	if recordID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record id is required")
	}

	var doc document
	err := s.conn.WithContext(ctx).Where("id = ?", recordID).First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading record")
	}
	return &doc, nil
}

func (s *Store) toRecord(doc document) (*docstore.Record, error) {
	var bag docstore.Properties
	if len(doc.Properties) > 0 {
		if err := json.Unmarshal(doc.Properties, &bag); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding stored properties")
		}
	}
	if bag == nil {
		bag = docstore.Properties{}
	}
	return &docstore.Record{
		ID:             doc.ID,
		CreatedTime:    doc.CreatedTime.UTC().Format(time.RFC3339),
		LastEditedTime: doc.LastEditedTime.UTC().Format(time.RFC3339),
		Archived:       doc.Archived,
		Properties:     bag,
	}, nil
}

func matches(record *docstore.Record, filter docstore.Filter) bool {
	if filter.Property == "" {
		return true
	}
	value, ok := record.Properties[filter.Property]
	if !ok {
		return false
	}
	if filter.TitleEquals != nil {
		return titleText(value) == *filter.TitleEquals
	}
	if filter.RelationContains != nil {
		for _, ref := range value.Relation {
			if ref.ID == *filter.RelationContains {
				return true
			}
		}
		return false
	}
	return true
}

func titleText(value docstore.Value) string {
	var text string
	for _, segment := range value.Title {
		if segment.PlainText != "" {
			text += segment.PlainText
			continue
		}
		if segment.Text != nil {
			text += segment.Text.Content
		}
	}
	return text
}

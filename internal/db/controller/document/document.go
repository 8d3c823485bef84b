// Package document provides CRUD operations on the documents table.
package document

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWeddingSite/GoWeddingSite/internal/db/models"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

const (
	keyQueryPattern        = "collection = ? AND id = ?"
	collectionQueryPattern = "collection = ?"
)

var (
	// ErrDocumentNotFound is returned when a document is not found.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrKeyEmpty is returned when the collection or the id is empty.
	ErrKeyEmpty = errors.New("document collection and id cannot be empty")
	// ErrDocumentAlreadyExists is returned when creating a document that already exists.
	ErrDocumentAlreadyExists = errors.New("document already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func check(db *gorm.DB, collection, id string) error {
	if db == nil {
		return ErrDBNil
	}

	if collection == "" || id == "" {
		return ErrKeyEmpty
	}

	return nil
}

// Get retrieves a document by collection and id.
func Get(db *gorm.DB, collection, id string) (*models.Document, error) {
	if err := check(db, collection, id); err != nil {
		return nil, err
	}

	var doc models.Document
	result := db.Where(keyQueryPattern, collection, id).First(&doc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, result.Error
	}

	return &doc, nil
}

// List retrieves all documents of a collection ordered by id.
func List(db *gorm.DB, collection string) ([]models.Document, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var docs []models.Document
	result := db.Where(collectionQueryPattern, collection).Order("id").Find(&docs)
	if result.Error != nil {
		return nil, result.Error
	}

	return docs, nil
}

// Create inserts a new document.
func Create(db *gorm.DB, collection, id string, data []byte) (*models.Document, error) {
	if err := check(db, collection, id); err != nil {
		return nil, err
	}

	_, err := Get(db, collection, id)
	if err == nil {
		return nil, ErrDocumentAlreadyExists
	}
	if !errors.Is(err, ErrDocumentNotFound) {
		return nil, err
	}

	doc := &models.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
	}

	if result := db.Create(doc); result.Error != nil {
		return nil, result.Error
	}

	return doc, nil
}

// Set creates or replaces a document (upsert operation).
func Set(db *gorm.DB, collection, id string, data []byte) (*models.Document, error) {
	doc, err := Get(db, collection, id)
	if errors.Is(err, ErrDocumentNotFound) {
		return Create(db, collection, id, data)
	}
	if err != nil {
		return nil, err
	}

	doc.Data = data
	if result := db.Save(doc); result.Error != nil {
		return nil, result.Error
	}

	return doc, nil
}

// Update merges top-level fields into an existing document.
func Update(db *gorm.DB, collection, id string, fields map[string]any) (*models.Document, error) {
	if err := check(db, collection, id); err != nil {
		return nil, err
	}

	var doc *models.Document

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error

		if doc, err = Get(tx, collection, id); err != nil {
			return err
		}

		if doc.Data, err = model.MergeFields(doc.Data, fields); err != nil {
			return err
		}

		return tx.Save(doc).Error
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete deletes a document.
func Delete(db *gorm.DB, collection, id string) error {
	if err := check(db, collection, id); err != nil {
		return err
	}

	result := db.Where(keyQueryPattern, collection, id).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

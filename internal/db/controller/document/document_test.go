package document

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoWeddingSite/GoWeddingSite/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// every connection to :memory: opens its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Document{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedDocuments inserts test data into the database.
func seedDocuments(t *testing.T, db *gorm.DB, docs []models.Document) {
	t.Helper()
	for _, doc := range docs {
		err := db.Create(&doc).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		collection    string
		id            string
		seedData      []models.Document
		expectedError error
		expectedData  []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			collection:    "gifts",
			id:            "a",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty id",
			dbParam:       db,
			collection:    "gifts",
			expectedError: ErrKeyEmpty,
		},
		{
			name:          "document not found",
			dbParam:       db,
			collection:    "gifts",
			id:            "nonexistent",
			expectedError: ErrDocumentNotFound,
		},
		{
			name:       "same id in another collection",
			dbParam:    db,
			collection: "gifts",
			id:         "a",
			seedData: []models.Document{
				{Collection: "pages", ID: "a", Data: []byte(`{}`)},
			},
			expectedError: ErrDocumentNotFound,
		},
		{
			name:       "successful get",
			dbParam:    db,
			collection: "gifts",
			id:         "a",
			seedData: []models.Document{
				{Collection: "gifts", ID: "a", Data: []byte(`{"name":"Jantar"}`)},
			},
			expectedData: []byte(`{"name":"Jantar"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Clean database for each test
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM documents")
			}

			if tc.seedData != nil {
				seedDocuments(t, tc.dbParam, tc.seedData)
			}

			doc, err := Get(tc.dbParam, tc.collection, tc.id)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, doc)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.id, doc.ID)
				assert.Equal(t, tc.expectedData, doc.Data)
			}
		})
	}
}

func TestList(t *testing.T) {
	db := setupTestDB(t)

	seedDocuments(t, db, []models.Document{
		{Collection: "gifts", ID: "b", Data: []byte(`{}`)},
		{Collection: "gifts", ID: "a", Data: []byte(`{}`)},
		{Collection: "pages", ID: "home", Data: []byte(`{}`)},
	})

	docs, err := List(db, "gifts")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)

	docs, err = List(db, "messages")
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = List(nil, "gifts")
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	doc, err := Create(db, "gifts", "a", []byte(`{"name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "gifts", doc.Collection)

	_, err = Create(db, "gifts", "a", []byte(`{}`))
	require.ErrorIs(t, err, ErrDocumentAlreadyExists)

	_, err = Create(db, "", "a", nil)
	require.ErrorIs(t, err, ErrKeyEmpty)
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	_, err := Set(db, "site", "settings", []byte(`{"coupleName":"A"}`))
	require.NoError(t, err)

	_, err = Set(db, "site", "settings", []byte(`{"coupleName":"B"}`))
	require.NoError(t, err)

	doc, err := Get(db, "site", "settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"coupleName":"B"}`, string(doc.Data))

	var count int64
	db.Model(&models.Document{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	seedDocuments(t, db, []models.Document{
		{Collection: "gifts", ID: "a", Data: []byte(`{"name":"Jantar","status":"available","purchasedCount":1}`)},
	})

	doc, err := Update(db, "gifts", "a", map[string]any{"status": "confirmed", "purchasedCount": 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jantar","status":"confirmed","purchasedCount":2}`, string(doc.Data))

	_, err = Update(db, "gifts", "missing", map[string]any{"status": "pending"})
	require.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = Update(nil, "gifts", "a", nil)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	seedDocuments(t, db, []models.Document{
		{Collection: "gifts", ID: "a", Data: []byte(`{}`)},
	})

	require.NoError(t, Delete(db, "gifts", "a"))
	require.ErrorIs(t, Delete(db, "gifts", "a"), ErrDocumentNotFound)
	require.ErrorIs(t, Delete(nil, "gifts", "a"), ErrDBNil)
}

package profiles

import (
	"context"
	"database/sql"
	"testing"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE profiles (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  body TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSaveAndListRaw_FilteredByKind(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, models.KindPerson, "p1", []byte(`{"id":"p1","firstName":"Sam"}`)))
	require.NoError(t, r.Save(ctx, models.KindPet, "pet1", []byte(`{"id":"pet1","petName":"Rex"}`)))
	require.NoError(t, r.Save(ctx, models.KindPerson, "p2", []byte(`{"id":"p2","firstName":"Alex"}`)))

	raw, err := r.ListRaw(ctx, models.KindPerson)
	require.NoError(t, err)
	require.Len(t, raw, 2)

	first, ok := raw[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "p1", first["id"])
}

func TestSave_UpsertsByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, models.KindPerson, "p1", []byte(`{"id":"p1","firstName":"Sam"}`)))
	require.NoError(t, r.Save(ctx, models.KindPerson, "p1", []byte(`{"id":"p1","firstName":"Samuel"}`)))

	raw, err := r.ListRaw(ctx, models.KindPerson)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	m := raw[0].(map[string]any)
	assert.Equal(t, "Samuel", m["firstName"])
}

func TestListRaw_CorruptBodyBecomesNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO profiles(id, kind, body) VALUES ('x','PERSON','{broken')`)
	require.NoError(t, err)

	raw, err := r.ListRaw(ctx, models.KindPerson)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Nil(t, raw[0])
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, models.KindHousehold, "h1", []byte(`{"id":"h1","name":"Home"}`)))
	require.NoError(t, r.Delete(ctx, "h1"))
	assert.ErrorIs(t, r.Delete(ctx, "h1"), common.ErrorNotFound)
}

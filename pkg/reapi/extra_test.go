package reapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_KeepsUnknownFields(t *testing.T) {
	t.Parallel()

	input := `{"uid":1,"name":"cache","status":"active","sharding":true,"tags":[{"key":"team","value":"core"}],"dotted.key":1}`

	var db Database
	require.NoError(t, json.Unmarshal([]byte(input), &db))

	assert.Equal(t, 1, db.UID)
	assert.Equal(t, "cache", db.Name)
	require.NotNil(t, db.Status)
	assert.Equal(t, "active", *db.Status)

	require.Len(t, db.Extra, 3)
	assert.JSONEq(t, `true`, string(db.Extra["sharding"]))
	assert.JSONEq(t, `[{"key":"team","value":"core"}]`, string(db.Extra["tags"]))
	assert.NotContains(t, db.Extra, "name")

	out, err := json.Marshal(db)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestExtra_EmptyWhenEveryFieldIsKnown(t *testing.T) {
	t.Parallel()

	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{"uid":2,"addr":"10.0.0.2"}`), &n))
	assert.Nil(t, n.Extra)
}

func TestExtra_TypedFieldWins(t *testing.T) {
	t.Parallel()

	mod := Module{UID: "m1", ModuleName: "search", Extra: Extra{"module_name": json.RawMessage(`"stale"`)}}

	out, err := json.Marshal(mod)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uid":"m1","module_name":"search"}`, string(out))
}

func TestExtra_FieldTypeMismatch(t *testing.T) {
	t.Parallel()

	var db Database

	err := json.Unmarshal([]byte(`{"uid":"one"}`), &db)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "uid", typeErr.Field)
}

package schema

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa_automation/domain/entities"
	"qa_automation/infrastructure/storage"
)

var userSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"id", "name", "username", "email"},
	"properties": map[string]interface{}{
		"id":       map[string]interface{}{"type": "integer"},
		"name":     map[string]interface{}{"type": "string"},
		"username": map[string]interface{}{"type": "string"},
		"email":    map[string]interface{}{"type": "string", "format": "email"},
	},
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestValidate(t *testing.T) {
	v, err := NewInlineValidator("user", userSchema, testLogger())
	require.NoError(t, err)

	assert.True(t, v.Validate([]byte(`{"id": 1, "name": "Leanne Graham", "username": "Bret", "email": "Sincere@april.biz"}`)))
	assert.True(t, v.Validate(entities.User{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"}))
	assert.False(t, v.Validate(map[string]interface{}{"id": "one", "name": "Leanne Graham"}))
	assert.False(t, v.Validate([]byte(`{not json`)))
}

func TestValidateStrict(t *testing.T) {
	v, err := NewInlineValidator("user", userSchema, testLogger())
	require.NoError(t, err)

	err = v.ValidateStrict(map[string]interface{}{"id": 1, "name": "Leanne Graham", "username": "Bret"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrSchemaValidation))
	assert.Contains(t, err.Error(), "email")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "user", verr.SchemaName)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "required", verr.Errors[0].Validator)
}

func TestValidateWithDetails(t *testing.T) {
	v, err := NewInlineValidator("user", userSchema, testLogger())
	require.NoError(t, err)

	report := v.ValidateWithDetails(map[string]interface{}{"id": "one", "name": 5, "username": "Bret", "email": "Sincere@april.biz"})
	assert.False(t, report.Valid)
	assert.Equal(t, "user", report.SchemaName)
	require.Len(t, report.Errors, 2)

	paths := []string{report.Errors[0].Path, report.Errors[1].Path}
	assert.ElementsMatch(t, []string{"id", "name"}, paths)

	report = v.ValidateWithDetails(map[string]interface{}{"id": 1, "name": "Leanne Graham", "username": "Bret", "email": "Sincere@april.biz"})
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestNewValidatorFromStore(t *testing.T) {
	store, err := storage.NewFixtureStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SaveJSON("user_schema.json", userSchema))

	v, err := NewValidator(store, "user_schema.json", testLogger())
	require.NoError(t, err)
	assert.Equal(t, "user_schema.json", v.Name())
	assert.Equal(t, "object", v.Schema()["type"])

	_, err = NewValidator(store, "todo_schema.json", testLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrFixtureNotFound))
	assert.Contains(t, err.Error(), "user_schema.json")
}

func TestInvalidSchema(t *testing.T) {
	_, err := NewInlineValidator("broken", map[string]interface{}{"type": 12}, testLogger())
	assert.Error(t, err)
}

func TestRepositoryUserSchema(t *testing.T) {
	store, err := storage.NewFixtureStore("../../fixtures")
	require.NoError(t, err)

	v, err := NewValidator(store, "user_schema.json", testLogger())
	require.NoError(t, err)

	leanne := []byte(`{
		"id": 1,
		"name": "Leanne Graham",
		"username": "Bret",
		"email": "Sincere@april.biz",
		"address": {"street": "Kulas Light", "suite": "Apt. 556", "city": "Gwenborough", "zipcode": "92998-3874"},
		"phone": "1-770-736-8031 x56442",
		"website": "hildegard.org",
		"company": {"name": "Romaguera-Crona", "catchPhrase": "Multi-layered client-server neural-net", "bs": "harness real-time e-markets"}
	}`)
	assert.NoError(t, v.ValidateStrict(leanne))

	report := v.ValidateWithDetails([]byte(`{"id": 1, "name": "Leanne Graham", "username": "Bret", "email": "Sincere@april.biz", "address": {"street": "Kulas Light"}}`))
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Errors)
}

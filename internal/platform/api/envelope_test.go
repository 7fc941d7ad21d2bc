package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSuccess_RoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, 200, "all good", map[string]int{"answer": 42})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.IsSuccess())
	assert.Equal(t, "all good", env.Message)

	var data map[string]int
	require.NoError(t, env.DecodeData(&data))
	assert.Equal(t, 42, data["answer"])
}

func TestWriteSuccess_NilData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, 200, "ok", nil)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Empty(t, env.Data)
	assert.NoError(t, env.DecodeData(nil))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 404, "not found")

	assert.Equal(t, 404, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.IsSuccess())
	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, "not found", env.Message)
}

func TestDecodeData_MissingPayload(t *testing.T) {
	env := Envelope{Status: StatusSuccess}

	var out map[string]string
	assert.NoError(t, env.DecodeData(&out))
	assert.Nil(t, out)
}

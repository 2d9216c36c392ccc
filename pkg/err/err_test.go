package errprocess

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"video_share_service/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	m.Run()
}

func TestSet(t *testing.T) {
	err := Set("connect failed")
	assert.EqualError(t, err, "connect failed")
	assert.Equal(t, KindServer, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusCode(Unauthorized("no session")))
	assert.Equal(t, http.StatusBadRequest, StatusCode(Validation("bad field")))
	assert.Equal(t, http.StatusNotFound, StatusCode(NotFound("missing")))
	assert.Equal(t, http.StatusConflict, StatusCode(Conflict("duplicate")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(Server("boom")))
}

func TestFieldsOf(t *testing.T) {
	err := Validation("Title is required", FieldError{Field: "Title", Message: "Title is required"})
	fields := FieldsOf(err)
	assert.Len(t, fields, 1)
	assert.Equal(t, "Title", fields[0].Field)

	assert.Nil(t, FieldsOf(Set("plain")))
}

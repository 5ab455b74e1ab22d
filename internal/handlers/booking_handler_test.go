package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mesalibre/reserva-api/internal/httperr"
)

func TestRespondBusinessLookupError_RecordNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBusinessLookupError(c, gorm.ErrRecordNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "business_not_found", body.Code)
}

func TestRespondBusinessLookupError_OtherError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBusinessLookupError(c, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "failed_to_get_business", body.Code)
}

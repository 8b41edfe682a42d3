package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/givebridge/givebridge-backend/internal/models"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		want int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrUnauthorized, http.StatusForbidden},
		{models.ErrNotAssigned, http.StatusForbidden},
		{models.ErrAlreadyDecided, http.StatusConflict},
		{models.ErrInvalidState, http.StatusConflict},
		{models.ErrReasonRequired, http.StatusBadRequest},
		{models.ErrValidationFailed, http.StatusBadRequest},
		{models.ErrInvalidCoordinate, http.StatusBadRequest},
		{fmt.Errorf("donation lookup: %w", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("plain failure"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestPathIDInvalid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-hex"}}

	_, ok := pathID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/store"
)

// pathID parses the :id path parameter; a non-numeric id is a validation
// failure, not a lookup miss.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.RespondError(c, http.StatusBadRequest, "invalid_id",
			fmt.Errorf("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// respondStoreError maps store errors onto the API taxonomy: not-found is
// 404, conflicts are 400, anything else is a storage failure.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, store.ErrConflict):
		response.RespondError(c, http.StatusBadRequest, "duplicate", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "storage_error", err)
	}
}

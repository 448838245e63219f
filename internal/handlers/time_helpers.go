package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

const (
	dateLayout      = "2006-01-02"
	localTimeLayout = "2006-01-02T15:04"
)

// parseInstant accepts RFC3339, or a wall-clock "2006-01-02T15:04" read in
// the studio timezone.
func parseInstant(loc *time.Location, field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, httperr.ErrInvalidArgument(field, "is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localTimeLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, httperr.ErrInvalidArgument(field, "must be RFC3339 or YYYY-MM-DDTHH:MM")
}

func parseDate(loc *time.Location, field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, httperr.ErrInvalidArgument(field, "must be YYYY-MM-DD")
	}
	return t, nil
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.ErrInvalidArgument(name, fmt.Sprintf("invalid %s", name))
	}
	return uint(id), nil
}

func pageFromQuery(c *gin.Context) pagination.Page {
	number, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(pagination.DefaultSize)))
	return pagination.New(number, size)
}

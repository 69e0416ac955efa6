package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// filterParam reads an owning-id query parameter. present reports whether the
// parameter appeared at all; ok whether it parsed as an integer. List
// endpoints translate present-but-unparseable into an empty page rather than
// an error.
func filterParam(c *gin.Context, name string) (id uint, present bool, ok bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return 0, false, false
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, true, false
	}
	return uint(parsed), true, true
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(parsed), true
}

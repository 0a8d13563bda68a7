package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_client/internal/validation"
)

// bindForm decodes the JSON body into dst and runs the form schema on it.
// It writes the error response itself and reports whether to continue.
func bindForm(c *gin.Context, v *validation.Validator, log *logrus.Logger, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Warnf("Failed to bind JSON for %s %s: %v", c.Request.Method, c.FullPath(), err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := v.Validate(dst); err != nil {
		if fields := validation.Fields(err); fields != nil {
			ValidationErrorResponse(c, fields)
			return false
		}
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// slugify lowercases s and joins its alphanumeric runs with hyphens.
func slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

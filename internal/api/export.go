package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"wefixit/internal/apperr"
)

const csvTimeFormat = "2006-01-02 15:04:05"

// writeCSV streams rows (a pointer to a slice of csv-tagged structs) as an
// attachment.
func writeCSV(c *gin.Context, l *zap.Logger, filename string, rows any) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(200)
	if err := gocsv.Marshal(rows, c.Writer); err != nil {
		// headers are already out; all we can do is log
		l.Error("CSV export failed", zap.String("file", filename), zap.Error(err))
	}
}

// wantsCSV reports whether ?format asks for the CSV export. Any value other
// than csv is rejected.
func wantsCSV(c *gin.Context) (bool, error) {
	switch c.Query("format") {
	case "":
		return false, nil
	case "csv":
		return true, nil
	default:
		return false, apperr.Validation("invalid query", "format", "must be csv")
	}
}

// csvCell keeps spreadsheet apps from evaluating user text as a formula.
func csvCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

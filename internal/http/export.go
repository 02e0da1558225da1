package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/exporters"
)

type ExportController struct {
	reader exporters.BookReader
	now    func() time.Time
}

func NewExportController(reader exporters.BookReader) *ExportController {
	return &ExportController{reader: reader, now: time.Now}
}

// DownloadMarkdown sends the whole reading list as one markdown file.
// GET /export
func (controller *ExportController) DownloadMarkdown(c *gin.Context) {
	rows, err := controller.reader.ListBooks(c.Request.Context())
	if err != nil {
		uiInternalError(c, err, "export books")
		return
	}

	now := controller.now()
	markdown := exporters.GenerateMarkdown(rows, now)
	filename := fmt.Sprintf("books-read-%s.md", now.Format("2006-01-02"))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown))
}

package exporters

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// FileExporter writes the reading log to a markdown file. The file is
// replaced atomically so readers never see a half-written export.
type FileExporter struct {
	reader BookReader
	now    func() time.Time
}

func NewFileExporter(reader BookReader) *FileExporter {
	return &FileExporter{reader: reader, now: time.Now}
}

// Export renders every book and writes the document to path.
func (e *FileExporter) Export(ctx context.Context, path string) (ExportResult, error) {
	rows, err := e.reader.ListBooks(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to load books: %w", err)
	}

	doc := GenerateMarkdown(rows, e.now())
	if err := atomic.WriteFile(path, strings.NewReader(doc)); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write export: %w", err)
	}

	result := ExportResult{BooksExported: len(rows), Path: path}
	for _, row := range rows {
		if row.Review() != "" {
			result.ReviewsWritten++
		}
	}

	log.Printf("Exported %d books to %s", result.BooksExported, path)
	return result, nil
}

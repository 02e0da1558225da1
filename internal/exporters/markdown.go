package exporters

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// GenerateMarkdown renders the whole reading log as a single markdown
// document with YAML frontmatter, one section per book.
func GenerateMarkdown(rows []entities.BookRow, generatedAt time.Time) string {
	var builder strings.Builder

	reviewed := lo.CountBy(rows, func(r entities.BookRow) bool { return r.Review() != "" })

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: reading_log\n")
	fmt.Fprintf(&builder, "created_at: %s\n", generatedAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "books: %d\n", len(rows))
	fmt.Fprintf(&builder, "reviews: %d\n", reviewed)
	fmt.Fprintf(&builder, "tags: [books, reviews]\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# Books read\n\n")

	if len(rows) == 0 {
		fmt.Fprintf(&builder, "_No books yet._\n")
		return builder.String()
	}

	for _, row := range rows {
		builder.WriteString(GenerateBookMarkdown(row))
	}
	return builder.String()
}

// GenerateBookMarkdown renders one book section.
func GenerateBookMarkdown(row entities.BookRow) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "## %s\n\n", escapeHeading(row.Title))
	if author := row.AuthorName(); author != "" {
		fmt.Fprintf(&builder, "*by %s*\n\n", author)
	}
	if row.ReviewDate != nil {
		fmt.Fprintf(&builder, "Reviewed: %s\n\n", row.ReviewDate.Format("2006-01-02"))
	}
	if review := strings.TrimSpace(row.Review()); review != "" {
		fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(review, "\n", "\n> "))
	}
	return builder.String()
}

func escapeHeading(title string) string {
	return strings.ReplaceAll(title, "\n", " ")
}

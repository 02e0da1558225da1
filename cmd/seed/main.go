// Command seed creates a fresh reading log database with sample books.
// Usage: go run ./cmd/seed [--db path/to/books.db]
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/samber/lo"
	flag "github.com/spf13/pflag"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const defaultSeedDatabasePath = "./demo/gelezen_boeken.db"

type sampleBook struct {
	books.NewBook
	ReadOn time.Time
	Genre  string
}

func main() {
	dbPath := flag.String("db", defaultSeedDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Generating sample database at %s...", *dbPath)

	// Start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	genres := createGenres(db)

	ctx := context.Background()
	for _, sample := range sampleBooks() {
		id, err := repo.AddBookWithReview(ctx, sample.NewBook)
		if err != nil {
			log.Printf("Failed to save book %s: %v", sample.Title, err)
			continue
		}

		err = db.DB.Model(&entities.Review{}).Where("boek_id = ?", id).
			Update("datum_review", sample.ReadOn.Format("2006-01-02")).Error
		if err != nil {
			log.Printf("Failed to date review of %s: %v", sample.Title, err)
		}

		if genre, ok := genres[sample.Genre]; ok {
			if err := db.DB.Create(&entities.BookGenre{BookID: id, GenreID: genre.ID}).Error; err != nil {
				log.Printf("Failed to link genre %s to %s: %v", sample.Genre, sample.Title, err)
			}
		}
		log.Printf("Saved: %s by %s %s", sample.Title, sample.FirstName, sample.LastName)
	}

	log.Println("Sample database generated successfully!")
}

func createGenres(db *database.Database) map[string]entities.Genre {
	names := map[string]string{
		"fiction":     "Novels and short stories",
		"philosophy":  "Thinking about thinking",
		"non-fiction": "Everything that happened",
	}

	genres := make(map[string]entities.Genre)
	for name, description := range names {
		genre := entities.Genre{Name: lo.ToPtr(name), Description: lo.ToPtr(description)}
		if err := db.DB.Create(&genre).Error; err != nil {
			log.Printf("Failed to create genre %s: %v", name, err)
			continue
		}
		genres[name] = genre
	}
	return genres
}

func sampleBooks() []sampleBook {
	day := func(year int, month time.Month, d int) time.Time {
		return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	}

	return []sampleBook{
		{
			NewBook: books.NewBook{Title: "Meditations", FirstName: "Marcus", LastName: "Aurelius",
				ReviewText: "Short entries, best read a few at a time."},
			ReadOn: day(2023, time.January, 14),
			Genre:  "philosophy",
		},
		{
			NewBook: books.NewBook{Title: "Pride and Prejudice", FirstName: "Jane", LastName: "Austen",
				ReviewText: "Sharper and funnier than I remembered."},
			ReadOn: day(2023, time.March, 2),
			Genre:  "fiction",
		},
		{
			NewBook: books.NewBook{Title: "Max Havelaar", FirstName: "Multatuli", LastName: "",
				ReviewText: "The frame story takes a while, the ending is worth it."},
			ReadOn: day(2023, time.June, 21),
			Genre:  "fiction",
		},
		{
			NewBook: books.NewBook{Title: "The Origin of Species", FirstName: "Charles", LastName: "Darwin",
				ReviewText: "Dense, but the pigeon chapter is a delight."},
			ReadOn: day(2023, time.September, 9),
			Genre:  "non-fiction",
		},
		{
			NewBook: books.NewBook{Title: "Frankenstein", FirstName: "Mary", LastName: "Shelley",
				ReviewText: ""},
			ReadOn: day(2024, time.February, 11),
			Genre:  "fiction",
		},
	}
}

package entities

import "time"

// Book is a catalog entry. Only Title is written by the application; the
// remaining columns exist in the schema for hand-edited or imported data.
type Book struct {
	ID               uint    `gorm:"primaryKey;column:id" json:"id"`
	Title            string  `gorm:"column:titel;not null" json:"title"`
	PublicationYear  *int    `gorm:"column:jaar_van_uitgave" json:"publication_year,omitempty"`
	PublicationPlace *string `gorm:"column:plaats_van_uitgave" json:"publication_place,omitempty"`
	Publisher        *string `gorm:"column:uitgever" json:"publisher,omitempty"`
	PageCount        *int    `gorm:"column:aantal_paginas" json:"page_count,omitempty"`
	OriginalLanguage *string `gorm:"column:originele_taal" json:"original_language,omitempty"`
	Summary          *string `gorm:"column:samenvatting" json:"summary,omitempty"`
}

func (Book) TableName() string {
	return "boek"
}

type Author struct {
	ID          uint       `gorm:"primaryKey;column:id" json:"id"`
	FirstName   string     `gorm:"column:voornaam" json:"first_name"`
	LastName    string     `gorm:"column:achternaam" json:"last_name"`
	Age         *int       `gorm:"column:leeftijd" json:"age,omitempty"`
	Nationality *string    `gorm:"column:nationaliteit" json:"nationality,omitempty"`
	BirthDate   *time.Time `gorm:"column:geboortedatum" json:"birth_date,omitempty"`
	Gender      *string    `gorm:"column:geslacht" json:"gender,omitempty"`
}

func (Author) TableName() string {
	return "auteur"
}

// Genre is part of the schema but no flow reads or writes it yet.
type Genre struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	Name        *string `gorm:"column:naam" json:"name,omitempty"`
	Description *string `gorm:"column:beschrijving" json:"description,omitempty"`
}

func (Genre) TableName() string {
	return "genre"
}

// Review holds the free-text reflection on a book. ReviewDate is filled in by
// the database default (the current date) when left nil on insert.
type Review struct {
	ID         uint       `gorm:"primaryKey;column:id" json:"id"`
	BookID     uint       `gorm:"column:boek_id" json:"book_id"`
	Text       string     `gorm:"column:reviewtekst" json:"text"`
	ReviewDate *time.Time `gorm:"column:datum_review" json:"review_date,omitempty"`
	Rating     *int       `gorm:"column:beoordeling" json:"rating,omitempty"`
	ReadDate   *time.Time `gorm:"column:leesdatum" json:"read_date,omitempty"`
	TimesRead  *int       `gorm:"column:aantal_keren_gelezen" json:"times_read,omitempty"`
}

func (Review) TableName() string {
	return "review"
}

type BookAuthor struct {
	BookID   uint `gorm:"primaryKey;column:boek_id" json:"book_id"`
	AuthorID uint `gorm:"primaryKey;column:auteur_id" json:"author_id"`
}

func (BookAuthor) TableName() string {
	return "boek_auteur"
}

type BookGenre struct {
	BookID  uint `gorm:"primaryKey;column:boek_id" json:"book_id"`
	GenreID uint `gorm:"primaryKey;column:genre_id" json:"genre_id"`
}

func (BookGenre) TableName() string {
	return "boek_genre"
}

// BookRow is the flattened book/author/review projection used by every list,
// search and detail view. ReviewText and ReviewDate are nil for a book that
// has no review row.
type BookRow struct {
	BookID     uint       `json:"book_id"`
	Title      string     `json:"title"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	ReviewText *string    `json:"review_text"`
	ReviewDate *time.Time `json:"review_date,omitempty"`
}

// AuthorName joins first and last name for display.
func (r BookRow) AuthorName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// Review returns the review text or an empty string when there is none.
func (r BookRow) Review() string {
	if r.ReviewText == nil {
		return ""
	}
	return *r.ReviewText
}

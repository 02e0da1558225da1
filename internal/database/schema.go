package database

// Table and column names match databases written by earlier versions of the
// reading log, so an existing file can be opened as-is.
const (
	createBookTable = `
CREATE TABLE IF NOT EXISTS boek (
	id INTEGER PRIMARY KEY,
	titel TEXT NOT NULL,
	jaar_van_uitgave INTEGER,
	plaats_van_uitgave TEXT,
	uitgever TEXT,
	aantal_paginas INTEGER,
	originele_taal TEXT,
	samenvatting TEXT
)`

	createAuthorTable = `
CREATE TABLE IF NOT EXISTS auteur (
	id INTEGER PRIMARY KEY,
	voornaam TEXT,
	achternaam TEXT,
	leeftijd INTEGER,
	nationaliteit TEXT,
	geboortedatum DATE,
	geslacht TEXT
)`

	createGenreTable = `
CREATE TABLE IF NOT EXISTS genre (
	id INTEGER PRIMARY KEY,
	naam TEXT,
	beschrijving TEXT
)`

	createReviewTable = `
CREATE TABLE IF NOT EXISTS review (
	id INTEGER PRIMARY KEY,
	boek_id INTEGER,
	reviewtekst TEXT,
	datum_review DATE DEFAULT (DATE('now')),
	beoordeling INTEGER,
	leesdatum DATE,
	aantal_keren_gelezen INTEGER,
	FOREIGN KEY (boek_id) REFERENCES boek(id) ON DELETE CASCADE
)`

	createBookAuthorTable = `
CREATE TABLE IF NOT EXISTS boek_auteur (
	boek_id INTEGER,
	auteur_id INTEGER,
	PRIMARY KEY (boek_id, auteur_id),
	FOREIGN KEY (boek_id) REFERENCES boek(id) ON DELETE CASCADE,
	FOREIGN KEY (auteur_id) REFERENCES auteur(id) ON DELETE CASCADE
)`

	createBookGenreTable = `
CREATE TABLE IF NOT EXISTS boek_genre (
	boek_id INTEGER,
	genre_id INTEGER,
	PRIMARY KEY (boek_id, genre_id),
	FOREIGN KEY (boek_id) REFERENCES boek(id) ON DELETE CASCADE,
	FOREIGN KEY (genre_id) REFERENCES genre(id) ON DELETE CASCADE
)`

	createReviewBookIndex     = `CREATE INDEX IF NOT EXISTS idx_review_boek_id ON review(boek_id)`
	createBookAuthorIdxAuthor = `CREATE INDEX IF NOT EXISTS idx_boek_auteur_auteur_id ON boek_auteur(auteur_id)`
)

var schemaStatements = []string{
	createBookTable,
	createAuthorTable,
	createGenreTable,
	createReviewTable,
	createBookAuthorTable,
	createBookGenreTable,
	createReviewBookIndex,
	createBookAuthorIdxAuthor,
}

package testutil

import (
	"time"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/entity"
)

// TestBook is a fixture book for handler tests.
var TestBook = entity.Book{
	ID:            789,
	Title:         "Dune",
	Author:        "Herbert",
	PublishedDate: mustDate("1965-08-01"),
	Summary:       "A desert planet and its spice",
	Genre:         "SciFi",
}

func mustDate(s string) entity.Date {
	d, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// GenerateTestToken generates a valid bearer token for testing.
func GenerateTestToken(secret, username string) string {
	token, _ := auth.GenerateToken(secret, username, time.Hour)
	return token
}

// GenerateExpiredToken generates a bearer token that is already expired.
func GenerateExpiredToken(secret, username string) string {
	token, _ := auth.GenerateToken(secret, username, -time.Hour)
	return token
}

package main

import (
	"log"
	"os"

	"github.com/bookworm-labs/book-review-hub/pkg/database"
	"github.com/bookworm-labs/book-review-hub/pkg/utils"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/bookhub.db"
	}
	if err := database.InitDatabase(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.DB.Close()

	hash, err := utils.HashPassword("Password1")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	_, err = database.DB.Exec(`INSERT OR IGNORE INTO users (id, username, email, password_hash) VALUES
		('seed-reader-1', 'reader_one', 'reader1@example.com', ?),
		('seed-reader-2', 'reader_two', 'reader2@example.com', ?)`, hash, hash)
	if err != nil {
		log.Fatalf("Failed to insert users: %v", err)
	}

	_, err = database.DB.Exec(`INSERT OR IGNORE INTO books (id, title, author, description, genre, year, added_by) VALUES
		('seed-dune', 'Dune', 'Frank Herbert', 'Politics and prophecy on the desert planet Arrakis', 'Science Fiction', 1965, 'seed-reader-1'),
		('seed-hobbit', 'The Hobbit', 'J.R.R. Tolkien', 'Bilbo Baggins walks out his front door', 'Fantasy', 1937, 'seed-reader-1'),
		('seed-neuromancer', 'Neuromancer', 'William Gibson', 'A washed-up hacker takes one last job', 'Science Fiction', 1984, 'seed-reader-2'),
		('seed-emma', 'Emma', 'Jane Austen', 'Matchmaking gone sideways in Highbury', 'Romance', 1815, 'seed-reader-2'),
		('seed-piranesi', 'Piranesi', 'Susanna Clarke', 'A house with infinite halls and a faulty memory', 'Fantasy', 2020, 'seed-reader-1'),
		('seed-martian', 'The Martian', 'Andy Weir', 'Stranded on Mars with potatoes and duct tape', 'Science Fiction', 2011, 'seed-reader-2'),
		('seed-circe', 'Circe', 'Madeline Miller', 'The witch of Aiaia tells her own story', 'Fantasy', 2018, 'seed-reader-1')`)
	if err != nil {
		log.Fatalf("Failed to insert books: %v", err)
	}

	_, err = database.DB.Exec(`INSERT OR IGNORE INTO reviews (id, book_id, user_id, rating, review_text) VALUES
		('seed-rev-1', 'seed-dune', 'seed-reader-2', 5, 'The spice must flow.'),
		('seed-rev-2', 'seed-hobbit', 'seed-reader-2', 4, 'Comfort reading at its finest.'),
		('seed-rev-3', 'seed-neuromancer', 'seed-reader-1', 4, 'Still feels ahead of its time.'),
		('seed-rev-4', 'seed-piranesi', 'seed-reader-2', 5, 'Quiet, strange, and beautiful.'),
		('seed-rev-5', 'seed-martian', 'seed-reader-1', 3, 'Fun, though the jokes wear thin.')`)
	if err != nil {
		log.Fatalf("Failed to insert reviews: %v", err)
	}

	log.Println("Seed data inserted successfully")
}

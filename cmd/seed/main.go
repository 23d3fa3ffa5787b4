package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/partymoa/partymoa-server/config"
	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	userID := "demoUser1"
	nickname := "Demo"
	password := "pass1234"
	hash, err := helpers.NewHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (user_id, nickname, password_hash, points, total_points)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE SET nickname = EXCLUDED.nickname
		RETURNING id
	`, userID, nickname, hash, entity.DefaultPoints).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s userId=%s nickname=%s password=%s\n", id, userID, nickname, password)

	posts := []struct {
		ID     string
		Title  string
		Closed int
	}{
		{"post-board-games", "Friday board game night", 0},
		{"post-bowling", "Weekend bowling meetup", 0},
		{"post-escape-room", "Escape room crew (closed)", 1},
	}
	for _, p := range posts {
		if _, err := db.Exec(`
			INSERT INTO posts (id, title, closed)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, closed = EXCLUDED.closed
		`, p.ID, p.Title, p.Closed); err != nil {
			log.Fatalf("failed to seed post %s: %v", p.ID, err)
		}
	}
	fmt.Printf("seeded %d posts\n", len(posts))
}

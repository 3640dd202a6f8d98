package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/quizhost/go/internal/config"
	"github.com/mcdev12/quizhost/go/internal/dbconfig"
	"github.com/mcdev12/quizhost/go/internal/quizzes"
)

func main() {
	path := flag.String("file", "go/internal/assets/sample_quiz.yaml", "YAML fixture with quizzes to seed")
	flag.Parse()

	config.LoadDotEnv()

	// 1) Load the YAML fixture
	fixtures, err := loadFixtures(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixtures: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "database config: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert quizzes that are not there yet
	var (
		total    = len(fixtures)
		inserted int
		skipped  int
		errs     int
	)
	for _, q := range fixtures {
		created, err := seedQuiz(ctx, pool, q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error seeding quiz %q: %v\n", q.Title, err)
			errs++
			continue
		}
		if created {
			inserted++
		} else {
			skipped++
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Quiz seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}

func loadFixtures(path string) ([]quizzes.CreateQuizRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseFixtures(data)
}

func parseFixtures(data []byte) ([]quizzes.CreateQuizRequest, error) {
	var fixtures []quizzes.CreateQuizRequest
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	for i, q := range fixtures {
		if q.Title == "" {
			return nil, fmt.Errorf("quiz %d: title is required", i)
		}
		seen := make(map[int]bool, len(q.Questions))
		for _, question := range q.Questions {
			if question.Order < 0 || seen[question.Order] {
				return nil, fmt.Errorf("quiz %q: bad question order %d", q.Title, question.Order)
			}
			seen[question.Order] = true
		}
	}
	return fixtures, nil
}

// seedQuiz inserts a quiz and its questions. A quiz with the same title that
// already has questions is left alone; an empty one gets the questions.
func seedQuiz(ctx context.Context, pool *pgxpool.Pool, q quizzes.CreateQuizRequest) (bool, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var (
		quizID    uuid.UUID
		questions int
	)
	err = tx.QueryRow(ctx, `
            SELECT q.id, COUNT(qs.id)
            FROM quizzes q
            LEFT JOIN questions qs ON qs.quiz_id = q.id
            WHERE q.title = $1
            GROUP BY q.id
            ORDER BY q.created_at
            LIMIT 1
        `, q.Title).Scan(&quizID, &questions)
	switch {
	case err == nil:
		if questions > 0 {
			return false, nil
		}
	case errors.Is(err, pgx.ErrNoRows):
		quizID = uuid.New()
		if _, err := tx.Exec(ctx,
			`INSERT INTO quizzes (id, title, description) VALUES ($1, $2, $3)`,
			quizID, q.Title, q.Description,
		); err != nil {
			return false, fmt.Errorf("insert quiz: %w", err)
		}
	default:
		return false, err
	}

	for _, question := range q.Questions {
		if _, err := tx.Exec(ctx, `
            INSERT INTO questions (id, quiz_id, position, text, answer)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (quiz_id, position) DO NOTHING
        `,
			uuid.New(), quizID, question.Order, question.Text, question.Answer,
		); err != nil {
			return false, fmt.Errorf("insert question %d: %w", question.Order, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

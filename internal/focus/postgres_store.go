package focus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore keeps focus state in focus_tasks and focus_suggestions.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) CurrentTask(ctx context.Context, userID int) (Task, bool, error) {
	var t Task
	err := s.DB.QueryRowContext(ctx, `
		SELECT task_id, description, set_at
		FROM focus_tasks
		WHERE user_id = $1
	`, userID).Scan(&t.ID, &t.Description, &t.SetAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, false, nil
	}
	if err != nil {
		return Task{}, false, fmt.Errorf("select focus task: %w", err)
	}
	return t, true, nil
}

func (s *PostgresStore) SetCurrentTask(ctx context.Context, userID int, task Task) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM focus_suggestions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete focus suggestion: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO focus_tasks (user_id, task_id, description, set_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			task_id = EXCLUDED.task_id,
			description = EXCLUDED.description,
			set_at = EXCLUDED.set_at
	`, userID, task.ID, task.Description, task.SetAt)
	if err != nil {
		return fmt.Errorf("upsert focus task: %w", err)
	}

	return tx.Commit()
}

func (s *PostgresStore) ClearCurrentTask(ctx context.Context, userID int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM focus_suggestions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete focus suggestion: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM focus_tasks WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete focus task: %w", err)
	}

	return tx.Commit()
}

func (s *PostgresStore) Suggestion(ctx context.Context, userID int) (Suggestion, bool, error) {
	var sug Suggestion
	err := s.DB.QueryRowContext(ctx, `
		SELECT t.task_id, t.description, t.set_at, s.text, s.created_at
		FROM focus_suggestions s
		JOIN focus_tasks t ON t.user_id = s.user_id AND t.task_id = s.task_id
		WHERE s.user_id = $1
	`, userID).Scan(
		&sug.ForTask.ID,
		&sug.ForTask.Description,
		&sug.ForTask.SetAt,
		&sug.Text,
		&sug.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Suggestion{}, false, nil
	}
	if err != nil {
		return Suggestion{}, false, fmt.Errorf("select focus suggestion: %w", err)
	}
	return sug, true, nil
}

// SetSuggestion inserts only when the user's current task row still matches,
// in a single statement.
func (s *PostgresStore) SetSuggestion(ctx context.Context, userID int, sug Suggestion) error {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO focus_suggestions (user_id, task_id, text, created_at)
		SELECT t.user_id, t.task_id, $3, $4
		FROM focus_tasks t
		WHERE t.user_id = $1
		  AND (CASE WHEN $2 <> '' THEN t.task_id = $2 ELSE t.description = $5 END)
		ON CONFLICT (user_id) DO UPDATE SET
			task_id = EXCLUDED.task_id,
			text = EXCLUDED.text,
			created_at = EXCLUDED.created_at
	`, userID, sug.ForTask.ID, sug.Text, sug.CreatedAt, sug.ForTask.Description)
	if err != nil {
		return fmt.Errorf("upsert focus suggestion: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrStaleTask
	}
	return nil
}

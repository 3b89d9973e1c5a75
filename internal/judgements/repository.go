package judgements

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/vouch/pkg/query"
	"github.com/JaimeStill/vouch/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a PostgreSQL-backed System.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "judgements"),
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Record, error) {
	if cmd.ImagePath == "" {
		return nil, fmt.Errorf("%w: image path required", ErrInvalidCommand)
	}

	q := `
		INSERT INTO photo_judgements(image_path, ocr_text, is_identified)
		VALUES ($1, $2, $3)
		RETURNING ` + columns

	args := []any{cmd.ImagePath, cmd.ExtractedText, cmd.IsIdentified}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRecord)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrPersistence, ErrDuplicate, ErrPersistence)
	}

	r.logger.Info(
		"judgement created",
		"id", rec.ID,
		"image_path", rec.ImagePath,
		"is_identified", rec.IsIdentified,
	)
	return &rec, nil
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Record, error) {
	qb := query.NewBuilder(projection, insertionOrder)
	filters.Apply(qb)

	q, args := qb.Build()
	records, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrPersistence, err)
	}
	return records, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate, ErrPersistence)
	}
	return &rec, nil
}

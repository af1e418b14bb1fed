package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/postgres/generated"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// PostingRepository implements usecase.PostingRepository. Instructions are
// immutable once committed; movements and metadata are stored as JSONB.
type PostingRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewPostingRepository creates a new PostingRepository.
func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create persists a posting instruction within a transaction.
func (r *PostingRepository) Create(ctx context.Context, tx usecase.Transaction, accountID string, posting *domain.PostingInstruction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	movements, err := json.Marshal(posting.Movements)
	if err != nil {
		return err
	}

	var metadata []byte
	if posting.Metadata != nil {
		metadata, err = json.Marshal(posting.Metadata)
		if err != nil {
			return err
		}
	}

	return queries.CreatePosting(ctx, generated.CreatePostingParams{
		ID:          posting.ID,
		AccountID:   accountID,
		Event:       posting.Event,
		Description: posting.Description,
		ValueAt:     timeToPgTimestamptz(posting.ValueAt),
		Movements:   movements,
		Metadata:    metadata,
		CreatedAt:   timeToPgTimestamptz(time.Now().UTC()),
	})
}

// ListByAccount retrieves committed instructions for an account, newest
// first.
func (r *PostingRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.PostingInstruction, error) {
	rows, err := r.queries.GetPostingsByAccount(ctx, generated.GetPostingsByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	postings := make([]*domain.PostingInstruction, 0, len(rows))
	for _, row := range rows {
		posting, err := rowToPosting(row)
		if err != nil {
			return nil, err
		}

		postings = append(postings, posting)
	}

	return postings, nil
}

func rowToPosting(row generated.Posting) (*domain.PostingInstruction, error) {
	var movements []domain.Movement
	if err := json.Unmarshal(row.Movements, &movements); err != nil {
		return nil, err
	}

	var metadata map[string]string
	if row.Metadata != nil {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return &domain.PostingInstruction{
		ID:          row.ID,
		Event:       row.Event,
		Description: row.Description,
		ValueAt:     row.ValueAt.Time,
		Movements:   movements,
		Metadata:    metadata,
	}, nil
}

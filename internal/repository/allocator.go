package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Sequence names backing identifier allocation per collection.
const (
	CourseSequence     = "courses_id_seq"
	AssignmentSequence = "assignments_id_seq"
	CategorySequence   = "grade_categories_id_seq"
)

// SequenceAllocator hands out numeric identifiers from Postgres sequences.
// Services receive it behind an interface so tests can inject a counter.
type SequenceAllocator struct {
	db *sqlx.DB
}

// NewSequenceAllocator creates a sequence-backed allocator.
func NewSequenceAllocator(db *sqlx.DB) *SequenceAllocator {
	return &SequenceAllocator{db: db}
}

// NextID reserves and returns the next identifier for the given sequence.
func (a *SequenceAllocator) NextID(ctx context.Context, sequence string) (int64, error) {
	var id int64
	if err := a.db.GetContext(ctx, &id, `SELECT nextval($1)`, sequence); err != nil {
		return 0, fmt.Errorf("allocate id from %s: %w", sequence, err)
	}
	return id, nil
}

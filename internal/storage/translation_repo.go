package storage

import (
	"context"
	"fmt"
)

// TranslationCallRecord is one row of the translation audit trail. Only
// metadata is recorded; section text and rewritten output are never stored.
type TranslationCallRecord struct {
	CallID      string
	Provider    string
	Model       string
	Tone        int
	Heading     string
	InputChars  int
	OutputChars int
	Status      string
	ErrorType   string
	DurationMS  int64
}

type TranslationRepo struct {
	db *DB
}

func NewTranslationRepo(db *DB) *TranslationRepo {
	return &TranslationRepo{db: db}
}

func (r *TranslationRepo) Insert(ctx context.Context, rec TranslationCallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO translation_calls(call_id, provider, model, tone, heading, input_chars, output_chars, status, error_type, duration_ms)
VALUES (COALESCE(NULLIF($1,'')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, NULLIF($9,''), $10)`,
		rec.CallID, rec.Provider, rec.Model, rec.Tone, rec.Heading, rec.InputChars, rec.OutputChars, rec.Status, rec.ErrorType, rec.DurationMS)
	if err != nil {
		return fmt.Errorf("insert translation call: %w", err)
	}
	return nil
}

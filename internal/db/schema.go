package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    generated TEXT,
    total_texts INTEGER,
    analysis_version TEXT,
    artifact_path TEXT
);

CREATE TABLE IF NOT EXISTS texts (
    id INTEGER PRIMARY KEY,
    run_id TEXT,
    text_id TEXT,
    title TEXT,
    word_count INTEGER,
    unique_words INTEGER,
    type_token_ratio REAL,
    compound REAL,
    label TEXT,
    flesch_reading_ease REAL
);

CREATE TABLE IF NOT EXISTS overlaps (
    id INTEGER PRIMARY KEY,
    run_id TEXT,
    text1 TEXT,
    text2 TEXT,
    shared_words INTEGER,
    jaccard REAL
);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

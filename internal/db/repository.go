package db

import (
	"database/sql"
	"fmt"

	"corpus_dashboard/internal/report"
)

// PersistRun records one run with its per-text headline numbers and pairwise
// overlaps. Re-persisting the same run id replaces the earlier rows.
func PersistRun(dbPath, artifactPath string, a *report.Artifact) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	runID := a.Metadata.RunID
	for _, table := range []string{"texts", "overlaps"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE run_id = ?`, runID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO runs(id, generated, total_texts, analysis_version, artifact_path) VALUES(?,?,?,?,?)`,
		runID,
		a.Metadata.Generated,
		a.Metadata.TotalTexts,
		a.Metadata.AnalysisVersion,
		artifactPath,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, t := range a.Texts {
		var flesch sql.NullFloat64
		if v := t.StyleMetrics.Readability.FleschReadingEase; v != nil {
			flesch = sql.NullFloat64{Float64: *v, Valid: true}
		}
		if _, err := tx.Exec(
			`INSERT INTO texts(run_id, text_id, title, word_count, unique_words, type_token_ratio, compound, label, flesch_reading_ease) VALUES(?,?,?,?,?,?,?,?,?)`,
			runID,
			t.ID,
			t.Title,
			t.WordCount,
			t.UniqueWords,
			t.StyleMetrics.Vocabulary.TypeTokenRatio,
			t.Sentiment.Vader.Compound,
			t.Sentiment.Label,
			flesch,
		); err != nil {
			return fmt.Errorf("insert text %s: %w", t.ID, err)
		}
	}

	for _, p := range a.Comparative.VocabularyOverlap.Pairs {
		if _, err := tx.Exec(
			`INSERT INTO overlaps(run_id, text1, text2, shared_words, jaccard) VALUES(?,?,?,?,?)`,
			runID,
			p.Text1,
			p.Text2,
			p.SharedWords,
			p.Jaccard,
		); err != nil {
			return fmt.Errorf("insert overlap %s/%s: %w", p.Text1, p.Text2, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type RunRecord struct {
	ID              string
	Generated       string
	TotalTexts      int
	AnalysisVersion string
	ArtifactPath    string
}

// ListRuns returns recorded runs, newest first.
func ListRuns(dbPath string) ([]RunRecord, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT id, generated, total_texts, analysis_version, artifact_path FROM runs ORDER BY generated DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	out := []RunRecord{}
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Generated, &r.TotalTexts, &r.AnalysisVersion, &r.ArtifactPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}

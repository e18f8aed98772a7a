// Package sqlpractice executes practice queries against a throwaway
// in-memory SQLite database built from a question's schema, and checks the
// result against the question's expected rows.
package sqlpractice

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/preplab/pkg/models"
)

// MaxResultRows caps how many rows are kept for display
const MaxResultRows = 50

// RunResult is the outcome of running a practice query
type RunResult struct {
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"` // Stringified for display, capped at MaxResultRows
	RowCount int        `json:"row_count"`
	Correct  bool       `json:"correct"`
}

// RunQuery executes the user's query in a sandbox seeded from the question.
// Each run gets a fresh database, so nothing persists between attempts.
func RunQuery(ctx context.Context, question *models.SQLQuestion, userSQL string) (*RunResult, error) {
	if err := validateQuery(userSQL); err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, question.SchemaSQL); err != nil {
		return nil, fmt.Errorf("failed to apply question schema: %w", err)
	}
	if question.SeedSQL != "" {
		if _, err := db.ExecContext(ctx, question.SeedSQL); err != nil {
			return nil, fmt.Errorf("failed to seed question data: %w", err)
		}
	}

	rows, err := db.QueryxContext(ctx, userSQL)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []map[string]interface{}
	for rows.Next() {
		record := make(map[string]interface{})
		if err := rows.MapScan(record); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	result := &RunResult{
		Columns:  columns,
		RowCount: len(records),
	}
	for i, record := range records {
		if i == MaxResultRows {
			break
		}
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = formatValue(record[col])
		}
		result.Rows = append(result.Rows, row)
	}

	correct, err := matchesExpected(records, question.ExpectedJSON)
	if err != nil {
		return nil, err
	}
	result.Correct = correct

	return result, nil
}

// validateQuery allows a single read-only statement. The sandbox database is
// disposable anyway; the guard exists so feedback stays about querying.
func validateQuery(userSQL string) error {
	trimmed := strings.TrimSpace(userSQL)
	trimmed = strings.TrimSuffix(trimmed, ";")
	if trimmed == "" {
		return fmt.Errorf("query is empty")
	}
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("only a single statement is allowed")
	}
	lowered := strings.ToLower(trimmed)
	if !strings.HasPrefix(lowered, "select") && !strings.HasPrefix(lowered, "with") {
		return fmt.Errorf("only SELECT queries are allowed")
	}
	return nil
}

// matchesExpected compares the returned rows against the question's expected
// rows. Row order and column order don't matter; column names and values do.
func matchesExpected(records []map[string]interface{}, expectedJSON string) (bool, error) {
	var expected []map[string]interface{}
	if err := json.Unmarshal([]byte(expectedJSON), &expected); err != nil {
		return false, fmt.Errorf("failed to parse expected result: %w", err)
	}

	if len(records) != len(expected) {
		return false, nil
	}

	counts := make(map[string]int)
	for _, record := range expected {
		counts[rowSignature(record)]++
	}
	for _, record := range records {
		counts[rowSignature(record)]--
	}
	for _, n := range counts {
		if n != 0 {
			return false, nil
		}
	}
	return true, nil
}

// rowSignature canonicalizes one row: lowercased column names paired with
// normalized values, sorted, joined.
func rowSignature(record map[string]interface{}) string {
	pairs := make([]string, 0, len(record))
	for col, val := range record {
		pairs = append(pairs, strings.ToLower(col)+"="+formatValue(val))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}

// formatValue renders a cell so that the same logical value compares equal
// whether it came from SQLite or from the expected-result JSON.
func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", v)
	}
}

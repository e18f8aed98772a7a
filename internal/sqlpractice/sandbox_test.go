package sqlpractice

import (
	"context"
	"testing"

	"github.com/example/preplab/pkg/models"
)

func questionBySlug(t *testing.T, slug string) *models.SQLQuestion {
	t.Helper()
	for _, q := range DefaultQuestions() {
		if q.Slug == slug {
			return &q
		}
	}
	t.Fatalf("no built-in question %q", slug)
	return nil
}

func TestRunQueryCorrectAnswer(t *testing.T) {
	q := questionBySlug(t, "second-highest-salary")
	result, err := RunQuery(context.Background(),
		q, "SELECT MAX(salary) AS salary FROM employees WHERE salary < (SELECT MAX(salary) FROM employees)")
	if err != nil {
		t.Fatalf("run query: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected a correct result, got %+v", result)
	}
	if result.RowCount != 1 {
		t.Fatalf("expected 1 row, got %d", result.RowCount)
	}
	if len(result.Rows) != 1 || result.Rows[0][0] != "100" {
		t.Fatalf("expected row [100], got %v", result.Rows)
	}
}

func TestRunQueryWrongAnswer(t *testing.T) {
	q := questionBySlug(t, "second-highest-salary")
	result, err := RunQuery(context.Background(), q, "SELECT MAX(salary) AS salary FROM employees")
	if err != nil {
		t.Fatalf("run query: %v", err)
	}
	if result.Correct {
		t.Fatal("expected an incorrect result")
	}
}

func TestRunQueryIgnoresRowAndColumnOrder(t *testing.T) {
	q := questionBySlug(t, "department-highest-salary")
	// Columns and rows in a different order than the expected result lists them
	query := `SELECT e.salary AS salary, e.name AS employee_name, d.name AS department_name
		FROM employee e
		JOIN department d ON d.id = e.departmentId
		WHERE e.salary = (SELECT MAX(salary) FROM employee WHERE departmentId = e.departmentId)
		ORDER BY e.salary`
	result, err := RunQuery(context.Background(), q, query)
	if err != nil {
		t.Fatalf("run query: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected a correct result, got rows %v", result.Rows)
	}
}

func TestRunQueryDuplicateEmails(t *testing.T) {
	q := questionBySlug(t, "duplicate-emails")
	result, err := RunQuery(context.Background(),
		q, "SELECT email FROM person GROUP BY email HAVING COUNT(*) > 1")
	if err != nil {
		t.Fatalf("run query: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected a correct result, got rows %v", result.Rows)
	}
}

func TestRunQueryWithCTE(t *testing.T) {
	q := questionBySlug(t, "duplicate-emails")
	result, err := RunQuery(context.Background(),
		q, "WITH dupes AS (SELECT email FROM person GROUP BY email HAVING COUNT(*) > 1) SELECT email FROM dupes")
	if err != nil {
		t.Fatalf("run query: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected a correct result, got rows %v", result.Rows)
	}
}

func TestRunQueryRejectsInvalidSQL(t *testing.T) {
	q := questionBySlug(t, "duplicate-emails")
	if _, err := RunQuery(context.Background(), q, "SELECT nope FROM missing"); err == nil {
		t.Fatal("expected an error for a broken query")
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"plain select", "SELECT 1", false},
		{"select with trailing semicolon", "SELECT 1;", false},
		{"cte", "WITH x AS (SELECT 1 AS n) SELECT n FROM x", false},
		{"lowercase select", "select email from person", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"insert", "INSERT INTO person (id) VALUES (9)", true},
		{"delete", "DELETE FROM person", true},
		{"drop", "DROP TABLE person", true},
		{"stacked statements", "SELECT 1; SELECT 2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuery(tt.query)
			if tt.wantErr && err == nil {
				t.Errorf("validateQuery(%q): expected an error", tt.query)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateQuery(%q): unexpected error %v", tt.query, err)
			}
		})
	}
}

func TestFormatValueNormalizes(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "NULL"},
		{"bytes", []byte("a@b.com"), "a@b.com"},
		{"int64", int64(90000), "90000"},
		{"float whole", float64(90000), "90000"},
		{"float fraction", 1.5, "1.5"},
		{"bool", true, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

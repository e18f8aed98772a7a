package sqlpractice

import (
	"context"

	"github.com/example/preplab/internal/database"
	"github.com/example/preplab/pkg/models"
)

// DefaultQuestions returns the built-in practice set
func DefaultQuestions() []models.SQLQuestion {
	return []models.SQLQuestion{
		{
			Slug:       "second-highest-salary",
			Title:      "Second Highest Salary",
			Difficulty: "easy",
			Ord:        1,
			ProblemStatement: "Given an employees table with columns id and salary, write a query " +
				"returning the second highest salary. With salaries 100, 200, 200 the answer is 100: " +
				"the value that is strictly second when salaries are ordered descending. " +
				"If there is no second highest salary, return NULL.",
			SchemaSQL:    "CREATE TABLE employees (id INTEGER PRIMARY KEY, salary INTEGER);",
			SeedSQL:      "INSERT INTO employees (id, salary) VALUES (1, 100), (2, 200), (3, 200);",
			ExpectedJSON: `[{"salary": 100}]`,
		},
		{
			Slug:       "department-highest-salary",
			Title:      "Department Highest Salary",
			Difficulty: "medium",
			Ord:        2,
			ProblemStatement: "Given employee(id, name, salary, departmentId) and department(id, name), " +
				"find the employees with the highest salary in each department. " +
				"Return department_name, employee_name and salary (any column order).",
			SchemaSQL: "CREATE TABLE department (id INTEGER PRIMARY KEY, name TEXT);\n" +
				"CREATE TABLE employee (id INTEGER PRIMARY KEY, name TEXT, salary INTEGER, departmentId INTEGER);",
			SeedSQL: "INSERT INTO department (id, name) VALUES (1, 'IT'), (2, 'Sales');\n" +
				"INSERT INTO employee (id, name, salary, departmentId) VALUES (1, 'Joe', 70000, 1), (2, 'Jim', 90000, 1), (3, 'Henry', 80000, 2);",
			ExpectedJSON: `[{"department_name": "IT", "employee_name": "Jim", "salary": 90000}, {"department_name": "Sales", "employee_name": "Henry", "salary": 80000}]`,
		},
		{
			Slug:       "duplicate-emails",
			Title:      "Find Duplicate Emails",
			Difficulty: "easy",
			Ord:        3,
			ProblemStatement: "Given a table person with columns id and email, write a query that " +
				"finds all duplicate emails. Return each duplicate email once.",
			SchemaSQL:    "CREATE TABLE person (id INTEGER PRIMARY KEY, email TEXT);",
			SeedSQL:      "INSERT INTO person (id, email) VALUES (1, 'a@b.com'), (2, 'c@d.com'), (3, 'a@b.com');",
			ExpectedJSON: `[{"email": "a@b.com"}]`,
		},
	}
}

// SeedQuestions upserts the built-in practice set. Idempotent by slug.
func SeedQuestions(ctx context.Context, repo *database.QuestionRepository) error {
	for _, q := range DefaultQuestions() {
		question := q
		if err := repo.Upsert(ctx, &question); err != nil {
			return err
		}
	}
	return nil
}

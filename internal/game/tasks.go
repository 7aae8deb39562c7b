package game

import (
	"errors"
	"strings"

	"github.com/pixelfault/meltdown/internal/models"
	"github.com/pixelfault/meltdown/internal/sandbox"
)

// CheckFunc is a task's acceptance predicate. A nil return accepts the
// submission; any error becomes the rejection message shown to the player.
type CheckFunc func(run *sandbox.Runner, code string) error

// Catalog bundles the task templates with their predicates. Templates are
// deep-copied onto players at assignment; the predicates stay here.
type Catalog struct {
	Standard  []*models.Task
	Emergency []*models.Task
	Checks    map[string]CheckFunc
}

// Check returns the predicate registered for a task id.
func (c Catalog) Check(taskID string) (CheckFunc, bool) {
	fn, ok := c.Checks[taskID]
	return fn, ok
}

// DefaultCatalog returns the built-in coding tasks. Solutions are Lua;
// each predicate runs the submission against a fixed driver snippet in the
// sandbox.
func DefaultCatalog() Catalog {
	standard := []*models.Task{
		{
			ID:          "task-syntax",
			Title:       "Fix Syntax Error",
			Description: "Find and fix the syntax error in the code.",
			Difficulty:  "easy",
			CodeSnippet: "function greet()\n  print(\"hello world\"\nend",
		},
		{
			ID:          "task-sum",
			Title:       "Implement Sum",
			Description: "Write a function that returns the sum of two numbers.",
			Difficulty:  "easy",
			CodeSnippet: "function sum(a, b)\n  -- your code here\nend",
		},
		{
			ID:          "task-reverse",
			Title:       "Reverse String",
			Description: "Write a function that reverses a string.",
			Difficulty:  "medium",
			CodeSnippet: "function reverse(s)\n  -- your code here\nend",
		},
		{
			ID:          "task-ratelimit",
			Title:       "API Rate Limiter",
			Description: "Implement allow(now) so that at most 5 requests per 10 second window succeed.",
			Difficulty:  "hard",
			CodeSnippet: "-- Allow at most 5 calls per 10 second window.\nlocal window = 10\nlocal max_requests = 5\nlocal hits = {}\n\nfunction allow(now)\n  -- your code here\n  return true\nend",
		},
		{
			ID:          "task-largest",
			Title:       "Find Largest",
			Description: "Write a function that returns the largest number in a list.",
			Difficulty:  "medium",
			CodeSnippet: "function largest(values)\n  -- your code here\nend",
		},
	}

	emergency := []*models.Task{
		{
			ID:          "emergency-reset",
			Title:       "SYSTEM FAILURE: RETURN 0",
			Description: "EMERGENCY: Write a function that returns 0 to reset the system.",
			Difficulty:  "easy",
			CodeSnippet: "function fix()\n  return -1\nend",
		},
		{
			ID:          "emergency-backup",
			Title:       "SYSTEM FAILURE: RETURN 1",
			Description: "EMERGENCY: Write a function that returns 1 to enable backup power.",
			Difficulty:  "easy",
			CodeSnippet: "function fix()\n  return 0\nend",
		},
		{
			ID:          "emergency-patch",
			Title:       "SYSTEM FAILURE: RETURN 'FIXED'",
			Description: "EMERGENCY: Return the string 'FIXED' to patch the breach.",
			Difficulty:  "easy",
			CodeSnippet: "function fix()\n  return \"ERROR\"\nend",
		},
		{
			ID:          "emergency-override",
			Title:       "SYSTEM FAILURE: RETURN TRUE",
			Description: "EMERGENCY: Return true to acknowledge admin override.",
			Difficulty:  "easy",
			CodeSnippet: "function fix()\n  return false\nend",
		},
	}

	checks := map[string]CheckFunc{
		"task-syntax": func(run *sandbox.Runner, code string) error {
			if err := run.Compile(code); err != nil {
				return err
			}
			if !strings.Contains(code, "print") {
				return errors.New("you removed the print call!")
			}
			return nil
		},
		"task-sum": func(run *sandbox.Runner, code string) error {
			if err := expectNumber(run, code, "return sum(2, 3)", 5); err != nil {
				return mismatch(err, "incorrect implementation, try sum(2, 3) -> 5")
			}
			if err := expectNumber(run, code, "return sum(10, -10)", 0); err != nil {
				return mismatch(err, "incorrect implementation, try sum(10, -10) -> 0")
			}
			return nil
		},
		"task-reverse": func(run *sandbox.Runner, code string) error {
			if err := expectString(run, code, `return reverse("hello")`, "olleh"); err != nil {
				return mismatch(err, "incorrect implementation, try reverse('hello') -> 'olleh'")
			}
			if err := expectString(run, code, `return reverse("world")`, "dlrow"); err != nil {
				return mismatch(err, "incorrect implementation")
			}
			return nil
		},
		"task-ratelimit": func(run *sandbox.Runner, code string) error {
			if !strings.Contains(code, "now") {
				return errors.New("your limiter must use the now timestamp")
			}
			driver := "local n = 0\nfor i = 1, 7 do\n  if allow(100) then n = n + 1 end\nend\nreturn n"
			if err := expectNumber(run, code, driver, 5); err != nil {
				return mismatch(err, "limiter must allow exactly 5 of 7 rapid requests")
			}
			return nil
		},
		"task-largest": func(run *sandbox.Runner, code string) error {
			if err := expectNumber(run, code, "return largest({3, 7, 2})", 7); err != nil {
				return mismatch(err, "incorrect implementation, try largest({3, 7, 2}) -> 7")
			}
			if err := expectNumber(run, code, "return largest({-5, -2, -9})", -2); err != nil {
				return mismatch(err, "incorrect implementation with negative numbers")
			}
			return nil
		},
		"emergency-reset": func(run *sandbox.Runner, code string) error {
			return mismatch(expectNumber(run, code, "return fix()", 0), "must return 0")
		},
		"emergency-backup": func(run *sandbox.Runner, code string) error {
			return mismatch(expectNumber(run, code, "return fix()", 1), "must return 1")
		},
		"emergency-patch": func(run *sandbox.Runner, code string) error {
			return mismatch(expectString(run, code, "return fix()", "FIXED"), "must return 'FIXED'")
		},
		"emergency-override": func(run *sandbox.Runner, code string) error {
			v, err := run.Eval(code, "return fix()")
			if err != nil {
				return err
			}
			if !v.IsTrue() {
				return errors.New("must return true")
			}
			return nil
		},
	}

	return Catalog{Standard: standard, Emergency: emergency, Checks: checks}
}

// errMismatch marks a wrong result as opposed to an execution fault.
var errMismatch = errors.New("unexpected result")

// mismatch swaps errMismatch for a task-specific message while letting
// execution faults keep their own.
func mismatch(err error, msg string) error {
	if errors.Is(err, errMismatch) {
		return errors.New(msg)
	}
	return err
}

func expectNumber(run *sandbox.Runner, code, driver string, want float64) error {
	v, err := run.Eval(code, driver)
	if err != nil {
		return err
	}
	if !v.EqualsNumber(want) {
		return errMismatch
	}
	return nil
}

func expectString(run *sandbox.Runner, code, driver, want string) error {
	v, err := run.Eval(code, driver)
	if err != nil {
		return err
	}
	if !v.EqualsString(want) {
		return errMismatch
	}
	return nil
}

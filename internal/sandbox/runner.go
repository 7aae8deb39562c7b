// Package sandbox evaluates player-submitted Lua source against fixed
// driver snippets inside a throwaway interpreter state.
package sandbox

import (
	"errors"
	"fmt"
	"time"

	lua "github.com/Shopify/go-lua"
)

// ErrTimeout is returned when a submission exceeds the evaluation budget.
var ErrTimeout = errors.New("evaluation timed out")

// Kind discriminates the Lua value a driver returned.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

// Value is the single result of a driver snippet.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
}

// EqualsNumber reports whether the value is the given number.
func (v Value) EqualsNumber(want float64) bool {
	return v.Kind == KindNumber && v.Num == want
}

// EqualsString reports whether the value is the given string.
func (v Value) EqualsString(want string) bool {
	return v.Kind == KindString && v.Str == want
}

// IsTrue reports whether the value is boolean true.
func (v Value) IsTrue() bool {
	return v.Kind == KindBool && v.Bool
}

// Runner runs submissions with a wall-clock budget. Every evaluation gets a
// fresh interpreter with only the base, string, table and math libraries
// open, so submitted code cannot reach the filesystem, the clock or the
// process environment.
type Runner struct {
	timeout time.Duration
}

// NewRunner creates a runner. A non-positive timeout falls back to 2s.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Runner{timeout: timeout}
}

// Compile checks that source parses as Lua without running it.
func (r *Runner) Compile(source string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("parse fault: %v", p)
		}
	}()
	l := lua.NewState()
	return lua.LoadString(l, source)
}

// Eval loads the submitted source, then runs the driver and returns the
// driver's single result. Syntax errors, runtime errors and interpreter
// panics all come back as plain errors; a submission stuck in a loop is
// abandoned when the budget elapses.
func (r *Runner) Eval(source, driver string) (Value, error) {
	type outcome struct {
		val Value
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("runtime fault: %v", p)}
			}
		}()
		l := lua.NewState()
		openSafeLibraries(l)
		if err := lua.DoString(l, source); err != nil {
			done <- outcome{err: err}
			return
		}
		l.SetTop(0)
		if err := lua.DoString(l, driver); err != nil {
			done <- outcome{err: err}
			return
		}
		done <- outcome{val: topValue(l)}
	}()
	select {
	case out := <-done:
		return out.val, out.err
	case <-time.After(r.timeout):
		// The interpreter goroutine is abandoned; it holds no shared state.
		return Value{}, ErrTimeout
	}
}

func openSafeLibraries(l *lua.State) {
	libs := []struct {
		name string
		open lua.Function
	}{
		{"_G", lua.BaseOpen},
		{"string", lua.StringOpen},
		{"table", lua.TableOpen},
		{"math", lua.MathOpen},
	}
	for _, lib := range libs {
		lua.Require(l, lib.name, lib.open, true)
		l.Pop(1)
	}
}

func topValue(l *lua.State) Value {
	if l.Top() == 0 {
		return Value{Kind: KindNil}
	}
	switch l.TypeOf(-1) {
	case lua.TypeBoolean:
		return Value{Kind: KindBool, Bool: l.ToBoolean(-1)}
	case lua.TypeNumber:
		n, _ := l.ToNumber(-1)
		return Value{Kind: KindNumber, Num: n}
	case lua.TypeString:
		s, _ := l.ToString(-1)
		return Value{Kind: KindString, Str: s}
	default:
		return Value{Kind: KindNil}
	}
}

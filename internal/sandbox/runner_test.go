package sandbox

import (
	"errors"
	"testing"
	"time"
)

func TestEvalNumber(t *testing.T) {
	run := NewRunner(time.Second)
	v, err := run.Eval("function sum(a, b)\n  return a + b\nend", "return sum(2, 3)")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !v.EqualsNumber(5) {
		t.Errorf("got %+v, want number 5", v)
	}
}

func TestEvalString(t *testing.T) {
	run := NewRunner(time.Second)
	v, err := run.Eval("function shout(s)\n  return string.upper(s)\nend", `return shout("ok")`)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !v.EqualsString("OK") {
		t.Errorf("got %+v, want string OK", v)
	}
}

func TestEvalBool(t *testing.T) {
	run := NewRunner(time.Second)
	v, err := run.Eval("function yes()\n  return true\nend", "return yes()")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !v.IsTrue() {
		t.Errorf("got %+v, want true", v)
	}
}

func TestEvalNoResult(t *testing.T) {
	run := NewRunner(time.Second)
	v, err := run.Eval("x = 1", "local y = x + 1")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.Kind != KindNil {
		t.Errorf("got %+v, want nil result", v)
	}
}

func TestEvalSyntaxError(t *testing.T) {
	run := NewRunner(time.Second)
	if _, err := run.Eval("function broken(", "return broken()"); err == nil {
		t.Error("unparseable source evaluated without error")
	}
}

func TestEvalRuntimeError(t *testing.T) {
	run := NewRunner(time.Second)
	if _, err := run.Eval("x = 1", "return undefined_fn()"); err == nil {
		t.Error("calling an undefined function did not error")
	}
}

func TestEvalTimeout(t *testing.T) {
	run := NewRunner(50 * time.Millisecond)
	_, err := run.Eval("function spin()\n  while true do end\nend", "return spin()")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestEvalSandboxedLibraries(t *testing.T) {
	run := NewRunner(time.Second)
	// os and io are never opened; touching them must fail, not escape.
	for _, driver := range []string{`return os.time()`, `return io.open("/etc/passwd")`} {
		if _, err := run.Eval("x = 1", driver); err == nil {
			t.Errorf("driver %q ran against a closed library", driver)
		}
	}
}

func TestCompile(t *testing.T) {
	run := NewRunner(time.Second)
	if err := run.Compile("function ok()\n  return 1\nend"); err != nil {
		t.Errorf("valid source rejected: %v", err)
	}
	if err := run.Compile("function broken("); err == nil {
		t.Error("invalid source compiled")
	}
}

func TestNewRunnerDefaultTimeout(t *testing.T) {
	run := NewRunner(0)
	if run.timeout != 2*time.Second {
		t.Errorf("timeout = %v, want 2s fallback", run.timeout)
	}
}

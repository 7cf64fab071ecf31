package panicerr

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	for _, tc := range []struct {
		name      string
		err       string
		wraps     string
		fun       func() error
		haveStack bool
		isExit    bool
	}{
		{
			name:      "",
			err:       "paniced: shrug",
			wraps:     "shrug",
			haveStack: true,
			fun:       func() error { panic(errors.New("shrug")) },
		},
		{
			name:   "",
			err:    "runtime.Goexit called",
			isExit: true,
			fun:    func() error { runtime.Goexit(); return nil },
		},
		{
			name: "normal",
			fun:  func() error { return nil },
		},
		{
			name: "normal err",
			err:  "bang",
			fun:  func() error { return errors.New("bang") },
		},
		{
			name: "halt",
			err:  "stop",
			fun: func() error {
				Halt(errors.New("stop"))
				return errors.New("unreachable")
			},
		},
		{
			name: "deep halt",
			err:  "deep",
			fun: func() error {
				var f func(n int)
				f = func(n int) {
					if n == 0 {
						Halt(errors.New("deep"))
					}
					f(n - 1)
				}
				f(100)
				return nil
			},
		},
		{
			name:      "panic err",
			err:       "panic err paniced: bang",
			wraps:     "bang",
			haveStack: true,
			fun:       func() error { panic(errors.New("bang")) },
		},
		{
			name:      "hello panic",
			err:       "hello panic paniced: hello",
			haveStack: true,
			fun:       func() error { panic("hello") },
		},
		{
			name:   "exit",
			err:    "exit called runtime.Goexit",
			isExit: true,
			fun:    func() error { runtime.Goexit(); return nil },
		},
		{
			name:      "index panic",
			err:       "index panic paniced: runtime error: index out of range [1] with length 0",
			haveStack: true,
			fun:       func() error { _ = ([]int)(nil)[1]; return nil },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Recover(tc.name, tc.fun)
			if tc.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.err)
				if tc.wraps != "" {
					assert.EqualError(t, errors.Unwrap(err), tc.wraps, "expected panic(error) value")
				}
			}
			assert.Equal(t, tc.haveStack, IsPanic(err), "expected IsPanic")
			assert.Equal(t, tc.isExit, IsExit(err), "expected IsExit")
			stack := PanicStack(err)
			if tc.haveStack {
				assert.NotEqual(t, "", stack, "expected a stack trace")
			} else {
				assert.Equal(t, "", stack, "expected no stack trace")
			}
			if t.Failed() && stack != "" {
				t.Logf("panic stack: %v", stack)
			}
		})
	}
}

func TestRecover_stacktrace(t *testing.T) {
	err := Recover("", func() error {
		panic("nope")
	})
	require.Error(t, err, "must have a recovered error")

	assert.True(t,
		strings.HasSuffix(fmt.Sprintf("%+v", err), PanicStack(err)),
		"expected verbose format to end with a stack trace")
}

package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
		"Field keeps the root cause": {
			err:  Field("Maker", ErrEmpty, "required"),
			root: ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.root, errors.Cause(tc.err))
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrInvalidModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"successful comparison to a double wrapped error": {
			a:      ErrInvalidAmount,
			b:      Wrap(Wrapf(ErrInvalidAmount, "amount %d", 0), "offer"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantIs, tc.a.Is(tc.b))
		})
	}
}

type customError struct {
}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	assert.Nil(t, Wrap(nil, "wrapping <nil>"))
	assert.Nil(t, Field("Amount", nil, "ignored"))
}

func TestFieldMessage(t *testing.T) {
	err := Field("AmountA", ErrInvalidAmount, "must be %s", "positive")
	assert.Equal(t, `field "AmountA": must be positive: invalid amount`, err.Error())

	err = Field("Maker", ErrEmpty, "")
	assert.Equal(t, `field "Maker": value is empty`, err.Error())
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() { Register(ErrNotFound.ABCICode(), "again") })
	assert.Panics(t, func() { Register(1, "reserved") })
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	assert.True(t, ErrPanic.Is(err))
	assert.True(t, strings.Contains(err.Error(), "boom"))
}

func TestStackTraceAttachedOnce(t *testing.T) {
	err := Wrap(Wrap(ErrDuplicate, "inner"), "outer")
	assert.NotNil(t, stackTrace(err))
	assert.Equal(t, "outer: inner: duplicate", err.Error())

	full := fmt.Sprintf("%+v", errors.Cause(err))
	assert.Equal(t, "duplicate", full)
}

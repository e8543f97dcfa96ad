package errors

import (
	"io"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := UnparseableDate("someday soon")
	assert.Equal(t, `[UNPARSEABLE_DATE] unparseable date phrase: "someday soon"`, err.Error())

	wrapped := CalendarUnavailable(io.ErrUnexpectedEOF)
	assert.Contains(t, wrapped.Error(), "CALENDAR_UNAVAILABLE")
	assert.Contains(t, wrapped.Error(), io.ErrUnexpectedEOF.Error())
	assert.Equal(t, io.ErrUnexpectedEOF, wrapped.Unwrap())
}

func TestNilCause(t *testing.T) {
	err := CalendarUnavailable(nil)
	assert.Equal(t, "[CALENDAR_UNAVAILABLE] calendar service unavailable", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(UnparseableTime("noonish"), ErrCodeUnparseableTime))
	assert.False(t, IsCode(UnparseableTime("noonish"), ErrCodeUnparseableDate))
	assert.False(t, IsCode(pkgerrors.New("plain"), ErrCodeUnparseableTime))
	assert.False(t, IsCode(nil, ErrCodeUnparseableTime))
}

func TestGetCodeFromError(t *testing.T) {
	assert.Equal(t, ErrCodeInferenceUnavailable,
		GetCodeFromError(InferenceUnavailable(nil), ErrCodeInvalidArgument))
	assert.Equal(t, ErrCodeInvalidArgument,
		GetCodeFromError(pkgerrors.New("plain"), ErrCodeInvalidArgument))
}

func TestWrap(t *testing.T) {
	cause := pkgerrors.New("disk full")
	err := Wrap(cause, ErrCodeCalendarUnavailable, "probe failed")
	assert.True(t, IsCode(err, ErrCodeCalendarUnavailable))
	assert.Equal(t, cause, err.Unwrap())
}

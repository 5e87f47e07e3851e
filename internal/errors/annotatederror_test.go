package errors_test

import (
	"fmt"
	"log/slog"
	"slices"
	"testing"

	"github.com/myrjola/podium/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestAnnotatedError(t *testing.T) {
	err := errors.New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	// Wrapping keeps sentinel errors detectable.
	sentinel := errors.NewSentinel("sentinel")
	require.NotErrorIs(t, err, sentinel)
	wrapped := errors.Wrap(sentinel, "outer", slog.Int("attempt", 1))
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, "outer: sentinel", wrapped.Error())

	var annotated *errors.AnnotatedError
	require.True(t, errors.As(wrapped, &annotated))
	require.Equal(t, sentinel, errors.Unwrap(wrapped))
}

func TestSlogError(t *testing.T) {
	inner := errors.New("inner", slog.String("id", "123"))
	outer := errors.Wrap(fmt.Errorf("plain: %w", inner), "outer", slog.String("mode", "manipulation"))

	attr := errors.SlogError(outer)
	require.Equal(t, "error", attr.Key)
	group := attr.Value.Group()

	require.Contains(t, group, slog.String("msg", "outer: plain: inner"))
	require.Contains(t, group, slog.String("id", "123"))
	require.Contains(t, group, slog.String("mode", "manipulation"))

	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.NotEqual(t, -1, sourceIdx)
	require.Contains(t, group[sourceIdx].Value.String(), "annotatederror_test.go")
}

func TestSlogError_plainError(t *testing.T) {
	attr := errors.SlogError(fmt.Errorf("plain"))
	group := attr.Value.Group()
	require.Equal(t, []slog.Attr{slog.String("msg", "plain")}, group)
}

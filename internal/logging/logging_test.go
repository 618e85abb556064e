package logging_test

import (
	"context"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/require"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
)

func TestFromContext_DiscardByDefault(t *testing.T) {
	l := logging.FromContext(context.Background())
	require.False(t, l.Enabled(), "background context carries a discard logger")
}

func TestIntoContext_RoundTrip(t *testing.T) {
	var lines []string
	sink := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: logging.TRACE})

	ctx := logging.IntoContext(context.Background(), sink)
	logging.FromContext(ctx).V(logging.DEBUG).Info("hello", "k", 1)
	logging.FromContext(ctx).V(logging.TRACE + 1).Info("dropped")

	require.Len(t, lines, 1)
	require.Contains(t, lines[0], `"msg"="hello"`)
}

func TestNewLogger(t *testing.T) {
	l, err := logging.NewLogger(true)
	require.NoError(t, err)
	require.True(t, l.V(logging.TRACE).Enabled())

	l, err = logging.NewLogger(false)
	require.NoError(t, err)
	require.False(t, l.V(logging.DEBUG).Enabled())
}

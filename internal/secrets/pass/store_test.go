package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beplus/beplus/internal/secrets"
)

type call struct {
	input string
	args  []string
}

func fakeRunner(stdout, stderr string, err error, calls *[]call) runFunc {
	return func(_ context.Context, input string, args ...string) (string, string, error) {
		*calls = append(*calls, call{input: input, args: args})
		return stdout, stderr, err
	}
}

func TestGetStripsTrailingNewline(t *testing.T) {
	var calls []call
	store := &Store{run: fakeRunner("tok-abc\n", "", nil, &calls)}

	got, err := store.Get(context.Background(), "authToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", got)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"show", "beplus/authToken"}, calls[0].args)
}

func TestGetMissingEntryIsNotFound(t *testing.T) {
	var calls []call
	store := &Store{run: fakeRunner("", "Error: beplus/authToken is not in the password store.", errors.New("exit status 1"), &calls)}

	_, err := store.Get(context.Background(), "authToken")
	require.ErrorIs(t, err, secrets.ErrNotFound)
}

func TestGetUnavailableIsNotNotFound(t *testing.T) {
	var calls []call
	store := &Store{run: fakeRunner("", "", ErrUnavailable, &calls)}

	_, err := store.Get(context.Background(), "authToken")
	require.ErrorIs(t, err, ErrUnavailable)
	require.NotErrorIs(t, err, secrets.ErrNotFound)
}

func TestPutPipesValue(t *testing.T) {
	var calls []call
	store := &Store{run: fakeRunner("", "", nil, &calls)}

	require.NoError(t, store.Put(context.Background(), "authToken", "tok"))
	require.Len(t, calls, 1)
	assert.Equal(t, "tok\n", calls[0].input)
	assert.Equal(t, []string{"insert", "-m", "-f", "beplus/authToken"}, calls[0].args)
}

func TestDeleteMissingEntryIsNoop(t *testing.T) {
	var calls []call
	store := &Store{run: fakeRunner("", "Error: beplus/authToken is not in the password store.", errors.New("exit status 1"), &calls)}

	require.NoError(t, store.Delete(context.Background(), "authToken"))
}

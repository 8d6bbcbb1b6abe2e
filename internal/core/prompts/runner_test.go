package prompts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotGood = errors.New("must be good")

func accessibleRunner(input string) (*Runner, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Runner{Accessible: true, Input: strings.NewReader(input), Output: out}, out
}

func mustBeGood(_ context.Context, value any, _ Answers) error {
	if value != "good" {
		return errNotGood
	}
	return nil
}

func TestRunner_Ask(t *testing.T) {
	t.Run("reads one line per question", func(t *testing.T) {
		r, _ := accessibleRunner("alice\ny\n2\n")
		answers, err := r.Ask(context.Background(), []Question{
			{Type: Input, Name: "name", Message: "Name"},
			{Type: Confirm, Name: "sure", Message: "Sure?"},
			{
				Type:    List,
				Name:    "pick",
				Message: "Pick",
				Choices: func(context.Context, Answers) ([]Choice, error) {
					return []Choice{{Name: "A", Value: "a"}, {Name: "B", Value: "b"}}, nil
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", answers["name"])
		assert.Equal(t, true, answers["sure"])
		assert.Equal(t, "b", answers["pick"])
	})

	t.Run("empty line keeps the default", func(t *testing.T) {
		r, _ := accessibleRunner("\n")
		answers, err := r.Ask(context.Background(), []Question{{
			Type:    Input,
			Name:    "name",
			Default: func(Answers) any { return "bob" },
		}})
		require.NoError(t, err)
		assert.Equal(t, "bob", answers["name"])
	})

	t.Run("asks again after an invalid answer", func(t *testing.T) {
		r, out := accessibleRunner("bad\ngood\n")
		answers, err := r.Ask(context.Background(), []Question{
			{Type: Input, Name: "name", Validate: mustBeGood},
		})
		require.NoError(t, err)
		assert.Equal(t, "good", answers["name"])
		assert.Contains(t, out.String(), "✗ must be good")
	})

	t.Run("gives up after repeated invalid answers", func(t *testing.T) {
		r, _ := accessibleRunner("bad\nworse\nworst\ngood\n")
		_, err := r.Ask(context.Background(), []Question{
			{Type: Input, Name: "name", Validate: mustBeGood},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errNotGood)
	})

	t.Run("fails at end of input", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		r, out := accessibleRunner("")
		_, err := r.Ask(ctx, []Question{
			{Type: Input, Name: "name", Validate: mustBeGood},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, io.EOF)
		assert.NotContains(t, out.String(), "✗")
	})

	t.Run("fails when input runs out mid-flow", func(t *testing.T) {
		r, _ := accessibleRunner("bad\n")
		answers, err := r.Ask(context.Background(), []Question{
			{Type: Input, Name: "first"},
			{Type: Input, Name: "second", Validate: mustBeGood},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, "bad", answers["first"])
	})

	t.Run("last line without newline", func(t *testing.T) {
		r, _ := accessibleRunner("good")
		answers, err := r.Ask(context.Background(), []Question{
			{Type: Input, Name: "name", Validate: mustBeGood},
		})
		require.NoError(t, err)
		assert.Equal(t, "good", answers["name"])
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r, _ := accessibleRunner("good\n")
		_, err := r.Ask(ctx, []Question{{Type: Input, Name: "name"}})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("list without choices", func(t *testing.T) {
		r, _ := accessibleRunner("1\n")
		_, err := r.Ask(context.Background(), []Question{{
			Type: List,
			Name: "pick",
			Choices: func(context.Context, Answers) ([]Choice, error) {
				return nil, nil
			},
		}})
		assert.Error(t, err)
	})
}

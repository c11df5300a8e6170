package dvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/climata/pkg/logger"
)

func TestReproWithoutBinary(t *testing.T) {
	t.Setenv("PATH", "")

	cli := New(logger.NewNop())
	err := cli.Repro(context.Background())
	assert.True(t, errors.Is(err, ErrNotInstalled))
}

func TestPushWithoutBinary(t *testing.T) {
	t.Setenv("PATH", "")

	cli := New(logger.NewNop())
	err := cli.Push(context.Background())
	assert.True(t, errors.Is(err, ErrNotInstalled))
}

package imagegen

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	name  string
	url   string
	err   error
	calls int
}

func (g *stubGenerator) Name() string { return g.name }

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.url, g.err
}

func TestFallbackGeneratorFirstTierWins(t *testing.T) {
	first := &stubGenerator{name: "dalle", url: "https://img/one.png"}
	second := &stubGenerator{name: "pollinations", url: "https://img/two.png"}

	g := NewFallbackGenerator(log.New(io.Discard, "", 0), first, second)
	url, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "https://img/one.png", url)
	assert.Equal(t, 0, second.calls)
}

func TestFallbackGeneratorFallsThrough(t *testing.T) {
	first := &stubGenerator{name: "dalle", err: errors.New("401 unauthorized")}
	second := &stubGenerator{name: "pollinations", url: "https://img/two.png"}

	g := NewFallbackGenerator(log.New(io.Discard, "", 0), first, second)
	url, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "https://img/two.png", url)
}

func TestFallbackGeneratorAllFail(t *testing.T) {
	g := NewFallbackGenerator(log.New(io.Discard, "", 0),
		&stubGenerator{name: "dalle", err: errors.New("boom")},
		&stubGenerator{name: "pollinations", err: errors.New("boom")},
	)
	_, err := g.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestFallbackGeneratorHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tier := &stubGenerator{name: "dalle", url: "https://img/one.png"}
	g := NewFallbackGenerator(log.New(io.Discard, "", 0), tier)
	_, err := g.Generate(ctx, "prompt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, tier.calls)
}

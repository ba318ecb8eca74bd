package csrf_test

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestManagerProperties(t *testing.T) {
	t.Parallel()

	params := gopter.DefaultTestParametersWithSeed(1357)
	properties := gopter.NewProperties(params)

	m := newManager(t)
	ctx := context.Background()

	properties.Property("arbitrary strings never validate or consume", prop.ForAll(
		func(s string) bool {
			return !m.Validate(ctx, s) && !m.Consume(ctx, s)
		},
		gen.AnyString(),
	))

	properties.Property("hex strings of token length are not issued tokens", prop.ForAll(
		func(s string) bool {
			return !m.Validate(ctx, s) && !m.Consume(ctx, s)
		},
		gen.RegexMatch("^[0-9a-f]{64}$"),
	))

	properties.Property("a generated token is consumed exactly once", prop.ForAll(
		func(replays int) bool {
			token, err := m.Generate(ctx)
			if err != nil || !m.Validate(ctx, token) || !m.Consume(ctx, token) {
				return false
			}
			for range replays {
				if m.Consume(ctx, token) || m.Validate(ctx, token) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}

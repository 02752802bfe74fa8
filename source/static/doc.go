// Package static provides an in-memory source.Loader for tests and seeding.
//
// The loader returns a fixed recipe list and counts calls for assertions.
// Behavior can be overridden per test through the LoadFunc field:
//
//	loader := static.NewLoader()
//	loader.LoadFunc = func(ctx context.Context) ([]*core.Recipe, error) {
//	    return nil, errors.New("boom")
//	}
//
// Sample returns a deterministic collection for seeding demo databases.
package static

package pr

import "context"

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	CreatePRFunc func(ctx context.Context, opts Options) (*PullRequest, error)

	// Created records the options of every CreatePR call, in order.
	Created []Options
}

// CreatePR implements Provider.
func (m *MockProvider) CreatePR(ctx context.Context, opts Options) (*PullRequest, error) {
	m.Created = append(m.Created, opts)
	if m.CreatePRFunc != nil {
		return m.CreatePRFunc(ctx, opts)
	}
	return &PullRequest{
		Number: len(m.Created),
		URL:    "https://example.com/pr/1",
		Title:  opts.Title,
		Draft:  opts.Draft,
		Head:   opts.Head,
		Base:   opts.Base,
		Labels: opts.Labels,
	}, nil
}

package trace

import (
	"context"
	"sync"
)

// fakeClient answers HEAD requests from a table keyed by URL.
// Unknown URLs answer 200.
type fakeClient struct {
	mu        sync.Mutex
	responses map[string]Response
	errs      map[string]error
	calls     []string
	onHead    func(rawURL string)
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		responses: make(map[string]Response),
		errs:      make(map[string]error),
	}
}

func (f *fakeClient) redirect(from, location string, status int) *fakeClient {
	f.responses[from] = Response{StatusCode: status, Location: location}
	return f
}

func (f *fakeClient) Head(ctx context.Context, rawURL string) (Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	resp, ok := f.responses[rawURL]
	err := f.errs[rawURL]
	hook := f.onHead
	f.mu.Unlock()

	if hook != nil {
		hook(rawURL)
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if err != nil {
		return Response{}, err
	}
	if !ok {
		return Response{StatusCode: 200}, nil
	}
	return resp, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

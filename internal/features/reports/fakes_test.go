package reports

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/xyz-asif/nagaralert/internal/features/verify"
	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

type memRepo struct {
	mu        sync.Mutex
	items     map[string]Report
	seq       int
	creates   int
	updates   []map[string]interface{}
	updateErr error
	listErr   error
}

func newMemRepo(seed ...Report) *memRepo {
	r := &memRepo{items: map[string]Report{}}
	for _, s := range seed {
		r.items[s.ID] = s
	}
	return r
}

func (m *memRepo) List(_ context.Context) ([]Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]Report, 0, len(m.items))
	for _, r := range m.items {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) Get(_ context.Context, id string) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (m *memRepo) Create(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	m.seq++
	r.ID = fmt.Sprintf("r%d", m.seq)
	m.items[r.ID] = *r
	return nil
}

func (m *memRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, fields)
	if m.updateErr != nil {
		return m.updateErr
	}
	r := m.items[id]
	if s, ok := fields["status"].(string); ok {
		r.Status = Status(s)
	}
	if a, ok := fields["assignee"].(string); ok {
		r.Assignee = a
	}
	m.items[id] = r
	return nil
}

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) UploadImage(_ context.Context, data []byte, filename string) (*storage.UploadResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &storage.UploadResult{URL: "https://cdn.test/reports/" + filename, FileSize: int64(len(data))}, nil
}

type fakeVerifier struct {
	calls  int
	result *verify.Result
	err    error
}

func (f *fakeVerifier) Verify(_ context.Context, _ []byte, _ string, _ string) (*verify.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeKarma struct {
	awarded map[string]int
}

func (f *fakeKarma) AddPoints(_ context.Context, uid string, delta int) error {
	if f.awarded == nil {
		f.awarded = map[string]int{}
	}
	f.awarded[uid] += delta
	return nil
}

type countingNotifier struct {
	count int
}

func (n *countingNotifier) ReportsChanged(context.Context) { n.count++ }

var errStoreDown = errors.New("store unavailable")

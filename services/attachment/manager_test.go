package attachment

import (
	"context"
	"errors"
	"testing"

	"venue-booking/models/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Store ---

type mockStore struct {
	uploadFn    func(ctx context.Context, path string, content []byte, mimeType string) error
	publicURLFn func(path string) string
	downloadFn  func(ctx context.Context, path string) ([]byte, error)
	removeFn    func(ctx context.Context, paths []string) error
}

func (m *mockStore) Upload(ctx context.Context, path string, content []byte, mimeType string) error {
	return m.uploadFn(ctx, path, content, mimeType)
}
func (m *mockStore) PublicURL(path string) string {
	if m.publicURLFn == nil {
		return "https://storage.example/" + path
	}
	return m.publicURLFn(path)
}
func (m *mockStore) Download(ctx context.Context, path string) ([]byte, error) {
	return m.downloadFn(ctx, path)
}
func (m *mockStore) Remove(ctx context.Context, paths []string) error {
	return m.removeFn(ctx, paths)
}

func eventAttachment(path string) event.Attachment {
	return event.Attachment{StoragePath: path}
}

// --- Tests ---

func TestUpload_AllFilesStored(t *testing.T) {
	var uploaded []string
	store := &mockStore{
		uploadFn: func(ctx context.Context, path string, content []byte, mimeType string) error {
			uploaded = append(uploaded, path)
			return nil
		},
	}
	m := NewManager(store)

	files := []File{
		{Name: "contract.pdf", MimeType: "application/pdf", Content: []byte("a")},
		{Name: "menu.jpg", MimeType: "image/jpeg", Content: []byte("b")},
	}
	attachments, err := m.Upload(context.Background(), files, 42)

	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Len(t, uploaded, 2)
	assert.Equal(t, "contract.pdf", attachments[0].DisplayName)
	assert.Equal(t, 0, attachments[0].Position)
	assert.Equal(t, 1, attachments[1].Position)
	assert.Equal(t, uint(42), attachments[0].EventID)
	assert.Contains(t, attachments[0].StoragePath, "events/42/")
	assert.Contains(t, attachments[0].PublicURL, attachments[0].StoragePath)
}

func TestUpload_SecondFailureKeepsFirst(t *testing.T) {
	calls := 0
	store := &mockStore{
		uploadFn: func(ctx context.Context, path string, content []byte, mimeType string) error {
			calls++
			if calls == 2 {
				return errors.New("storage unavailable")
			}
			return nil
		},
	}
	m := NewManager(store)

	files := []File{
		{Name: "first.pdf", Content: []byte("a")},
		{Name: "second.pdf", Content: []byte("b")},
		{Name: "third.pdf", Content: []byte("c")},
	}
	attachments, err := m.Upload(context.Background(), files, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "second.pdf")
	require.Len(t, attachments, 1)
	assert.Equal(t, "first.pdf", attachments[0].DisplayName)
	// The third file was never attempted.
	assert.Equal(t, 2, calls)
}

func TestUpload_NewEventScope(t *testing.T) {
	store := &mockStore{
		uploadFn: func(ctx context.Context, path string, content []byte, mimeType string) error {
			return nil
		},
	}
	m := NewManager(store)

	attachments, err := m.Upload(context.Background(), []File{{Name: "draft.pdf"}}, 0)
	require.NoError(t, err)
	assert.Contains(t, attachments[0].StoragePath, "events/"+NewEventScope+"/")
}

func TestRemove_ReturnsStorageError(t *testing.T) {
	store := &mockStore{
		removeFn: func(ctx context.Context, paths []string) error {
			return errors.New("object locked")
		},
	}
	m := NewManager(store)

	err := m.Remove(context.Background(), eventAttachment("events/1/x_file.pdf"))
	assert.Error(t, err)
}

func TestRemove_PassesStoragePath(t *testing.T) {
	var removed []string
	store := &mockStore{
		removeFn: func(ctx context.Context, paths []string) error {
			removed = paths
			return nil
		},
	}
	m := NewManager(store)

	err := m.Remove(context.Background(), eventAttachment("events/1/x_file.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"events/1/x_file.pdf"}, removed)
}

func TestDownload_ReturnsContent(t *testing.T) {
	store := &mockStore{
		downloadFn: func(ctx context.Context, path string) ([]byte, error) {
			return []byte("payload"), nil
		},
	}
	m := NewManager(store)

	content, fallback, err := m.Download(context.Background(), eventAttachment("events/1/x_file.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)
	assert.Empty(t, fallback)
}

func TestDownload_FailureFallsBackToPublicURL(t *testing.T) {
	store := &mockStore{
		downloadFn: func(ctx context.Context, path string) ([]byte, error) {
			return nil, errors.New("timeout")
		},
	}
	m := NewManager(store)

	att := eventAttachment("events/1/x_file.pdf")
	att.PublicURL = "https://storage.example/public/file.pdf"

	content, fallback, err := m.Download(context.Background(), att)
	assert.Error(t, err)
	assert.Nil(t, content)
	assert.Equal(t, att.PublicURL, fallback)
}

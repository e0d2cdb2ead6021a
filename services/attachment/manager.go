package attachment

import (
	"context"
	"fmt"
	"strconv"

	"venue-booking/logger"
	"venue-booking/models/event"

	"github.com/google/uuid"
)

// NewEventScope is the storage scope used while the owning event has no
// identifier yet (create form with uploads before first save).
const NewEventScope = "new-event"

// Store is the slice of the object-storage client the manager depends on.
type Store interface {
	Upload(ctx context.Context, path string, content []byte, mimeType string) error
	PublicURL(path string) string
	Download(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, paths []string) error
}

// File is one upload candidate as received from the form.
type File struct {
	Name     string
	MimeType string
	Content  []byte
}

// Manager coordinates attaching and removing files against object storage.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// objectPath builds a collision-resistant path scoped under the owning event.
func objectPath(eventID uint, name string) string {
	scope := NewEventScope
	if eventID != 0 {
		scope = strconv.FormatUint(uint64(eventID), 10)
	}
	return fmt.Sprintf("events/%s/%s_%s", scope, uuid.NewString(), name)
}

// Upload stores the files one at a time so their order in the attachment list
// is deterministic. The first storage error aborts the remaining files; the
// returned list still carries every file uploaded before the failure, since
// remote state is not rolled back.
func (m *Manager) Upload(ctx context.Context, files []File, eventID uint) ([]event.Attachment, error) {
	attachments := make([]event.Attachment, 0, len(files))

	for i, f := range files {
		path := objectPath(eventID, f.Name)

		if err := m.store.Upload(ctx, path, f.Content, f.MimeType); err != nil {
			return attachments, fmt.Errorf("upload of %q failed: %w", f.Name, err)
		}

		attachments = append(attachments, event.Attachment{
			EventID:     eventID,
			DisplayName: f.Name,
			StoragePath: path,
			PublicURL:   m.store.PublicURL(path),
			MimeType:    f.MimeType,
			Position:    i,
		})
	}

	return attachments, nil
}

// Remove deletes the remote object best-effort. The local record is removed by
// the caller regardless of the remote outcome, so a storage hiccup never
// blocks the form session; the orphaned object is the accepted cost.
func (m *Manager) Remove(ctx context.Context, att event.Attachment) error {
	if err := m.store.Remove(ctx, []string{att.StoragePath}); err != nil {
		logger.Warning(fmt.Sprintf("remote delete of %s failed, local record removed anyway: %v", att.StoragePath, err))
		return err
	}
	return nil
}

// Download fetches the object content; on any storage failure it returns the
// stored public URL as a fallback target for the client to open directly.
func (m *Manager) Download(ctx context.Context, att event.Attachment) ([]byte, string, error) {
	content, err := m.store.Download(ctx, att.StoragePath)
	if err != nil {
		return nil, att.PublicURL, err
	}
	return content, "", nil
}

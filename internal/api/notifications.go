package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/transport"
)

type Notifications struct {
	gw *gateway.Client
}

func (n *Notifications) List(ctx context.Context, limit int) ([]transport.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return getList[transport.Notification](ctx, n.gw, "/notifications/", url.Values{"limit": {strconv.Itoa(limit)}})
}

func (n *Notifications) UnreadCount(ctx context.Context) (int, error) {
	out, err := getOne[transport.UnreadCount](ctx, n.gw, "/notifications/unread-count", nil)
	if err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

func (n *Notifications) MarkRead(ctx context.Context, notificationID int64) error {
	return n.gw.Put(ctx, "/notifications/"+id(notificationID)+"/read", nil, &transport.Message{})
}

func (n *Notifications) MarkAllRead(ctx context.Context) error {
	return n.gw.Put(ctx, "/notifications/read-all", nil, &transport.Message{})
}

func (n *Notifications) Delete(ctx context.Context, notificationID int64) error {
	return n.gw.Delete(ctx, "/notifications/"+id(notificationID), &transport.Message{})
}

func (n *Notifications) Clear(ctx context.Context) error {
	return n.gw.Delete(ctx, "/notifications/", &transport.Message{})
}

type Uploads struct {
	gw *gateway.Client
}

// File uploads content as the multipart "file" field.
func (u *Uploads) File(ctx context.Context, filename string, content io.Reader) (*transport.Upload, error) {
	var out transport.Upload
	if err := u.gw.Upload(ctx, "/upload/file", "file", filename, content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Uploads) Path(ctx context.Context, path string) (*transport.Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return u.File(ctx, filepath.Base(path), f)
}

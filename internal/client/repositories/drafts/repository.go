// Package drafts keeps unsent form input in the local CLI database so it
// survives restarts.
package drafts

import "context"

// Known draft kinds.
const (
	KindStudyLog = "study_log"
	KindTask     = "task"
)

type Repository interface {
	// Get returns (nil, nil) when no draft of that kind exists.
	Get(ctx context.Context, kind string) ([]byte, error)
	Save(ctx context.Context, kind string, body []byte) error
	Delete(ctx context.Context, kind string) error
	List(ctx context.Context) (map[string][]byte, error)
}

package birthday

import "context"

// Repository loads and replaces the whole birthdays collection. There is no
// per-record access and no concurrency token: the last Save wins.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	ReplaceAll(ctx context.Context, records []Record) error
}

// SettingsRepository stores the single Settings document.
type SettingsRepository interface {
	// Get reports found=false when nothing has been stored yet.
	Get(ctx context.Context) (settings Settings, found bool, err error)
	Save(ctx context.Context, settings Settings) error
}

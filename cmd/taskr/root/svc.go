package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/z0m0dan/taskr/internal/config"
	"github.com/z0m0dan/taskr/internal/engine"
	"github.com/z0m0dan/taskr/internal/storage"
)

func loadConfig() (config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), err
	}
	return config.Load(path)
}

func openService(ctx context.Context, opts ...engine.Option) (*engine.Service, config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			return nil, cfg, nil, err
		}
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, cfg, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	opts = append([]engine.Option{
		engine.WithMaxHours(cfg.MaxHours),
		engine.WithMinuteStep(cfg.MinuteStep),
	}, opts...)
	svc := engine.NewService(storage.NewListRepo(db), opts...)
	return svc, cfg, cleanup, nil
}

// resolveTaskID accepts a full task id or an unambiguous prefix of one.
func resolveTaskID(ctx context.Context, svc *engine.Service, arg string) (string, error) {
	tasks, err := svc.TaskList(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", engine.NotFoundError{ID: arg}
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

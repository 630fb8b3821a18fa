package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/utils"
)

// Store persists generated media (avatars, logos) and resolves the public
// URL clients fetch them from.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	Dir() string
}

type diskStore struct {
	log     *logger.Logger
	dir     string
	baseURL string
}

func NewDiskStore(log *logger.Logger) (Store, error) {
	serviceLog := log.With("service", "MediaStore")

	dir := utils.GetEnv("MEDIA_DIR", "./media", log)
	baseURL := strings.TrimRight(utils.GetEnv("MEDIA_BASE_URL", "/media", log), "/")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	return &diskStore{log: serviceLog, dir: dir, baseURL: baseURL}, nil
}

func (s *diskStore) Save(ctx context.Context, key string, r io.Reader) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create media subdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write media file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *diskStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *diskStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *diskStore) Dir() string {
	return s.dir
}

// resolve rejects keys that would escape the media root.
func (s *diskStore) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("empty media key")
	}
	return filepath.Join(s.dir, clean), nil
}

// Package avatar manages character profile pictures as files in a flat
// directory, keyed by generated name.
package avatar

import (
	"crypto/rand"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultName is the sentinel for "no custom avatar". The default
	// image is shared by every character and is never deleted.
	DefaultName = "default"

	ext       = ".png"
	nameLen   = 10
	charset   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	saveTries = 5
)

// Store keeps avatar image files in a single directory.
type Store struct {
	dir string
	log *zap.Logger
}

// NewStore opens (creating if needed) the avatar directory and makes sure
// the default image exists.
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}

	s := &Store{dir: dir, log: log}
	if err := s.ensureDefault(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the image as a PNG under a freshly generated name and returns
// that name. The caller is expected to have decoded and resized the image.
func (s *Store) Save(img image.Image) (string, error) {
	for try := 0; try < saveTries; try++ {
		name, err := generateName()
		if err != nil {
			return "", fmt.Errorf("generate avatar name: %w", err)
		}

		f, err := os.OpenFile(s.Path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create avatar file: %w", err)
		}

		if err := png.Encode(f, img); err != nil {
			f.Close()
			os.Remove(s.Path(name))
			return "", fmt.Errorf("encode avatar: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(s.Path(name))
			return "", fmt.Errorf("close avatar file: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("avatar name collisions on %d attempts", saveTries)
}

// Delete removes an avatar file. Deleting the default sentinel, the empty
// name or an already-missing file is not an error: the owning delete flow
// must not abort because a picture is gone.
func (s *Store) Delete(name string) error {
	if name == "" || name == DefaultName {
		return nil
	}

	err := os.Remove(s.Path(name))
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		s.log.Warn("avatar file already gone", zap.String("name", name))
		return nil
	}
	return fmt.Errorf("delete avatar %s: %w", name, err)
}

// DeleteMany removes a batch of avatar files, continuing past individual
// failures so one bad file cannot strand the rest.
func (s *Store) DeleteMany(names []string) {
	for _, name := range names {
		if err := s.Delete(name); err != nil {
			s.log.Warn("failed to delete avatar", zap.String("name", name), zap.Error(err))
		}
	}
}

// DeleteAll removes every stored avatar except the default image.
func (s *Store) DeleteAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("list avatars: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == DefaultName+ext {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete avatar %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Path resolves a stored avatar name to its file path. The empty name
// resolves to the default image.
func (s *Store) Path(name string) string {
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(s.dir, name+ext)
}

// ensureDefault writes a plain placeholder as the default image when none is
// shipped alongside the binary yet.
func (s *Store) ensureDefault() error {
	path := s.Path(DefaultName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat default avatar: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	grey := color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			img.Set(x, y, grey)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("create default avatar: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode default avatar: %w", err)
	}
	return nil
}

// generateName returns a random name of nameLen alphanumeric characters.
func generateName() (string, error) {
	buf := make([]byte, nameLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, c := range buf {
		b.WriteByte(charset[int(c)%len(charset)])
	}
	return b.String(), nil
}

// IsStored reports whether an avatar file exists for the given name.
func (s *Store) IsStored(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

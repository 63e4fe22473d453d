package images

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

const MaxSize = 5 << 20 // 5 MiB

var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// Store writes uploaded product images under Dir and hands back the public
// URL to persist on the product row.
type Store struct {
	Dir        string
	PublicPath string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir, PublicPath: "/uploads"}, nil
}

// Save validates size and content type (sniffed, not trusted from the
// header) and stores the file under a generated name.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxSize {
		return "", fmt.Errorf("image exceeds %d bytes", MaxSize)
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %s", contentType)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, f); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return path.Join(s.PublicPath, name), nil
}

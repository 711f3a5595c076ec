package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// ObjectInfo describes a stored file.
type ObjectInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Backend reads and writes snapshot files by name.
type Backend interface {
	ReadBytes(ctx context.Context, name string) ([]byte, error)
	WriteBytes(ctx context.Context, name string, data []byte) error
	// List returns the files whose name starts with prefix, sorted by name.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Remove(ctx context.Context, name string) error
}

// NewBackend creates the backend selected by cfg.Backend.
func NewBackend(cfg Config) (Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendLocal:
		return NewLocalBackend(afero.NewOsFs(), cfg.LocalDir), nil
	case BackendS3, "minio":
		client, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewObjectBackend(client, cfg.Bucket, cfg.Prefix, cfg.Region), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// LocalBackend stores files on a filesystem below a root directory.
// Absolute names bypass the root.
type LocalBackend struct {
	fs   afero.Fs
	root string
}

func NewLocalBackend(fs afero.Fs, root string) *LocalBackend {
	return &LocalBackend{fs: fs, root: root}
}

func (b *LocalBackend) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.root, filepath.FromSlash(name))
}

func (b *LocalBackend) ReadBytes(ctx context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, b.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (b *LocalBackend) WriteBytes(ctx context.Context, name string, data []byte) error {
	p := b.path(name)
	if err := b.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := afero.WriteFile(b.fs, p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (b *LocalBackend) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	exists, err := afero.DirExists(b.fs, b.root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", b.root, err)
	}
	if !exists {
		return []ObjectInfo{}, nil
	}

	files := []ObjectInfo{}
	err = afero.Walk(b.fs, b.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			files = append(files, ObjectInfo{Name: rel, Size: info.Size(), LastModified: info.ModTime()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", b.root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (b *LocalBackend) Remove(ctx context.Context, name string) error {
	if err := b.fs.Remove(b.path(name)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// ObjectBackend stores files in an S3 compatible bucket below a key prefix.
type ObjectBackend struct {
	client Client
	bucket string
	prefix string
	region string

	mu    sync.Mutex
	ready bool
}

func NewObjectBackend(client Client, bucket, prefix, region string) *ObjectBackend {
	return &ObjectBackend{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		region: region,
	}
}

func (b *ObjectBackend) key(name string) string {
	if b.prefix == "" {
		return name
	}
	return path.Join(b.prefix, name)
}

// ensureBucket creates the bucket the first time something is written.
func (b *ObjectBackend) ensureBucket(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		return nil
	}

	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", b.bucket, err)
	}
	if !exists {
		if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{Region: b.region}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", b.bucket, err)
		}
	}
	b.ready = true
	return nil
}

func (b *ObjectBackend) ReadBytes(ctx context.Context, name string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (b *ObjectBackend) WriteBytes(ctx context.Context, name string, data []byte) error {
	if err := b.ensureBucket(ctx); err != nil {
		return err
	}

	_, err := b.client.PutObject(ctx, b.bucket, b.key(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

func (b *ObjectBackend) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	keyPrefix := prefix
	if b.prefix != "" {
		keyPrefix = b.prefix + "/" + prefix
	}

	files := []ObjectInfo{}
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: keyPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", keyPrefix, obj.Err)
		}
		name := obj.Key
		if b.prefix != "" {
			name = strings.TrimPrefix(name, b.prefix+"/")
		}
		files = append(files, ObjectInfo{Name: name, Size: obj.Size, LastModified: obj.LastModified})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (b *ObjectBackend) Remove(ctx context.Context, name string) error {
	if err := b.client.RemoveObject(ctx, b.bucket, b.key(name), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

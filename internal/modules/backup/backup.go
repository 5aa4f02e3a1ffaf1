// Package backup exports the content tables as BSON documents in a zip
// archive, for offline restore tooling and scheduled snapshots.
package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/foxbeep/site-core/internal/config"
	"github.com/foxbeep/site-core/internal/pkg/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	archiveRootDir     = "site-core"
	archiveDBDir       = archiveRootDir + "/db"
	archiveManifest    = archiveRootDir + "/manifest.json"
	archiveFormat      = "site-core-bson"
	archiveVersion     = 1
	defaultBackupDir   = "./backups"
	storageKeyTemplate = "backups/%s/%s"
)

// backupTables lists every table included in an archive.
var backupTables = []string{
	"admins",
	"homepage_settings",
	"converter_settings",
	"company_details",
	"adsense_settings",
	"advertisements",
	"ad_analytics",
	"newsletter_subscribers",
	"uploaded_images",
}

type manifest struct {
	Format    string    `json:"format"`
	Version   int       `json:"version"`
	Engine    string    `json:"engine"`
	CreatedAt time.Time `json:"createdAt"`
	Tables    []string  `json:"tables"`
}

type Service struct {
	db    *gorm.DB
	store *storage.Client
	cfg   config.BackupConfig
	log   *zap.Logger
}

func NewService(db *gorm.DB, store *storage.Client, cfg config.BackupConfig, log *zap.Logger) *Service {
	if cfg.Dir == "" {
		cfg.Dir = defaultBackupDir
	}
	return &Service{db: db, store: store, cfg: cfg, log: log}
}

// CreateArchive serializes every table as concatenated BSON documents into
// an in-memory zip with a manifest.
func (s *Service) CreateArchive() (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	exported := make([]string, 0, len(backupTables))
	for _, table := range backupTables {
		var rows []map[string]interface{}
		if err := s.db.Table(table).Find(&rows).Error; err != nil {
			s.log.Warn("backup table export failed", zap.String("table", table), zap.Error(err))
			continue
		}

		payload, err := encodeBSONRows(rows)
		if err != nil {
			s.log.Warn("backup table encode failed", zap.String("table", table), zap.Error(err))
			continue
		}

		f, err := w.Create(path.Join(archiveDBDir, table+".bson"))
		if err != nil {
			continue
		}
		if len(payload) > 0 {
			if _, err := f.Write(payload); err != nil {
				continue
			}
		}
		exported = append(exported, table)
	}

	m := manifest{
		Format:    archiveFormat,
		Version:   archiveVersion,
		Engine:    "mysql",
		CreatedAt: time.Now().UTC(),
		Tables:    exported,
	}
	if data, err := json.Marshal(m); err == nil {
		if mf, err := w.Create(archiveManifest); err == nil {
			_, _ = mf.Write(data)
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteLocal stores a fresh archive in the backup directory and returns the
// file name.
func (s *Service) WriteLocal() (string, error) {
	buf, err := s.CreateArchive()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("backup-%s.zip", time.Now().Format("2006-01-02T15-04-05"))
	if err := os.WriteFile(filepath.Join(s.cfg.Dir, filename), buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// Run produces the scheduled snapshot: local archive, then optional object
// store push.
func (s *Service) Run(ctx context.Context) error {
	filename, err := s.WriteLocal()
	if err != nil {
		return err
	}

	if s.cfg.UploadToStorage && s.store != nil {
		if err := s.PushToStorage(ctx, filename); err != nil {
			return err
		}
	}

	s.log.Info("backup created", zap.String("filename", filename))
	return nil
}

// PushToStorage uploads an existing local archive to the object store under
// a year/month prefix.
func (s *Service) PushToStorage(ctx context.Context, filename string) error {
	if s.store == nil {
		return fmt.Errorf("object storage is not configured")
	}
	data, err := os.ReadFile(filepath.Join(s.cfg.Dir, filename))
	if err != nil {
		return err
	}
	key := fmt.Sprintf(storageKeyTemplate, time.Now().Format("2006/01"), filename)
	_, err = s.store.PutObject(ctx, key, "application/zip", bytes.NewReader(data), int64(len(data)))
	return err
}

// List returns the archives present in the backup directory, newest last.
func (s *Service) List() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

func encodeBSONRows(rows []map[string]interface{}) ([]byte, error) {
	if len(rows) == 0 {
		return []byte{}, nil
	}
	buffer := bytes.NewBuffer(nil)
	for _, row := range rows {
		doc := make(map[string]interface{}, len(row))
		for key, value := range row {
			doc[key] = normalizeValue(value)
		}
		b, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		if _, err := buffer.Write(b); err != nil {
			return nil, err
		}
	}
	return buffer.Bytes(), nil
}

// normalizeValue converts driver byte slices and nested containers into
// BSON-friendly values.
func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, normalizeValue(item))
		}
		return out
	default:
		return value
	}
}

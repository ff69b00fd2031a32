package service

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/pkg/storage"
)

type fileStorage interface {
	Save(relPath string, data []byte) (string, error)
	Open(relPath string) (io.ReadCloser, error)
	Delete(relPath string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures a stored artifact and its signed download link.
type ExportResult struct {
	RelativePath string
	Filename     string
	Token        string
	URL          string
	ExpiresAt    time.Time
}

// ExportService persists generated artifacts and issues signed download links.
type ExportService struct {
	storage fileStorage
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{storage: store, signer: signer, logger: logger, cfg: cfg}
}

// Store saves the artifact under the job's directory and signs a download URL for it.
func (s *ExportService) Store(jobID string, artifact *Artifact) (*ExportResult, error) {
	if artifact == nil {
		return nil, fmt.Errorf("artifact nil")
	}
	relPath, err := s.storage.Save(path.Join(jobID, artifact.Filename), artifact.Data)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &ExportResult{
		RelativePath: relPath,
		Filename:     artifact.Filename,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/download/%s", prefix, token),
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (io.ReadCloser, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl, or the configured ResultTTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	deleted, err := s.storage.CleanupOlderThan(ttl)
	if err == nil && len(deleted) > 0 {
		s.logger.Info("expired exports removed", zap.Int("files", len(deleted)))
	}
	return deleted, err
}

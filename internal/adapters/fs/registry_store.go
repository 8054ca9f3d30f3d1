package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
)

const (
	DeploymentsFile = "deployments.json"
	registryVersion = 1
)

// registryFile is the on-disk layout of deployments.json
type registryFile struct {
	Version    int                               `json:"version"`
	Topologies map[string]*models.TopologyRecord `json:"topologies"` // keyed by chain ID
}

// RegistryStore persists the latest topology per chain in
// .solos/deployments.json
type RegistryStore struct {
	path string
	mu   sync.RWMutex
}

// NewRegistryStore creates a new registry store
func NewRegistryStore(cfg *config.RuntimeConfig) *RegistryStore {
	return &RegistryStore{path: filepath.Join(cfg.DataDir, DeploymentsFile)}
}

// SaveTopology implements usecase.DeploymentStore
func (s *RegistryStore) SaveTopology(ctx context.Context, record *models.TopologyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return err
	}
	reg.Topologies[strconv.FormatUint(record.ChainID, 10)] = record
	return s.save(reg)
}

// GetTopology implements usecase.DeploymentStore
func (s *RegistryStore) GetTopology(ctx context.Context, chainID uint64) (*models.TopologyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, err := s.load()
	if err != nil {
		return nil, err
	}
	record, ok := reg.Topologies[strconv.FormatUint(chainID, 10)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (s *RegistryStore) load() (*registryFile, error) {
	reg := &registryFile{
		Version:    registryVersion,
		Topologies: make(map[string]*models.TopologyRecord),
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if reg.Topologies == nil {
		reg.Topologies = make(map[string]*models.TopologyRecord)
	}
	return reg, nil
}

func (s *RegistryStore) save(reg *registryFile) error {
	return writeJSON(s.path, reg)
}

package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/domain/models"
)

// DefaultDirs are searched when no artifacts directory is configured
var DefaultDirs = []string{"artifacts", "out"}

// Repository loads Hardhat and Foundry compilation artifacts
type Repository struct {
	root  string
	dirs  []string
	names map[string]string
	log   *slog.Logger

	mu    sync.Mutex
	cache map[domain.ContractKind]*models.Artifact
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	dirs := DefaultDirs
	if cfg.Artifacts.Dir != "" {
		dirs = []string{cfg.Artifacts.Dir}
	}
	return &Repository{
		root:  cfg.ProjectRoot,
		dirs:  dirs,
		names: cfg.Artifacts.Names,
		log:   log,
		cache: make(map[domain.ContractKind]*models.Artifact),
	}
}

// ContractName returns the contract name used for kind
func (r *Repository) ContractName(kind domain.ContractKind) string {
	if name, ok := r.names[string(kind)]; ok && name != "" {
		return name
	}
	return kind.DefaultArtifactName()
}

// GetArtifact implements usecase.ArtifactRepository
func (r *Repository) GetArtifact(ctx context.Context, kind domain.ContractKind) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[kind]; ok {
		return cached, nil
	}

	name := r.ContractName(kind)
	path, err := r.find(name)
	if err != nil {
		return nil, err
	}

	artifact, err := LoadArtifact(name, path)
	if err != nil {
		return nil, err
	}
	r.log.Debug("loaded artifact", "contract", kind, "name", name, "path", path)

	r.cache[kind] = artifact
	return artifact, nil
}

// find returns the artifact path of a contract. The conventional Hardhat and
// Foundry locations are tried before walking the directory.
func (r *Repository) find(name string) (string, error) {
	file := name + ".json"
	for _, dir := range r.dirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(r.root, dir)
		}

		candidates := []string{
			filepath.Join(dir, "contracts", name+".sol", file),
			filepath.Join(dir, name+".sol", file),
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				return c, nil
			}
		}

		found, err := walkFor(dir, file)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}

	return "", fmt.Errorf("artifact for %s not found in %s: %w", name, strings.Join(r.dirs, ", "), domain.ErrNotFound)
}

var errFound = errors.New("found")

func walkFor(dir, file string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			// build-info holds compiler inputs, not artifacts
			if d.Name() == "build-info" {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == file && strings.HasSuffix(filepath.Dir(path), ".sol") {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return found, nil
}

// artifactJSON covers both layouts: Hardhat stores the bytecode as a hex
// string, Foundry as {"object": "0x..."}.
type artifactJSON struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

// LoadArtifact parses an artifact file
func LoadArtifact(name, path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var raw artifactJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid abi in %s: %w", path, err)
	}

	code, err := decodeBytecode(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", path, err)
	}

	return &models.Artifact{
		Name:     name,
		Path:     path,
		ABI:      parsed,
		Bytecode: code,
	}, nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	var hex string
	if err := json.Unmarshal(raw, &hex); err != nil {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("unrecognized bytecode format")
		}
		hex = obj.Object
	}

	hex = strings.TrimSpace(hex)
	if strings.Contains(hex, "__$") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	if !strings.HasPrefix(hex, "0x") {
		hex = "0x" + hex
	}
	if hex == "0x" {
		return nil, fmt.Errorf("empty bytecode, is the contract abstract?")
	}
	return hexutil.Decode(hex)
}

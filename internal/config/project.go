package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/solos-nft/solos-deploy/internal/domain"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// ProjectFileNames are looked up in this order in every directory
var ProjectFileNames = []string{"solos.toml", "solos.yaml", "solos.yml"}

// ProjectFile is the raw solos.toml / solos.yaml structure
type ProjectFile struct {
	Variant    string                   `toml:"variant" yaml:"variant"`
	Network    string                   `toml:"network" yaml:"network"` // default network
	Deployment DeploymentSection        `toml:"deployment" yaml:"deployment"`
	Artifacts  ArtifactsSection         `toml:"artifacts" yaml:"artifacts"`
	Sender     SenderSection            `toml:"sender" yaml:"sender"`
	Networks   map[string]NetworkConfig `toml:"networks" yaml:"networks"`
}

// DeploymentSection holds the identities and amounts of one deployment
type DeploymentSection struct {
	Admin           string   `toml:"admin" yaml:"admin"`
	URISigner       string   `toml:"uri_signer" yaml:"uri_signer"`
	TimelockDelay   uint64   `toml:"timelock_delay" yaml:"timelock_delay"`
	VaultMembers    []string `toml:"vault_members" yaml:"vault_members"`
	VaultShares     []uint64 `toml:"vault_shares" yaml:"vault_shares"`
	BaseURI         string   `toml:"base_uri" yaml:"base_uri"`
	MaxTokenCount   uint64   `toml:"max_token_count" yaml:"max_token_count"`
	PaymentSteps    AmountList `toml:"payment_steps" yaml:"payment_steps"`
	PaymentDecimals *uint8     `toml:"payment_decimals" yaml:"payment_decimals"`
}

// AmountList holds decimal amounts as text. Entries may be quoted or bare
// numbers such as [0.1, 0.5, 3]; bare numbers keep their decimal form.
type AmountList []string

// UnmarshalTOML implements toml.Unmarshaler
func (l *AmountList) UnmarshalTOML(data any) error {
	items, ok := data.([]any)
	if !ok {
		return fmt.Errorf("expected a list of amounts such as [0.1, 0.5, 3], got %T", data)
	}

	out := make(AmountList, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case int64:
			out = append(out, strconv.FormatInt(v, 10))
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			return fmt.Errorf("payment step %d: expected a number or string, got %T", i, item)
		}
	}
	*l = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Scalars are taken verbatim.
func (l *AmountList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list of amounts such as [0.1, 0.5, 3]", node.Line)
	}

	out := make(AmountList, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: expected a number or string", item.Line)
		}
		out = append(out, item.Value)
	}
	*l = out
	return nil
}

// ArtifactsSection locates compiled contracts
type ArtifactsSection struct {
	Dir   string            `toml:"dir" yaml:"dir"`
	Names map[string]string `toml:"names" yaml:"names"`
}

// SenderSection configures the deployer account
type SenderSection struct {
	PrivateKey string `toml:"private_key" yaml:"private_key"` //nolint:gosec // usually an env var reference
}

// NetworkConfig is one [networks.<name>] entry
type NetworkConfig struct {
	RPCURL   string `toml:"rpc_url" yaml:"rpc_url"`
	ChainID  uint64 `toml:"chain_id" yaml:"chain_id"`
	Explorer string `toml:"explorer" yaml:"explorer"`
}

// FindProjectRoot walks up from dir to the first directory holding a project
// file. It returns the directory and the file path.
func FindProjectRoot(dir string) (string, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}

	for {
		for _, name := range ProjectFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return dir, candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("no %s found: %w", strings.Join(ProjectFileNames, ", "), domain.ErrNotFound)
		}
		dir = parent
	}
}

// LoadProjectFile reads a project file after loading .env and .env.local from
// its directory. ${VAR} references are expanded in every string value.
func LoadProjectFile(path string) (*ProjectFile, error) {
	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pf ProjectFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&pf); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported project file %s", filepath.Base(path))
	}

	pf.expandEnv()
	return &pf, nil
}

func loadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(dir, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

func (pf *ProjectFile) expandEnv() {
	pf.Variant = os.ExpandEnv(pf.Variant)
	pf.Network = os.ExpandEnv(pf.Network)

	d := &pf.Deployment
	d.Admin = os.ExpandEnv(d.Admin)
	d.URISigner = os.ExpandEnv(d.URISigner)
	d.BaseURI = os.ExpandEnv(d.BaseURI)
	for i := range d.VaultMembers {
		d.VaultMembers[i] = os.ExpandEnv(d.VaultMembers[i])
	}
	for i := range d.PaymentSteps {
		d.PaymentSteps[i] = os.ExpandEnv(d.PaymentSteps[i])
	}

	pf.Artifacts.Dir = os.ExpandEnv(pf.Artifacts.Dir)
	pf.Sender.PrivateKey = os.ExpandEnv(pf.Sender.PrivateKey)

	for name, n := range pf.Networks {
		n.RPCURL = os.ExpandEnv(n.RPCURL)
		pf.Networks[name] = n
	}
}

// DeploymentConfig converts the [deployment] section into its validated
// domain form. Addresses and payment amounts are parsed here; cross-field
// rules are left to DeploymentConfig.Validate.
func (pf *ProjectFile) DeploymentConfig() (*config.DeploymentConfig, error) {
	variant, err := domain.ParseInitVariant(pf.Variant)
	if err != nil {
		return nil, &domain.ConfigError{Field: "variant", Reason: "unsupported variant", Err: err}
	}

	d := pf.Deployment
	cfg := &config.DeploymentConfig{
		Variant:       variant,
		TimelockDelay: d.TimelockDelay,
		VaultShares:   d.VaultShares,
		BaseURI:       d.BaseURI,
		MaxTokenCount: d.MaxTokenCount,
	}

	if cfg.Admin, err = parseAddress("deployment.admin", d.Admin); err != nil {
		return nil, err
	}
	if cfg.URISigner, err = parseAddress("deployment.uri_signer", d.URISigner); err != nil {
		return nil, err
	}
	for i, m := range d.VaultMembers {
		addr, err := parseAddress(fmt.Sprintf("deployment.vault_members[%d]", i), m)
		if err != nil {
			return nil, err
		}
		cfg.VaultMembers = append(cfg.VaultMembers, addr)
	}

	if len(d.PaymentSteps) > 0 {
		decimals := uint8(domain.DefaultPaymentDecimals)
		if d.PaymentDecimals != nil {
			decimals = *d.PaymentDecimals
		}
		cfg.PaymentSteps, err = domain.ParsePaymentSteps(d.PaymentSteps, decimals)
		if err != nil {
			return nil, &domain.ConfigError{Field: "deployment.payment_steps", Reason: "invalid amount", Err: err}
		}
	}

	return cfg, nil
}

func parseAddress(field, value string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return common.Address{}, &domain.ConfigError{Field: field, Reason: "missing address"}
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, &domain.ConfigError{Field: field, Reason: fmt.Sprintf("'%s' is not an address", value), Err: domain.ErrInvalidAddress}
	}
	return common.HexToAddress(value), nil
}

package config

// FoundryConfig is the part of foundry.toml that solos-deploy reads
type FoundryConfig struct {
	RpcEndpoints map[string]string `toml:"rpc_endpoints"`
	Profile      map[string]struct {
		Out string `toml:"out,omitempty"`
	} `toml:"profile"`
}

// OutDir returns the artifacts directory of the default profile, or ""
func (f *FoundryConfig) OutDir() string {
	if f == nil {
		return ""
	}
	return f.Profile["default"].Out
}

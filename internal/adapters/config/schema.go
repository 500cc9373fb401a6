package config

// Configfile represents the structure of the tzmap.yaml configuration file.
type Configfile struct {
	Source              string `yaml:"source"`
	File                string `yaml:"file"`
	ThrowOnDuplicateKey *bool  `yaml:"throwOnDuplicateKey"`
	ThrowOnNonExisting  *bool  `yaml:"throwOnNonExisting"`
	Timeout             string `yaml:"timeout"`
	ResourceURI         string `yaml:"resourceUri"`
	CacheTTL            string `yaml:"cacheTtl"`
	CacheDirectory      string `yaml:"cacheDirectory"`
}

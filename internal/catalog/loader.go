// internal/catalog/loader.go
package catalog

import (
	"fmt"

	"github.com/spf13/viper"

	"youth-employment-chat/internal/models"
)

type fileCatalog struct {
	Datasets []Descriptor         `mapstructure:"datasets"`
	Routes   map[string][]string `mapstructure:"routes"`
}

// LoadFile reads a catalog override from a YAML file. An empty path returns
// the built-in catalog. Routes are optional; when absent the default
// category mapping is applied to the file's datasets.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var fc fileCatalog
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	var routes map[models.Category][]string
	if len(fc.Routes) > 0 {
		routes = make(map[models.Category][]string, len(fc.Routes))
		for cat, keys := range fc.Routes {
			routes[models.Category(cat)] = keys
		}
	}

	return New(fc.Datasets, routes)
}

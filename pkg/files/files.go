package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tabledeck/tabledeck-cli/pkg/models"
)

const (
	TabledeckDir = ".tabledeck"
	DataDir      = "data"
	PrefsDir     = "prefs"
	SettingsFile = "settings.yaml"
)

func InitProjectStructure() error {
	dirs := []string{
		TabledeckDir,
		filepath.Join(TabledeckDir, DataDir),
		filepath.Join(TabledeckDir, PrefsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// PrefsPath returns the directory grid layout snapshots are stored in.
func PrefsPath() string {
	return filepath.Join(TabledeckDir, PrefsDir)
}

// ListDatasets returns the dataset names found under the data directory.
func ListDatasets() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(TabledeckDir, DataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			names = append(names, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

func ReadDataset(name string) (*models.Dataset, error) {
	path := filepath.Join(TabledeckDir, DataDir, name+".yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", name, err)
	}

	var ds models.Dataset
	if err := yaml.Unmarshal(content, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset YAML %s: %w", name, err)
	}
	if ds.Name == "" {
		ds.Name = name
	}
	ds.Path = path

	return &ds, nil
}

func WriteDataset(ds *models.Dataset) error {
	if ds.Path == "" {
		ds.Path = filepath.Join(TabledeckDir, DataDir, ds.Name+".yaml")
	}

	dir := filepath.Dir(ds.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for dataset: %w", err)
	}

	content, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset to YAML: %w", err)
	}

	if err := os.WriteFile(ds.Path, content, 0644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", ds.Name, err)
	}

	return nil
}

func ReadSettings() (*models.Settings, error) {
	path := filepath.Join(TabledeckDir, SettingsFile)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	path := filepath.Join(TabledeckDir, SettingsFile)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

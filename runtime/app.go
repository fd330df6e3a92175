package runtime

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type App struct {
	Container *Container
	Nodes     map[string]Definition
}

func NewApp(manifestFile string) (*App, error) {
	manifest, err := readManifest(manifestFile)
	if err != nil {
		return nil, err
	}

	app := App{
		Container: NewContainer(),
		Nodes:     make(map[string]Definition),
	}

	for _, def := range manifest.Nodes {
		if def.Name == "" {
			return nil, fmt.Errorf("node definition without a name in %s", manifestFile)
		}
		if _, exists := app.Nodes[def.Name]; exists {
			return nil, fmt.Errorf("duplicate node name: %s", def.Name)
		}

		resolved, err := resolveConfig(def.Config)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", def.Name, err)
		}
		def.Config = resolved

		app.Nodes[def.Name] = def
	}

	return &app, nil
}

func readManifest(file string) (Manifest, error) {
	yamlFile, err := os.ReadFile(file)
	if err != nil {
		return Manifest{}, fmt.Errorf("error reading node definitions: %w", err)
	}

	var manifest Manifest
	err = yaml.Unmarshal(yamlFile, &manifest)
	if err != nil {
		return Manifest{}, fmt.Errorf("error unmarshalling YAML: %w", err)
	}

	return manifest, nil
}

// resolveConfig resolves ${VAR} / ${VAR:default} references in config values.
func resolveConfig(config map[string]any) (map[string]any, error) {
	if config == nil {
		return nil, nil
	}

	resolved := make(map[string]any, len(config))
	for k, v := range config {
		value, err := resolveEnvVar(v)
		if err != nil {
			return nil, fmt.Errorf("config key %s: %w", k, err)
		}
		resolved[k] = value
	}
	return resolved, nil
}

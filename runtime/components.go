package runtime

// Definition describes one node instance from the definitions file.
// Config values may use ${VAR} / ${VAR:default} syntax to pull from
// the environment at load time.
type Definition struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Config map[string]any `yaml:"config"`
}

// Manifest is the top-level shape of the node definitions file.
type Manifest struct {
	Nodes []Definition `yaml:"nodes"`
}

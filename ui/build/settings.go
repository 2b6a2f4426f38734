package build

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the optional per-user configuration file. Anything it
// covers can also be given on the command line; flags win. The ndk
// path may use $(NAME) to refer to environment variables.
type Settings struct {
	Ndk       string  `yaml:"ndk"`
	BuildTool *string `yaml:"build_tool"`
	Format    *string `yaml:"format"`
	OutDir    string  `yaml:"out_dir"`

	AndroidVars     map[string]string `yaml:"android_vars"`
	ApplicationVars map[string]string `yaml:"application_vars"`
}

// LoadSettings reads the settings file at path.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WriteFile writes the config to a YAML file with a descriptive header.
func WriteFile(cfg *Config, outputPath string) error {
	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader())
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func generateHeader() string {
	return fmt.Sprintf(`# CVA6 toolchain provisioning configuration
# Generated by cva6-setup init on %s
#
# Run 'cva6-setup apply' to provision with these settings.
`, time.Now().Format("2006-01-02"))
}

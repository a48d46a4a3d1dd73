package tui

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/quick"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/backnav/pkg/config"
)

// configYAML renders the active arbiter and key sections in the same shape
// the config file stores them.
func configYAML(arbiter *config.ArbiterSection, keys *config.KeysSection) string {
	if keys == nil {
		keys = config.NewKeysSection()
	}
	doc := map[string]map[string]interface{}{
		arbiter.ID(): arbiter.Data(),
		keys.ID():    keys.Data(),
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err.Error()
	}
	return string(out)
}

// highlightYAML colours src for a 256-colour terminal. On error the source
// is returned unchanged.
func highlightYAML(src string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, "yaml", "terminal256", "monokai"); err != nil {
		return src
	}
	return buf.String()
}

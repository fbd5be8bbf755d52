package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOKUFY"

// envBinding maps a viper key (DOKUFY_<KEY> with dots as underscores)
// onto the config field it overrides.
type envBinding struct {
	key   string
	apply func(c *Config, v string)
}

func driverSetting(driver, setting string) func(c *Config, v string) {
	return func(c *Config, v string) {
		s, ok := c.Drivers[driver]
		if !ok {
			s = DriverSettings{}
			c.Drivers[driver] = s
		}
		s[setting] = v
	}
}

var envBindings = []envBinding{
	{"driver", func(c *Config, v string) { c.Default = v }},
	{"gotenberg.url", driverSetting(DriverGotenberg, "url")},
	{"gotenberg.timeout", driverSetting(DriverGotenberg, "timeout")},
	{"libreoffice.binary", driverSetting(DriverLibreOffice, "binary")},
	{"libreoffice.timeout", driverSetting(DriverLibreOffice, "timeout")},
	{"chromium.browser_binary", driverSetting(DriverChromium, "browser_binary")},
	{"chromium.no_sandbox", driverSetting(DriverChromium, "no_sandbox")},
	{"chromium.timeout", driverSetting(DriverChromium, "timeout")},
	{"pdf.renderer", driverSetting(DriverStencil, "pdf_renderer")},
	{"pdf.format", func(c *Config, v string) { c.PDF.Format = v }},
	{"pdf.orientation", func(c *Config, v string) { c.PDF.Orientation = v }},
	{"pdf.margin_top", func(c *Config, v string) { c.PDF.MarginTop = v }},
	{"pdf.margin_bottom", func(c *Config, v string) { c.PDF.MarginBottom = v }},
	{"pdf.margin_left", func(c *Config, v string) { c.PDF.MarginLeft = v }},
	{"pdf.margin_right", func(c *Config, v string) { c.PDF.MarginRight = v }},
	{"templates.path", func(c *Config, v string) { c.Templates.Path = v }},
}

// EnvKeys returns the environment variable names ApplyEnv reads.
func EnvKeys() []string {
	keys := make([]string, 0, len(envBindings))
	r := strings.NewReplacer(".", "_")
	for _, b := range envBindings {
		keys = append(keys, EnvPrefix+"_"+strings.ToUpper(r.Replace(b.key)))
	}
	return keys
}

// ApplyEnv loads the given dotenv files (missing files are skipped), then
// overlays DOKUFY_* environment variables onto c and revalidates it.
// Variables already set in the process environment win over dotenv values.
func ApplyEnv(c *Config, envFiles ...string) error {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, b := range envBindings {
		if err := v.BindEnv(b.key); err != nil {
			return fmt.Errorf("binding %s: %w", b.key, err)
		}
	}

	for _, b := range envBindings {
		if v.IsSet(b.key) {
			b.apply(c, v.GetString(b.key))
		}
	}
	return c.Validate()
}

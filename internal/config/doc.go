// Package config holds siteaudit's runtime configuration.
//
// Configuration flows in one direction: CLI flags populate a Config struct,
// an optional YAML file (.siteaudit) contributes per-site overrides, and the
// resulting Config is passed to the tools by dependency injection. There is
// no global configuration state.
package config

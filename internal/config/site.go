package config

// File is the top-level structure of the .siteaudit YAML configuration file.
//
// Example:
//
//	defaults:
//	  delay: 250ms
//	sites:
//	  staging.example.com:
//	    user_agent: "siteaudit-staging"
//	    headers:
//	      Authorization: "Basic ..."
//	    ignore_patterns:
//	      - "/wp-admin/*"
type File struct {
	// Defaults applies to every site unless overridden.
	Defaults SiteConfig `yaml:"defaults"`

	// Sites maps a hostname to its overrides.
	Sites map[string]SiteConfig `yaml:"sites"`
}

// SiteConfig holds per-site overrides for audit behavior. Staging
// environments frequently sit behind basic auth or cookie walls, and some
// hosts need gentler pacing than the defaults.
type SiteConfig struct {
	// UserAgent overrides the User-Agent header for this site.
	UserAgent string `yaml:"user_agent"`

	// Delay overrides the pacing delay for this site.
	Delay Duration `yaml:"delay"`

	// Headers are extra request headers sent to this site.
	Headers map[string]string `yaml:"headers"`

	// IgnorePatterns are glob path patterns the crawler skips.
	IgnorePatterns []string `yaml:"ignore_patterns"`

	// FollowPatterns restricts the crawler to matching paths when set.
	FollowPatterns []string `yaml:"follow_patterns"`
}

// ForHost returns the merged configuration for a host: defaults overlaid
// with the host's own entry. Lookup is by bare hostname.
func (f *File) ForHost(host string) SiteConfig {
	if f == nil {
		return SiteConfig{}
	}

	result := f.Defaults
	site, ok := f.Sites[host]
	if !ok {
		return result
	}

	if site.UserAgent != "" {
		result.UserAgent = site.UserAgent
	}
	if site.Delay.Duration > 0 {
		result.Delay = site.Delay
	}
	if len(site.Headers) > 0 {
		merged := make(map[string]string, len(result.Headers)+len(site.Headers))
		for k, v := range result.Headers {
			merged[k] = v
		}
		for k, v := range site.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}
	if len(site.IgnorePatterns) > 0 {
		result.IgnorePatterns = site.IgnorePatterns
	}
	if len(site.FollowPatterns) > 0 {
		result.FollowPatterns = site.FollowPatterns
	}
	return result
}

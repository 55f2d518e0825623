// Package config manages the inicfg settings stored in YAML format.
//
// Settings live in the user's home directory at ~/.config/inicfg/config.yaml.
// A missing file is not an error; Load returns the defaults.
//
// # Configuration Structure
//
// The Config struct contains:
//   - Parser overrides applied on top of ini.DefaultOptions
//   - Defaults consulted by %(name) interpolation before the DEFAULT section
//   - Variables available to include paths as {{NAME}}
//
// Example config.yaml:
//
//	parser:
//	  include: true
//	  strict_operator: true
//	  operator: " = "
//	  comment_chars: "#"
//	  file_encoding: iso-8859-1
//	  path_separator: "."
//	defaults:
//	  prefix: /opt
//	variables:
//	  ENV: prod
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := pyini.New(cfg.Defaults, cfg.Options())
//
// Environment overrides (INICFG_*) are applied by the caller with
// ini.Options.ApplyEnv, after the file.
//
// # Thread Safety
//
// Config operations are NOT thread-safe. Callers must implement their own
// synchronization if accessing Config from multiple goroutines.
package config

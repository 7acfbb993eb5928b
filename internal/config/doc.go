// Package config loads reactor configuration.
//
// Settings come from, in increasing priority: built-in defaults, the
// reactor.yaml file (or the file named by --config), REACTOR_ environment
// variables and command-line flags bound by the CLI.
//
// # Configuration File Structure
//
//	log:
//	  level: info        # debug | info | warn | error
//	  format: text       # text | json
//	render:
//	  strategy: quick    # quick | index | keyed | double-ended
//	reactive:
//	  strict: false
//	server:
//	  addr: ":8080"
//	  read_timeout: 60s
//	  write_timeout: 10s
//	  max_message_size: 1048576
//	metrics:
//	  namespace: reactor
//	bench:
//	  profile: standard  # fast | standard | stress
//	  iterations: 0      # 0 keeps the profile's count
//	  publish:
//	    bucket: ""
//	    region: ""
//	    prefix: reactor/bench
//	    endpoint: ""
//	    path_style: false
//
// Nested keys map to environment variables with dots replaced by
// underscores: log.level is REACTOR_LOG_LEVEL.
//
// # Usage
//
//	cfg, err := config.LoadFile("")
//	if err != nil {
//	    errors.Fprint(os.Stderr, err)
//	    os.Exit(1)
//	}
//	logger := cfg.Logger(os.Stderr)
//
// Errors are coded: F001 when the file cannot be read, F002 when a value
// is invalid.
package config

// Package config loads the application configuration.
//
// Values come from a .env file (overlaid into the environment), the process
// environment and the `default` struct tags of every section. Environment
// variables map to nested keys by replacing dots with underscores:
//
//	UNTIS_SCHOOL=example-school   -> untis.school
//	POLL_INTERVAL=5m              -> poll.interval
//	SNAPSHOT_BACKEND=redis        -> snapshot.backend
//
// # Sections
//
//   - server, log: HTTP API and logging
//   - database, storage, redis: the snapshot backends
//   - snapshot: which backend to use
//   - untis, discord: provider account and webhook target
//   - poll: interval, per-feed switches and the console
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

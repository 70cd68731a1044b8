// Package loader provides the plugin-like feature loading system.
//
// Each HTTP-facing feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. Register adds a feature; LoadAll mounts the
// routes of every enabled feature, in registration order, and stops at the
// first failure.
package loader

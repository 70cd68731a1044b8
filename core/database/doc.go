// Package database handles SQL database connections.
//
// It provides a wrapper around GORM to configure either an SQLite file (the
// default, zero-setup snapshot store) or a MySQL server based on the
// application's configuration. The snapshot store built on top of it lives in
// core/snapshot.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database

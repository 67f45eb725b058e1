// Package logging provides the process-wide structured logger.
//
// The package wraps [log/slog] and exposes one global logger that is
// configured once with Init and retrieved with GetLogger. If GetLogger is
// called first, a WARN-level stderr logger is created lazily, so an embedded
// store stays quiet unless the host program asks for more.
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug}); err != nil {
//	    log.Fatal(err)
//	}
//	log := logging.WithComponent("bplus")
//	log.Debug("leaf split", "page", id)
package logging

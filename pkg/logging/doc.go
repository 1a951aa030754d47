// Package logging layers a TRACE level, colorized console output and JSON
// Lines files on top of the standard library's [log/slog] package.
//
// # Setup
//
// Call [Setup] once from the program's entry point:
//
//	root, err := logging.Setup(logging.Options{
//		Folder:      "logs",
//		Filename:    "app",
//		Level:       "DEBUG",
//		ClassLength: 20,
//	})
//	if err != nil {
//		return err // *ConfigurationError or *FileSystemError
//	}
//	defer root.Close()
//
// Setup attaches three handlers to the root logger:
//
//   - the console (stderr by default), one colored line per record,
//   - logs/app_<YYYYMMDD-HHMMSS>.log, the same lines without color, new per run,
//   - logs/app.jsonl, one JSON object per record, appended across runs.
//
// # Logging
//
// [Logger] exposes a fixed set of severity methods taking printf-style
// templates:
//
//	log := logging.Get("app.storage")
//	log.Trace("probing %s", dev)
//	log.Warning("disk at %d%%", 91)
//	log.Exception(err, "flush failed")
//
// Logging calls never return errors. Failures inside a handler are reported
// on [ErrorOutput].
//
// # Levels
//
// [LevelTrace] sits below [slog.LevelDebug] and [LevelCritical] above
// [slog.LevelError]. Their names are added to the level-name table by
// [RegisterLevels], which Setup calls; programs that build handlers
// themselves should call it at startup.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		log := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging

// Package log builds [log/slog] handlers from command line settings.
//
// Three formats are supported: [FormatJSON] and [FormatLogfmt] use the
// standard library handlers, and [FormatText] uses charm's log package for
// human-readable terminal output. Levels are named [LevelError],
// [LevelWarn], [LevelInfo], and [LevelDebug].
//
// Typical usage registers flags on the root command and installs the
// handler before any work is done:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	_ = cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	if err != nil {
//		return err
//	}
//	slog.SetDefault(slog.New(handler))
package log

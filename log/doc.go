// Package log builds [log/slog] handlers from command-line flags.
//
// A [Config] owns the --log-level and --log-format flags. Once flags are
// parsed, [Config.NewLogger] returns a logger writing colorized text through
// charm log, or JSON or logfmt through the slog handlers:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(cmd.PersistentFlags())
//
//	logger, err := cfg.NewLogger(os.Stderr)
//
// [Publisher] is an [io.Writer] that copies each entry to subscribers, so a
// terminal UI can show log output without it reaching the screen directly.
// With [WithHistory], entries logged before a subscriber attached are
// replayed to it:
//
//	pub := log.NewPublisher(log.WithHistory(256))
//	logger := slog.New(log.NewHandler(pub, log.LevelWarn, log.FormatLogfmt))
//
//	sub := pub.Subscribe()
//	defer sub.Close()
//
//	for entry := range sub.C() {
//		show(entry)
//	}
package log

package logging

import "context"

// Error logs err with its message as the log message.
func Error(ctx context.Context, l Logger, err error, entries ...LogEntry) {
	entries = append(entries, Entry("err", err))
	l.Error(ctx, err.Error(), entries...)
}

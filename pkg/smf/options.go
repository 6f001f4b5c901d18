package smf

// Option configures a ChunkScanner or TrackReader
type Option func(*options)

type options struct {
	strict bool
}

// Strict turns the lenient defaults into failures: a chunk whose declared
// length runs past the end of the stream fails with
// ErrChunkLengthExceedsStream, and status bytes 0xF1-0xFE (other than the
// 0xF0 sysex start) fail with ErrUnsupportedStatus instead of being decoded
// as UnknownChannelEvent.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

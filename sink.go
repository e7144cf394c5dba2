package logging

// Sink receives every record produced by a Facade. Implementations own
// filtering, formatting, persistence, thread-safety and failure handling.
type Sink interface {
	Log(rec Record)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(rec Record)

func (f SinkFunc) Log(rec Record) {
	f(rec)
}

// Discard is a Sink that drops every record.
var Discard Sink = SinkFunc(func(Record) {})

type multiSink []Sink

// MultiSink returns a Sink that hands each record to every non-nil sink in
// the order given.
func MultiSink(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSink) Log(rec Record) {
	for _, s := range m {
		s.Log(rec)
	}
}

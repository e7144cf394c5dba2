// Package logging is a small structured logging façade. Each call site gets
// one method per severity (trace, debug, info, notice, warning, error,
// critical) in two shapes: printf-style (Errorf) and metadata-carrying
// (ErrorWith). The façade records the caller's file, function and line
// itself and hands exactly one Record to an injected Sink, synchronously.
//
// Sinks shipped with the package
//   - Service: zerolog output to a lumberjack rolling file and/or the console,
//     with level filtering and error-chain enrichment for error metadata
//   - PrettySink: human-readable lines on any io.Writer
//   - MultiSink: fan-out to several sinks
//
// The journal subpackage adds an encrypted on-disk sink and its reader.
//
// Typical usage
//
//	cfg := logging.DefaultConfig()
//	svc := logging.NewService(workDir, &cfg)
//	if err := svc.Initialize(); err != nil { panic(err) }
//	defer svc.Close()
//
//	log := logging.New(svc, logging.WithLabel("api"))
//	log.Errorf("failed: %s", "disk full")
//	log.InfoWith("request served", logging.Metadata{"status": 200})
package logging

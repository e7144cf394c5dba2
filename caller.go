package logging

import "runtime"

// callerLocation reports the call site skip frames above its own caller.
// CallersFrames is used rather than FuncForPC so inlined callers resolve to
// their own function name.
func callerLocation(skip int) Location {
	var pcs [1]uintptr
	// 0 is runtime.Callers, 1 is callerLocation.
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return Location{}
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	var line uint
	if frame.Line > 0 {
		line = uint(frame.Line)
	}
	return Location{
		File:     frame.File,
		Function: frame.Function,
		Line:     line,
	}
}

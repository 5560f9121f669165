package flexvec

import (
	"fmt"
	"runtime"
)

// Site is a call-site location captured for diagnostics. CheckedVector
// records sites automatically; they carry no program logic.
type Site struct {
	File     string
	Line     int
	Function string
}

// callerSite captures the call site skip+1 frames above the caller.
func callerSite(skip int) Site {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{File: "<unknown>"}
	}
	site := Site{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Function = fn.Name()
	}
	return site
}

// IsZero reports whether no site was recorded.
func (s Site) IsZero() bool {
	return s == Site{}
}

func (s Site) String() string {
	if s.IsZero() {
		return "<no site recorded>"
	}
	return fmt.Sprintf("%s:%d `%s`", s.File, s.Line, s.Function)
}

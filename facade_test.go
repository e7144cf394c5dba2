package logging

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink keeps every record it receives.
type recordingSink struct {
	mu      sync.Mutex
	records []Record
}

func (r *recordingSink) Log(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func (r *recordingSink) all() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

func (r *recordingSink) only(t *testing.T) Record {
	t.Helper()
	recs := r.all()
	require.Len(t, recs, 1)
	return recs[0]
}

// thisLine returns the line it is called from.
func thisLine() uint {
	_, _, line, _ := runtime.Caller(1)
	return uint(line)
}

func thisFile() string {
	_, file, _, _ := runtime.Caller(1)
	return file
}

func TestFacade_ErrorExample(t *testing.T) {
	sink := &recordingSink{}
	f := New(sink)

	line := thisLine() + 1
	f.Errorf("failed: %s", "disk full")

	rec := sink.only(t)
	assert.Equal(t, SeverityError, rec.Severity)
	assert.Equal(t, "failed: disk full", rec.Message)
	assert.Nil(t, rec.Metadata)
	assert.Equal(t, thisFile(), rec.File)
	assert.Equal(t, line, rec.Line)
	assert.True(t, strings.HasSuffix(rec.Function, ".TestFacade_ErrorExample"), rec.Function)
}

func TestFacade_AllLevelsDeliverOnce(t *testing.T) {
	tests := []struct {
		name string
		want Severity
		call func(f *Facade)
	}{
		{"Tracef", SeverityTrace, func(f *Facade) { f.Tracef("m %d", 1) }},
		{"Debugf", SeverityDebug, func(f *Facade) { f.Debugf("m %d", 1) }},
		{"Infof", SeverityInfo, func(f *Facade) { f.Infof("m %d", 1) }},
		{"Noticef", SeverityNotice, func(f *Facade) { f.Noticef("m %d", 1) }},
		{"Warningf", SeverityWarning, func(f *Facade) { f.Warningf("m %d", 1) }},
		{"Errorf", SeverityError, func(f *Facade) { f.Errorf("m %d", 1) }},
		{"Criticalf", SeverityCritical, func(f *Facade) { f.Criticalf("m %d", 1) }},
		{"TraceWith", SeverityTrace, func(f *Facade) { f.TraceWith("m 1", nil) }},
		{"DebugWith", SeverityDebug, func(f *Facade) { f.DebugWith("m 1", nil) }},
		{"InfoWith", SeverityInfo, func(f *Facade) { f.InfoWith("m 1", nil) }},
		{"NoticeWith", SeverityNotice, func(f *Facade) { f.NoticeWith("m 1", nil) }},
		{"WarningWith", SeverityWarning, func(f *Facade) { f.WarningWith("m 1", nil) }},
		{"ErrorWith", SeverityError, func(f *Facade) { f.ErrorWith("m 1", nil) }},
		{"CriticalWith", SeverityCritical, func(f *Facade) { f.CriticalWith("m 1", nil) }},
		{"Log", SeverityNotice, func(f *Facade) { f.Log(SeverityNotice, "m 1", nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			tt.call(New(sink))

			rec := sink.only(t)
			assert.Equal(t, tt.want, rec.Severity)
			assert.Equal(t, "m 1", rec.Message)
			assert.Nil(t, rec.Metadata)
			assert.Equal(t, "facade_test.go", filepath.Base(rec.File))
			assert.Contains(t, rec.Function, "TestFacade_AllLevelsDeliverOnce")
			assert.NotZero(t, rec.Line)
		})
	}
}

func TestFacade_CallSiteForEveryLevel(t *testing.T) {
	sink := &recordingSink{}
	var l Logger = New(sink)

	var lines []uint
	lines = append(lines, thisLine()+1)
	l.Tracef("x")
	lines = append(lines, thisLine()+1)
	l.DebugWith("x", nil)
	lines = append(lines, thisLine()+1)
	l.Noticef("x")
	lines = append(lines, thisLine()+1)
	l.WarningWith("x", Metadata{"k": "v"})
	lines = append(lines, thisLine()+1)
	l.CriticalWith("x", nil)

	recs := sink.all()
	require.Len(t, recs, len(lines))
	for i, rec := range recs {
		assert.Equal(t, lines[i], rec.Line, "record %d", i)
		assert.Equal(t, thisFile(), rec.File)
		assert.True(t, strings.HasSuffix(rec.Function, ".TestFacade_CallSiteForEveryLevel"), rec.Function)
	}
}

func TestFacade_Metadata(t *testing.T) {
	t.Run("omitted metadata is absent", func(t *testing.T) {
		sink := &recordingSink{}
		New(sink).InfoWith("no metadata", nil)
		assert.Nil(t, sink.only(t).Metadata)
	})

	t.Run("supplied metadata is passed through unchanged", func(t *testing.T) {
		sink := &recordingSink{}
		md := Metadata{"user": "ada", "attempt": 3, "nested": map[string]any{"a": []int{1, 2}}}
		New(sink).ErrorWith("with metadata", md)

		rec := sink.only(t)
		assert.Equal(t, md, rec.Metadata)
		assert.Equal(t, reflect.ValueOf(md).Pointer(), reflect.ValueOf(rec.Metadata).Pointer(), "same map expected")
	})

	t.Run("metadata message is not formatted", func(t *testing.T) {
		sink := &recordingSink{}
		New(sink).WarningWith("100% done", Metadata{})
		rec := sink.only(t)
		assert.Equal(t, "100% done", rec.Message)
		assert.NotNil(t, rec.Metadata)
		assert.Empty(t, rec.Metadata)
	})
}

func TestFacade_Formatting(t *testing.T) {
	sink := &recordingSink{}
	f := New(sink)

	f.Infof("%s has %d items costing %.2f", "cart", 3, 9.5)
	f.Infof("plain")
	format := "%d"
	f.Infof(format, "not a number")

	recs := sink.all()
	require.Len(t, recs, 3)
	assert.Equal(t, "cart has 3 items costing 9.50", recs[0].Message)
	assert.Equal(t, "plain", recs[1].Message)
	assert.Equal(t, "%!d(string=not a number)", recs[2].Message)
}

func TestFacade_Options(t *testing.T) {
	at := time.Date(2022, 2, 21, 8, 30, 0, 123456000, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		sink := &recordingSink{}
		f := New(sink)
		before := time.Now()
		f.Infof("x")
		rec := sink.only(t)
		assert.Equal(t, DefaultLabel, rec.Label)
		assert.Equal(t, DefaultLabel, f.Label())
		assert.False(t, rec.Time.Before(before))
		assert.NotEqual(t, uuid.Nil, rec.ID)
	})

	t.Run("label and clock", func(t *testing.T) {
		sink := &recordingSink{}
		New(sink, WithLabel("copper.objc"), WithClock(func() time.Time { return at })).Infof("x")
		rec := sink.only(t)
		assert.Equal(t, "copper.objc", rec.Label)
		assert.Equal(t, at, rec.Time)
	})

	t.Run("named copy leaves original untouched", func(t *testing.T) {
		sink := &recordingSink{}
		base := New(sink, WithLabel("base"))
		child := base.Named("child")
		base.Infof("a")
		child.Infof("b")

		recs := sink.all()
		require.Len(t, recs, 2)
		assert.Equal(t, "base", recs[0].Label)
		assert.Equal(t, "child", recs[1].Label)
	})

	t.Run("caller skip for wrappers", func(t *testing.T) {
		sink := &recordingSink{}
		f := New(sink, WithCallerSkip(1))

		line := thisLine() + 1
		wrappedInfo(f, "through helper")

		rec := sink.only(t)
		assert.Equal(t, line, rec.Line)
		assert.Contains(t, rec.Function, "TestFacade_Options")
	})

	t.Run("nil clock and negative skip are ignored", func(t *testing.T) {
		sink := &recordingSink{}
		f := New(sink, WithClock(nil), WithCallerSkip(-3))
		line := thisLine() + 1
		f.Infof("x")
		rec := sink.only(t)
		assert.Equal(t, line, rec.Line)
		assert.False(t, rec.Time.IsZero())
	})
}

func wrappedInfo(f *Facade, msg string) {
	f.Infof("%s", msg)
}

func TestFacade_NilSafety(t *testing.T) {
	assert.NotPanics(t, func() {
		New(nil).Errorf("nowhere %d", 1)
		New(nil).CriticalWith("nowhere", Metadata{"k": 1})
	})

	var f *Facade
	assert.NotPanics(t, func() {
		f.Infof("nil facade")
		f.ErrorWith("nil facade", nil)
	})
	assert.Nil(t, f.Named("x"))
	assert.Equal(t, "", f.Label())
}

func TestFacade_LogDropsUnknownSeverity(t *testing.T) {
	sink := &recordingSink{}
	f := New(sink)

	f.Log(Severity(42), "bogus", nil)
	f.Log(Severity(SeverityCritical+1), "bogus", Metadata{"k": 1})
	assert.Empty(t, sink.all())

	f.Log(SeverityCritical, "kept", nil)
	rec := sink.only(t)
	assert.Equal(t, SeverityCritical, rec.Severity)
	assert.True(t, rec.Severity.Valid())
}

func TestFacade_IDsAreUnique(t *testing.T) {
	sink := &recordingSink{}
	f := New(sink)
	for i := 0; i < 50; i++ {
		f.Debugf("n=%d", i)
	}
	seen := map[uuid.UUID]bool{}
	for _, rec := range sink.all() {
		assert.False(t, seen[rec.ID])
		seen[rec.ID] = true
	}
}

func TestFacade_ConcurrentUse(t *testing.T) {
	sink := &recordingSink{}
	f := New(sink)

	const goroutines = 50
	const iterations = 40

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				f.InfoWith("concurrent", Metadata{"goroutine": id, "iteration": j})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, sink.all(), goroutines*iterations)
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	var order []string
	tail := SinkFunc(func(rec Record) { order = append(order, rec.Message) })

	f := New(MultiSink(a, nil, b, tail))
	f.Noticef("fan %s", "out")

	assert.Equal(t, "fan out", a.only(t).Message)
	assert.Equal(t, "fan out", b.only(t).Message)
	assert.Equal(t, []string{"fan out"}, order)
	assert.Equal(t, a.only(t).ID, b.only(t).ID)

	assert.NotPanics(t, func() { MultiSink().Log(Record{}) })
	assert.NotPanics(t, func() { Discard.Log(Record{}) })
}

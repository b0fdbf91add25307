package logging

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.viam.com/test"
)

type User struct {
	Name string
	age  int
}

// assertLogMatches will fuzzy match log lines. Notably, this checks the time format, but ignores
// the exact time. And it expects a match on the filename, but the exact line number can be wrong.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))

	// Use the length of the first string as a weak verification of checking that the result looks like a date.
	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))
	// Log level and logger name.
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])
	test.That(t, actualParts[2], test.ShouldEqual, expectedParts[2])

	// Filename:line_number.
	actualFilename, actualLineNumber, found := strings.Cut(actualParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	// Log message.
	test.That(t, actualParts[4], test.ShouldEqual, expectedParts[4])
	if len(actualParts) == 5 {
		return
	}

	expectedMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(expectedParts[5]), &expectedMap), test.ShouldBeNil)
	actualMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(actualParts[5]), &actualMap), test.ShouldBeNil)
	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func newBufferLogger(name string) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewBlankLogger(name)
	logger.AddAppender(NewWriterAppender(buf))
	return logger, buf
}

func TestConsoleOutputFormat(t *testing.T) {
	logger, buf := newBufferLogger("rtc")

	logger.Info("impl Info log")
	assertLogMatches(t, buf,
		"2026-10-18T09:12:09.459Z\tINFO\trtc\tlogging/impl_test.go:67\timpl Info log")

	logger.Infof("impl %s log", "infof")
	assertLogMatches(t, buf,
		"2026-10-18T09:12:09.459Z\tINFO\trtc\tlogging/impl_test.go:71\timpl infof log")

	logger.Debugw("wrote canvas", "width", 5, "height", 3)
	assertLogMatches(t, buf,
		`2026-10-18T09:12:09.459Z	DEBUG	rtc	logging/impl_test.go:75	wrote canvas	{"width":5,"height":3}`)

	logger.Warnw("user", "user", User{"alice", 3})
	assertLogMatches(t, buf,
		`2026-10-18T09:12:09.459Z	WARN	rtc	logging/impl_test.go:79	user	{"user":{"Name":"alice"}}`)

	logger.Errorw("unpaired", "key")
	assertLogMatches(t, buf,
		`2026-10-18T09:12:09.459Z	ERROR	rtc	logging/impl_test.go:83	unpaired	{"key":"unpaired log key"}`)
}

func TestLevels(t *testing.T) {
	logger, buf := newBufferLogger("")
	logger.SetLevel(WARN)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
	test.That(t, logger.Level(), test.ShouldEqual, zap.WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped")
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	logger.Warn("kept")
	logger.Error("kept")
	test.That(t, strings.Count(buf.String(), "\n"), test.ShouldEqual, 2)

	buf.Reset()
	GlobalLogLevel.SetLevel(zap.DebugLevel)
	defer GlobalLogLevel.SetLevel(zap.InfoLevel)
	logger.Debug("global debug wins")
	test.That(t, buf.String(), test.ShouldContainSubstring, "global debug wins")
}

func TestSublogger(t *testing.T) {
	logger, buf := newBufferLogger("rtc")
	sub := logger.Sublogger("draw")
	sub.Info("hi")
	assertLogMatches(t, buf, "2026-10-18T09:12:09.459Z\tINFO\trtc.draw\tlogging/impl_test.go:1\thi")

	// sublogger levels are independent of their parent
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)

	noName, buf := newBufferLogger("")
	noName.Sublogger("convert").Info("hi")
	assertLogMatches(t, buf, "2026-10-18T09:12:09.459Z\tINFO\tconvert\tlogging/impl_test.go:1\thi")
}

func TestObservedTestLogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Infow("canvas", "width", 10)
	logger.Debug("debug")

	test.That(t, observed.Len(), test.ShouldEqual, 2)
	entry := observed.All()[0]
	test.That(t, entry.Message, test.ShouldEqual, "canvas")
	test.That(t, entry.ContextMap()["width"], test.ShouldEqual, int64(10))
	test.That(t, observed.FilterMessage("debug").Len(), test.ShouldEqual, 1)

	logger.AsZap().Info("from zap")
	test.That(t, observed.FilterMessage("from zap").Len(), test.ShouldEqual, 1)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestLevelFromString(t *testing.T) {
	for str, expected := range map[string]Level{
		"debug": DEBUG,
		"INFO":  INFO,
		"Warn":  WARN,
		"error": ERROR,
	} {
		level, err := LevelFromString(str)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, expected)
		test.That(t, strings.ToLower(level.String()), test.ShouldEqual, strings.ToLower(str))
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGlobal(t *testing.T) {
	original := Global()
	defer ReplaceGlobal(original)

	logger := NewBlankLogger("replaced")
	ReplaceGlobal(logger)
	test.That(t, Global(), test.ShouldEqual, logger)
}

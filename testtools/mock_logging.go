package testtools

import "fmt"

type PrintStats struct {
	PrintlnCallsCount int
	PrintfCallsCount  int
	Messages          []string
}

func (stats *PrintStats) LastMessage() string {
	if len(stats.Messages) == 0 {
		return ""
	}
	return stats.Messages[len(stats.Messages)-1]
}

type FatalStats struct {
	FatalOnErrorCallsCount int
	Err                    error
}

// PrintLoggerMock records Println and Printf calls instead of writing them.
type PrintLoggerMock struct {
	Stats *PrintStats
}

func (loggerMock PrintLoggerMock) Println(v ...interface{}) {
	loggerMock.Stats.PrintlnCallsCount++
	loggerMock.Stats.Messages = append(loggerMock.Stats.Messages, fmt.Sprint(v...))
}

func (loggerMock PrintLoggerMock) Printf(format string, v ...interface{}) {
	loggerMock.Stats.PrintfCallsCount++
	loggerMock.Stats.Messages = append(loggerMock.Stats.Messages, fmt.Sprintf(format, v...))
}

// ErrorLoggerMock records FatalOnError calls without exiting.
type ErrorLoggerMock struct {
	Stats *FatalStats
}

func (loggerMock ErrorLoggerMock) FatalOnError(err error) {
	if err == nil {
		return
	}
	loggerMock.Stats.FatalOnErrorCallsCount++
	loggerMock.Stats.Err = err
}

func MockLoggers() (info PrintLoggerMock, warning PrintLoggerMock, errorLogger ErrorLoggerMock) {
	return PrintLoggerMock{Stats: &PrintStats{}},
		PrintLoggerMock{Stats: &PrintStats{}},
		ErrorLoggerMock{Stats: &FatalStats{}}
}

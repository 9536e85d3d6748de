package common

import (
	"bytes"
	"io"
	"sync"
)

func NewLogBuffer(maxLines, maxLineLength int) *LogBuffer {
	return &LogBuffer{
		maxLines:      maxLines,
		maxLineLength: maxLineLength,
		lines:         make([]string, 0, maxLines),
	}
}

// LogBuffer keeps the last lines written to it. Lines longer than the
// configured maximum are truncated.
type LogBuffer struct {
	// OnNewLine is called for every completed line, outside of the lock.
	OnNewLine func(string)

	maxLines      int
	maxLineLength int

	current bytes.Buffer
	lines   []string
	mutex   sync.Mutex
}

func (this *LogBuffer) Write(p []byte) (n int, err error) {
	var completed []string

	this.mutex.Lock()
	n = len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			this.appendToCurrent(p)
			break
		}
		this.appendToCurrent(p[:i])
		line := this.current.String()
		this.current.Reset()
		this.addLine(line)
		completed = append(completed, line)
		p = p[i+1:]
	}
	onNewLine := this.OnNewLine
	this.mutex.Unlock()

	if onNewLine != nil {
		for _, line := range completed {
			onNewLine(line)
		}
	}
	return n, nil
}

func (this *LogBuffer) appendToCurrent(p []byte) {
	if rest := this.maxLineLength - this.current.Len(); rest < len(p) {
		p = p[:max(rest, 0)]
	}
	this.current.Write(p)
}

func (this *LogBuffer) addLine(line string) {
	if this.maxLines <= 0 {
		return
	}
	if len(this.lines) >= this.maxLines {
		copy(this.lines, this.lines[1:])
		this.lines = this.lines[:len(this.lines)-1]
	}
	this.lines = append(this.lines, line)
}

func (this *LogBuffer) NumberOfLines() int {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return len(this.lines)
}

// Tail returns up to the last n completed lines, oldest first.
func (this *LogBuffer) Tail(n int) []string {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if n > len(this.lines) || n < 0 {
		n = len(this.lines)
	}
	result := make([]string, n)
	copy(result, this.lines[len(this.lines)-n:])
	return result
}

func (this *LogBuffer) WriteTo(to io.Writer) (n int64, err error) {
	for _, line := range this.Tail(-1) {
		wn, wErr := io.WriteString(to, line+"\n")
		n += int64(wn)
		if wErr != nil {
			return n, wErr
		}
	}
	return n, nil
}

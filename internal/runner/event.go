package runner

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"time"
)

// Actions emitted by test2json
const (
	ActionStart  = "start"
	ActionRun    = "run"
	ActionPause  = "pause"
	ActionCont   = "cont"
	ActionOutput = "output"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionBench  = "bench"
)

// Event is one line of `go test -json` output
type Event struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// Duration returns Elapsed as a time.Duration
func (e Event) Duration() time.Duration {
	return time.Duration(e.Elapsed * float64(time.Second))
}

// IsTerminal reports whether the event closes a test or package
func (e Event) IsTerminal() bool {
	switch e.Action {
	case ActionPass, ActionFail, ActionSkip:
		return true
	}
	return false
}

// ParseEvents decodes a test2json stream and calls fn for each event. Lines
// that are not JSON, such as compiler errors, become output events.
func ParseEvents(r io.Reader, fn func(Event) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var ev Event
		if line[0] != '{' || json.Unmarshal(line, &ev) != nil {
			ev = Event{Time: time.Now(), Action: ActionOutput, Output: string(line) + "\n"}
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
	return scanner.Err()
}

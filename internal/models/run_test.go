package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	tests := []struct {
		name    string
		suite   string
		baseURL string
		wantErr error
	}{
		{name: "valid run", suite: "ui", baseURL: "https://www.saucedemo.com"},
		{name: "empty suite", suite: "", baseURL: "https://www.saucedemo.com", wantErr: ErrInvalidSuite},
		{name: "empty base url", suite: "api", baseURL: "", wantErr: ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRun(tt.suite, tt.baseURL, true)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewRun() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if run.ID == "" {
				t.Error("Run ID should not be empty")
			}
			if !run.IsRunning() {
				t.Errorf("Expected status %s, got %s", RunStatusRunning, run.Status)
			}
			if run.StartedAt.IsZero() {
				t.Error("StartedAt should be set")
			}
		})
	}
}

func TestNewResult(t *testing.T) {
	if _, err := NewResult("run", "e2e", "", ResultPass, 0); !errors.Is(err, ErrInvalidTestName) {
		t.Errorf("expected ErrInvalidTestName, got %v", err)
	}
	if _, err := NewResult("run", "e2e", "TestLogin", "flaky", 0); !errors.Is(err, ErrInvalidResultStatus) {
		t.Errorf("expected ErrInvalidResultStatus, got %v", err)
	}

	res, err := NewResult("run", "e2e", "TestLogin", ResultPass, time.Second)
	if err != nil {
		t.Fatalf("NewResult failed: %v", err)
	}
	if res.ID == "" || res.RunID != "run" || res.Elapsed != time.Second {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestRun_RecordAndFinish(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ResultStatus
		want     RunStatus
	}{
		{name: "all passing", statuses: []ResultStatus{ResultPass, ResultPass, ResultSkip}, want: RunStatusPassed},
		{name: "one failure", statuses: []ResultStatus{ResultPass, ResultFail}, want: RunStatusFailed},
		{name: "empty run passes", statuses: nil, want: RunStatusPassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, _ := NewRun("ui", "https://www.saucedemo.com", true)
			for i, s := range tt.statuses {
				res, err := NewResult(run.ID, "e2e", "Test"+string(rune('A'+i)), s, 0)
				if err != nil {
					t.Fatalf("NewResult failed: %v", err)
				}
				if err := run.Record(res); err != nil {
					t.Fatalf("Record failed: %v", err)
				}
			}
			if run.Total() != len(tt.statuses) {
				t.Errorf("Total() = %d, want %d", run.Total(), len(tt.statuses))
			}
			if err := run.Finish(); err != nil {
				t.Fatalf("Finish failed: %v", err)
			}
			if run.Status != tt.want {
				t.Errorf("Status = %s, want %s", run.Status, tt.want)
			}
			if run.FinishedAt.IsZero() {
				t.Error("FinishedAt should be set")
			}
		})
	}
}

func TestRun_FinishedRunRejectsChanges(t *testing.T) {
	run, _ := NewRun("ui", "https://www.saucedemo.com", true)
	if err := run.Abort(); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}

	res, _ := NewResult(run.ID, "e2e", "TestLogin", ResultPass, 0)
	if err := run.Record(res); !errors.Is(err, ErrRunNotRunning) {
		t.Errorf("expected ErrRunNotRunning, got %v", err)
	}
	if err := run.Finish(); !errors.Is(err, ErrRunAlreadyFinished) {
		t.Errorf("expected ErrRunAlreadyFinished, got %v", err)
	}
	if run.Status != RunStatusAborted {
		t.Errorf("Status = %s, want %s", run.Status, RunStatusAborted)
	}
}

package keywalk

import "testing"

func TestDriverRunEnumerate(t *testing.T) {
	kb, _, _ := newK1(t)
	d := &Driver{}
	var got []string
	report, err := d.Run(kb, RunOptions{
		Starts: []byte{'a'},
		Min:    1,
		Max:    2,
		Mode:   ModeEnumerate,
		Sink:   func(s string) { got = append(got, s) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Emitted != uint64(len(got)) {
		t.Fatalf("report.Emitted = %d, want %d", report.Emitted, len(got))
	}
	if len(got) == 0 {
		t.Fatal("expected at least one emission")
	}
}

func TestDriverRunCount(t *testing.T) {
	kb, _, _ := newK1(t)
	d := &Driver{}
	report, err := d.Run(kb, RunOptions{
		Starts: []byte{'a', 'b'},
		Min:    1,
		Max:    2,
		Mode:   ModeCount,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Counts.Total == nil || report.Counts.Total.Sign() <= 0 {
		t.Fatalf("expected a positive total count, got %v", report.Counts.Total)
	}
}

func TestDriverRunConsumesRestartOnce(t *testing.T) {
	kb, _, _ := newK1(t)
	d := &Driver{}

	var full []string
	if _, err := d.Run(kb, RunOptions{
		Starts: []byte{'a'},
		Min:    2,
		Max:    3,
		Mode:   ModeEnumerate,
		Sink:   func(s string) { full = append(full, s) },
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	w := full[0]
	var resumed []string
	if _, err := d.Run(kb, RunOptions{
		Starts:  []byte{'a'},
		Min:     2,
		Max:     3,
		Mode:    ModeEnumerate,
		Restart: []byte(w),
		Sink:    func(s string) { resumed = append(resumed, s) },
	}); err != nil {
		t.Fatalf("Run with restart: %v", err)
	}
	if len(resumed) == 0 {
		t.Fatal("expected at least one emission after restart")
	}
}

func TestDriverRunRejectsRestartMatchingNoStart(t *testing.T) {
	kb, _, _ := newK1(t)
	d := &Driver{}
	_, err := d.Run(kb, RunOptions{
		Starts:  []byte{'a'},
		Min:     1,
		Max:     2,
		Mode:    ModeEnumerate,
		Restart: []byte("b"),
		Sink:    func(string) {},
	})
	if err == nil {
		t.Fatal("expected error: restart string's first key is not among Starts")
	}
}

func TestDriverRunRejectsDuplicateStarts(t *testing.T) {
	kb, _, _ := newK1(t)
	d := &Driver{}
	_, err := d.Run(kb, RunOptions{
		Starts: []byte{'a', 'a'},
		Min:    1,
		Max:    1,
		Mode:   ModeEnumerate,
		Sink:   func(string) {},
	})
	if err == nil {
		t.Fatal("expected error for duplicate start keys")
	}
}

func TestDriverRunRejectsMissingSink(t *testing.T) {
	kb, _, _ := newK1(t)
	d := &Driver{}
	_, err := d.Run(kb, RunOptions{
		Starts: []byte{'a'},
		Min:    1,
		Max:    1,
		Mode:   ModeEnumerate,
	})
	if err == nil {
		t.Fatal("expected error for nil Sink in enumerate mode")
	}
}

func TestDriverRunRejectsExcessiveStackBound(t *testing.T) {
	kb, _, _ := newK1(t)
	d := &Driver{}
	_, err := d.Run(kb, RunOptions{
		Starts:       []byte{'a'},
		Min:          1,
		Max:          10,
		Mode:         ModeEnumerate,
		Sink:         func(string) {},
		StackCeiling: 1,
	})
	if err == nil {
		t.Fatal("expected capacity error with a ceiling of 1")
	}
}

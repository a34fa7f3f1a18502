package env

import (
	"strings"
	"testing"
	"time"
)

type sampleConfig struct {
	Name     string        `env:"SAMPLE_NAME" envDefault:"mnemo"`
	Count    int           `env:"SAMPLE_COUNT"`
	Delay    time.Duration `env:"SAMPLE_DELAY"`
	Dirs     []string      `env:"SAMPLE_DIRS" envSeparator:":"`
	Untagged string
}

func TestMarshalEnv(t *testing.T) {
	cfg := &sampleConfig{
		Name:     "test",
		Count:    3,
		Delay:    500 * time.Millisecond,
		Dirs:     []string{"./a", "./b"},
		Untagged: "ignored",
	}

	out, err := MarshalEnv(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"SAMPLE_NAME=test",
		"SAMPLE_COUNT=3",
		"SAMPLE_DELAY=500ms",
		"SAMPLE_DIRS=./a:./b",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ignored") {
		t.Errorf("untagged field leaked into output:\n%s", out)
	}
}

func TestMarshalEnv_SkipsZeroValues(t *testing.T) {
	out, err := MarshalEnv(&sampleConfig{Name: "only"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "SAMPLE_COUNT") {
		t.Errorf("zero value should be omitted:\n%s", out)
	}
}

func TestMarshalEnv_RejectsNonStruct(t *testing.T) {
	if _, err := MarshalEnv("not a struct"); err == nil {
		t.Fatal("expected error for non-struct input")
	}
}

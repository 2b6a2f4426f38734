package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/clchiou/interrogator/ui/logger"
)

func testContext() Context {
	return Context{&ContextImpl{
		Context:        context.Background(),
		Logger:         logger.New(&bytes.Buffer{}),
		StdioInterface: StdioImpl{},
	}}
}

func TestDecodeKeyValue(t *testing.T) {
	testCases := []struct {
		name, in   string
		key, value string
		ok         bool
	}{
		{
			name: "simple",
			in:   "A=1",
			key:  "A", value: "1", ok: true,
		},
		{
			name: "spaces in value",
			in:   "B=two words",
			key:  "B", value: "two words", ok: true,
		},
		{
			name: "empty value",
			in:   "C=",
			key:  "C", value: "", ok: true,
		},
		{
			name: "equals in value",
			in:   "D=a=b",
			key:  "D", value: "a=b", ok: true,
		},
		{
			name: "no equals",
			in:   "garbage",
			ok:   false,
		},
		{
			name: "empty line",
			in:   "",
			ok:   false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			key, value, ok := decodeKeyValue(testCase.in)
			if ok != testCase.ok {
				t.Fatalf("expected ok %v got %v", testCase.ok, ok)
			}
			if key != testCase.key || value != testCase.value {
				t.Errorf("expected %q=%q got %q=%q", testCase.key, testCase.value, key, value)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jni", "Android.mk")

	if err := writeFile(path, "first"); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(path, "second"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("expected %q got %q", "second", string(data))
	}
}

func TestEnsureEmptyDirectoriesExist(t *testing.T) {
	ctx := testContext()
	dir := filepath.Join(t.TempDir(), "scratch")

	if err := writeFile(filepath.Join(dir, "stale.txt"), "stale"); err != nil {
		t.Fatal(err)
	}

	ensureEmptyDirectoriesExist(ctx, dir)

	if _, err := os.Stat(filepath.Join(dir, "stale.txt")); !os.IsNotExist(err) {
		t.Error("expected stale file to be removed")
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Error("expected directory to exist after emptying")
	}
}

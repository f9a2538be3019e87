package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtensionEnv(t *testing.T) {
	dir := t.TempDir()
	got := extensionEnv(Config{StateDir: dir, Backend: "bolt", Verbose: true})
	want := []string{
		EnvState + "=" + dir,
		EnvStore + "=bolt",
		EnvVerbose + "=true",
	}
	if len(got) != len(want) {
		t.Fatalf("extensionEnv() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extensionEnv()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunExtension(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	script := "#!/bin/sh\n[ -n \"$" + EnvState + "\" ] || exit 2\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "dash-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	found, code := RunExtension("hello", nil)
	if !found {
		t.Fatal("RunExtension(hello) did not find dash-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension(hello) exit code = %d, want 3", code)
	}

	if found, _ := RunExtension("does-not-exist", nil); found {
		t.Error("RunExtension(does-not-exist) found an extension")
	}
}

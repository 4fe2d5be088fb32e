package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscover_Legend(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, LegendName), `[
		{"configFilePath": "pkg/a/tsconfig.json", "tracePath": "trace.1.json", "typesPath": "types.1.json"},
		{"tracePath": "trace.2.json", "typesPath": "types.2.json"}
	]`)

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []Project{
		{ConfigPath: "pkg/a/tsconfig.json", TracePath: filepath.Join(dir, "trace.1.json"), TypesPath: filepath.Join(dir, "types.1.json")},
		{TracePath: filepath.Join(dir, "trace.2.json"), TypesPath: filepath.Join(dir, "types.2.json")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
}

// A legend naming files outside the trace directory must resolve to the base
// filename inside it, never escape.
func TestDiscover_LegendTraversalDefense(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, LegendName), `[
		{"tracePath": "../../evil.json", "typesPath": "/etc/types.json"}
	]`)

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []Project{
		{TracePath: filepath.Join(dir, "evil.json"), TypesPath: filepath.Join(dir, "types.json")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_BadLegendFallsBackToScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, LegendName), `{not json`)
	writeFile(t, filepath.Join(dir, "trace1.json"), "{}")

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []Project{
		{TracePath: filepath.Join(dir, "trace1.json"), TypesPath: filepath.Join(dir, "types1.json")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_LegendMissingFields(t *testing.T) {
	dir := t.TempDir()
	// Entries without both paths are a parse-level failure, so the run falls
	// back to scanning rather than aborting.
	writeFile(t, filepath.Join(dir, LegendName), `[{"configFilePath": "x"}]`)
	writeFile(t, filepath.Join(dir, "trace-a.json"), "{}")

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 1 || got[0].TracePath != filepath.Join(dir, "trace-a.json") {
		t.Errorf("expected scan fallback project, got %+v", got)
	}
}

func TestDiscover_ScanPairsSuffixes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "trace.es2020.min.json"), "{}")
	writeFile(t, filepath.Join(dir, "trace-b.json"), "{}")
	writeFile(t, filepath.Join(dir, "types-b.json"), "{}")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignore me")
	writeFile(t, filepath.Join(dir, "types-orphan.json"), "{}")
	if err := os.Mkdir(filepath.Join(dir, "trace-subdir.json"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []Project{
		{TracePath: filepath.Join(dir, "trace-b.json"), TypesPath: filepath.Join(dir, "types-b.json")},
		{TracePath: filepath.Join(dir, "trace.es2020.min.json"), TypesPath: filepath.Join(dir, "types.es2020.min.json")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_EmptyDir(t *testing.T) {
	got, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no projects, got %+v", got)
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

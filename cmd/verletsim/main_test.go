package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VERLETSIM_LOG_LEVEL", "ERROR")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var runIDPattern = regexp.MustCompile(`run id: (\S+)`)

func TestRunStoresResult(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "rain", "--data", dir, "--frames", "48")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}

	m := runIDPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no run id in output:\n%s", out)
	}

	meta, err := storage.New(dir).Load(m[1])
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Name != "rain" || meta.Frames != 48 || meta.SubSteps != physics.SubSteps {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Bodies != 9 {
		t.Errorf("expected 9 bodies after 48 frames, got %d", meta.Bodies)
	}

	out, err = execute(t, "list", "--data", dir)
	if err != nil || !strings.Contains(out, m[1]) {
		t.Errorf("list did not show run: %v\n%s", err, out)
	}

	out, err = execute(t, "show", m[1], "--data", dir)
	if err != nil || !strings.Contains(out, `"name": "rain"`) {
		t.Errorf("show failed: %v\n%s", err, out)
	}

	out, err = execute(t, "plot", m[1], "--data", dir)
	if err != nil || !strings.Contains(out, "kinetic energy") {
		t.Errorf("plot failed: %v\n%s", err, out)
	}

	out, err = execute(t, "export-json", m[1], "--data", dir)
	if err != nil {
		t.Fatalf("export-json failed: %v", err)
	}
	var exported storage.ExportData
	if err := json.Unmarshal([]byte(out), &exported); err != nil {
		t.Fatalf("export-json output is not JSON: %v", err)
	}
	if len(exported.Bodies) != 9 {
		t.Errorf("expected 9 exported bodies, got %d", len(exported.Bodies))
	}

	svgPath := filepath.Join(dir, "final.svg")
	if _, err := execute(t, "export-svg", m[1], "--data", dir, "--out", svgPath); err != nil {
		t.Fatalf("export-svg failed: %v", err)
	}
	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if n := bytes.Count(svg, []byte("<circle")); n != 10 {
		t.Errorf("expected boundary plus 9 bodies, got %d circles", n)
	}
}

func TestRunNoSave(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "still", "--data", dir, "--frames", "5", "--no-save")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if strings.Contains(out, "run id:") {
		t.Error("expected no run id with --no-save")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty data dir, got %d entries", len(entries))
	}
}

func TestRunUnknownPreset(t *testing.T) {
	if _, err := execute(t, "run", "nope", "--data", t.TempDir()); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	if _, err := execute(t, "init-config", path, "--preset", "heavy"); err != nil {
		t.Fatalf("init-config failed: %v", err)
	}

	cmd := newRootCmd()
	runCmd, _, err := cmd.Find([]string{"run"})
	if err != nil {
		t.Fatal(err)
	}
	if err := runCmd.ParseFlags([]string{"--config", path, "--frames", "7"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(runCmd, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Frames != 7 {
		t.Errorf("expected flag to set frames to 7, got %d", cfg.Frames)
	}
	if cfg.Solver.Gravity.Y != 20000 {
		t.Errorf("expected gravity from file, got %v", cfg.Solver.Gravity.Y)
	}
	if cfg.FrameDt != config.GetPreset("heavy").FrameDt {
		t.Errorf("expected frame dt from file, got %v", cfg.FrameDt)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %s", name)
		}
	}
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, "list", "--data", filepath.Join(t.TempDir(), "none"))
	if err != nil || !strings.Contains(out, "no runs found") {
		t.Errorf("unexpected list output: %v\n%s", err, out)
	}
}

func TestFillWorld(t *testing.T) {
	w := dynamo.NewWorld()
	b := physics.DefaultBoundary()
	if err := fillWorld(w, b, 200, 5); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if w.Len() != 200 {
		t.Fatalf("expected 200 bodies, got %d", w.Len())
	}
	for _, v := range w.Snapshot() {
		if !b.Contains(dynamo.Vec(v.X, v.Y), v.Radius, 0) {
			t.Errorf("body %+v outside boundary", v)
		}
	}

	if err := fillWorld(dynamo.NewWorld(), b, 1000000, 5); err == nil {
		t.Error("expected error when the boundary is full")
	}
}

func TestScenarioCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	body := "name: pair\nsteps:\n  - preset: rain\n    frames: 16\n  - preset: still\n    frames: 4\n    save_as: calm\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "scenario", path, "--data", dir)
	if err != nil {
		t.Fatalf("scenario failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "step 1: rain_") || !strings.Contains(out, "step 2: calm_") {
		t.Errorf("unexpected output:\n%s", out)
	}

	runs, err := storage.New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 stored runs, got %d", len(runs))
	}
}

func TestSweepCommand(t *testing.T) {
	out, err := execute(t, "sweep", "rain", "--frames", "20", "--min", "500", "--max", "1500", "--steps", "3")
	if err != nil {
		t.Fatalf("sweep failed: %v\n%s", err, out)
	}
	for _, want := range []string{"GRAVITY", "500", "1000", "1500"} {
		if !strings.Contains(out, want) {
			t.Errorf("sweep output missing %q:\n%s", want, out)
		}
	}
}

func TestBenchDefaultFrames(t *testing.T) {
	out, err := execute(t, "bench", "--runs", "1")
	if err != nil {
		t.Fatalf("bench failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "benchmarking 120 frames") {
		t.Errorf("expected the 120-frame default, got:\n%s", out)
	}
	if !strings.Contains(out, "1 worlds, 120 frames in") {
		t.Errorf("expected ensemble to run 120 frames, got:\n%s", out)
	}
}

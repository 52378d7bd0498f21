package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fepozopo/pctrank/pkg/config"
	"github.com/Fepozopo/pctrank/pkg/rank"
	"github.com/Fepozopo/pctrank/pkg/stdimg"
)

// runCLI executes the command tree with args and returns stdout, stderr and
// the exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	t.Setenv(config.EnvLogFormat, "json")
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := execute(root, args, &stderr)
	return stdout.String(), stderr.String(), code
}

func writeTestImage(t *testing.T, dir, name string, depth rank.Depth) string {
	t.Helper()
	m := rank.NewImage(9, 7, depth)
	for i := range m.Pix {
		m.Pix[i] = uint16(40 * depth.Max() / 255)
	}
	m.Set(4, 3, depth.Max())
	path := filepath.Join(dir, name)
	if err := stdimg.SaveRank(path, m); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestApplyCommandWritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in.png", rank.Depth8)
	out := filepath.Join(dir, "out.png")

	_, stderr, code := runCLI(t, "apply", "mean", in, out, "--footprint", "square:3", "--p1", "0.8", "--workers", "3")
	if code != 0 {
		t.Fatalf("apply failed: %s", stderr)
	}
	got, _, err := stdimg.LoadRank(out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v := got.At(4, 3); v != 40 {
		t.Fatalf("clipped mean at impulse = %d; want 40", v)
	}
	if !strings.Contains(stderr, `"message":"filtered"`) {
		t.Fatalf("expected info log, got %q", stderr)
	}
}

func TestApply16BitKeepsDepth(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in16.png", rank.Depth16)
	out := filepath.Join(dir, "out16.tiff")
	if _, stderr, code := runCLI(t, "apply", "percentile", in, out, "--p0", "0.5"); code != 0 {
		t.Fatalf("apply failed: %s", stderr)
	}
	got, _, err := stdimg.LoadRank(out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Depth != rank.Depth16 || got.At(4, 3) != 40*257 {
		t.Fatalf("got %s, centre %d", stdimg.Info(got), got.At(4, 3))
	}
}

func TestApplyRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in.png", rank.Depth8)
	out := filepath.Join(dir, "out.png")
	mask := writeTestImage(t, t.TempDir(), "mask.png", rank.Depth8)
	small := filepath.Join(dir, "small.png")
	if err := stdimg.SaveRank(small, rank.NewImage(2, 2, rank.Depth8)); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"apply", "median", in, out}, "unknown kernel"},
		{[]string{"apply", "mean", in, out, "--p0", "0.9", "--p1", "0.1"}, "percentile"},
		{[]string{"apply", "mean", in, out, "--footprint", "square:3", "--shift-x", "2"}, "shift"},
		{[]string{"apply", "mean", in, out, "--mask", small}, "mask"},
		{[]string{"apply", "mean", in, out, "--depth", "12"}, "depth"},
		{[]string{"apply", "mean", in, out, "--workers", "0"}, "--workers"},
		{[]string{"apply", "mean", filepath.Join(dir, "missing.png"), out}, "missing.png"},
		{[]string{"apply", "mean", in}, "accepts 3 arg"},
	}
	for _, c := range cases {
		_, stderr, code := runCLI(t, c.args...)
		if code == 0 {
			t.Fatalf("%v: expected failure", c.args)
		}
		if !strings.Contains(stderr, c.want) {
			t.Fatalf("%v: stderr %q does not mention %q", c.args, stderr, c.want)
		}
	}
	// a matching mask is fine
	if _, stderr, code := runCLI(t, "apply", "pop", in, out, "--mask", mask); code != 0 {
		t.Fatalf("apply with mask failed: %s", stderr)
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in.png", rank.Depth8)
	out := filepath.Join(dir, "median.png")
	if _, stderr, code := runCLI(t, "run", "median", in, out, "1"); code != 0 {
		t.Fatalf("run median failed: %s", stderr)
	}
	got, _, err := stdimg.LoadRank(out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.At(4, 3) != 40 {
		t.Fatalf("median did not remove impulse: %d", got.At(4, 3))
	}

	out = filepath.Join(dir, "thr.png")
	if _, stderr, code := runCLI(t, "run", "threshold", in, out, "--", "", "50%", "-1"); code != 0 {
		t.Fatalf("run threshold failed: %s", stderr)
	}
	if _, stderr, code := runCLI(t, "run", "mean", in, out, "disk:1", "2"); code == 0 || !strings.Contains(stderr, "max") {
		t.Fatalf("expected range error, got %q", stderr)
	}
}

func TestRunUsesConfiguredFootprint(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in.png", rank.Depth8)
	out := filepath.Join(dir, "out.png")
	t.Setenv(config.EnvFootprint, "blob:1")
	if _, stderr, code := runCLI(t, "run", "mean", in, out); code == 0 || !strings.Contains(stderr, "blob") {
		t.Fatalf("expected configured footprint to be used, got %q", stderr)
	}
}

func TestKernelsCommand(t *testing.T) {
	stdout, _, code := runCLI(t, "kernels")
	if code != 0 {
		t.Fatal("kernels failed")
	}
	for _, name := range []string{"autolevel", "subtractMean", "enhanceContrast", "threshold", "median"} {
		if !strings.Contains(stdout, name) {
			t.Fatalf("kernels output missing %s", name)
		}
	}
	stdout, _, code = runCLI(t, "kernels", "mean")
	if code != 0 || !strings.Contains(stdout, "p1: percent min=0 max=1") {
		t.Fatalf("unexpected help %q", stdout)
	}
	if !strings.Contains(stdout, "(fraction or %)") || !strings.Contains(stdout, "as "+footprintPattern) {
		t.Fatalf("help lacks unit or pattern %q", stdout)
	}
	stdout, _, _ = runCLI(t, "kernels", "localThreshold")
	if !strings.Contains(stdout, "invert: bool") {
		t.Fatalf("localThreshold help lacks invert %q", stdout)
	}
	if _, _, code := runCLI(t, "kernels", "nope"); code == 0 {
		t.Fatal("expected unknown command error")
	}
}

func TestHistogramCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in.png", rank.Depth8)
	out := filepath.Join(dir, "hist.png")
	_, stderr, code := runCLI(t, "histogram", in, out, "--width", "256", "--height", "40", "--p0", "0.5")
	if code != 0 {
		t.Fatalf("histogram failed: %s", stderr)
	}
	img, _, err := stdimg.LoadImage(out)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 40 {
		t.Fatalf("unexpected size %v", b)
	}
	if !strings.Contains(stderr, `"p0_level":40`) {
		t.Fatalf("expected p0 level in log, got %q", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, code := runCLI(t, "version")
	if code != 0 || strings.TrimSpace(stdout) != Version {
		t.Fatalf("version = %q", stdout)
	}
}

func TestLogFormatFlag(t *testing.T) {
	if _, stderr, code := runCLI(t, "version", "--log-format", "xml"); code == 0 || !strings.Contains(stderr, "--log-format") {
		t.Fatalf("expected log format error, got %q", stderr)
	}
}

func TestHistogramFontFallback(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in.png", rank.Depth8)
	out := filepath.Join(dir, "hist.png")
	_, stderr, code := runCLI(t, "histogram", in, out, "--p1", "1", "--font", filepath.Join(dir, "missing.ttf"))
	if code != 0 {
		t.Fatalf("histogram failed: %s", stderr)
	}
	if !strings.Contains(stderr, "falling back to the built-in font") {
		t.Fatalf("expected font warning, got %q", stderr)
	}
}

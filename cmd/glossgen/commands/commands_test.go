package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

const termsSource = `meaning
something that one wishes to convey, especially by language

book
a printed or written literary work

language
a set of strings of characters, each of which has meaning
`

type testEnv struct {
	dir    string
	input  string
	output string
	stdout *bytes.Buffer
	global *Global
}

func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	input := filepath.Join(dir, "terms.txt")
	require.NoError(t, os.WriteFile(input, []byte(termsSource), 0o600))
	output := filepath.Join(dir, "site")
	require.NoError(t, os.Mkdir(output, 0o750))

	stdout := &bytes.Buffer{}
	return &testEnv{
		dir:    dir,
		input:  input,
		output: output,
		stdout: stdout,
		global: &Global{
			Ctx:    context.Background(),
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			Stdin:  strings.NewReader(stdin),
			Stdout: stdout,
			Stderr: io.Discard,
		},
	}
}

func TestBuildCmd_WithFlags(t *testing.T) {
	env := newTestEnv(t, "")
	cmd := &BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output, Title: "Terms"}, Verify: true}

	require.NoError(t, cmd.Run(env.global, &CLI{}))

	index, err := os.ReadFile(filepath.Join(env.output, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<title>Terms</title>")
	assert.Contains(t, string(index), `<li><a href="book.html">book</a></li>`)

	meaning, err := os.ReadFile(filepath.Join(env.output, "meaning.html"))
	require.NoError(t, err)
	assert.Contains(t, string(meaning), `especially by <a href="language.html">language</a>`)

	assert.Contains(t, env.stdout.String(), "Generated 4 pages for 3 terms")
}

func TestBuildCmd_PromptsForMissingLocations(t *testing.T) {
	env := newTestEnv(t, "terms.txt\nsite\n")
	cmd := &BuildCmd{}

	require.NoError(t, cmd.Run(env.global, &CLI{}))

	out := env.stdout.String()
	assert.Contains(t, out, inputQuestion)
	assert.Contains(t, out, outputQuestion)
	_, err := os.Stat(filepath.Join(env.output, "book.html"))
	require.NoError(t, err)
}

func TestBuildCmd_ConfigFile(t *testing.T) {
	env := newTestEnv(t, "")
	cfgPath := filepath.Join(env.dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input:\n  path: terms.txt\noutput:\n  directory: site\nlinking:\n  policy: global\n"), 0o600))

	require.NoError(t, (&BuildCmd{}).Run(env.global, &CLI{Config: cfgPath}))
	assert.NotContains(t, env.stdout.String(), inputQuestion)
}

func TestBuildCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		cmd      func(env *testEnv) *BuildCmd
		category foundationerrors.ErrorCategory
	}{
		{
			name: "missing output directory",
			cmd: func(env *testEnv) *BuildCmd {
				return &BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: filepath.Join(env.dir, "absent")}}
			},
			category: foundationerrors.CategoryFileSystem,
		},
		{
			name: "no prompt leaves output unset",
			cmd: func(env *testEnv) *BuildCmd {
				return &BuildCmd{SourceFlags: SourceFlags{Input: env.input, NoPrompt: true}}
			},
			category: foundationerrors.CategoryConfig,
		},
		{
			name:  "empty answer",
			stdin: "\n",
			cmd: func(*testEnv) *BuildCmd {
				return &BuildCmd{}
			},
			category: foundationerrors.CategoryValidation,
		},
		{
			name: "unknown policy",
			cmd: func(env *testEnv) *BuildCmd {
				return &BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output, Policy: "fuzzy"}}
			},
			category: foundationerrors.CategoryConfig,
		},
		{
			name: "unknown charset",
			cmd: func(env *testEnv) *BuildCmd {
				return &BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output, Charset: "klingon-8"}}
			},
			category: foundationerrors.CategoryConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.stdin)
			err := tt.cmd(env).Run(env.global, &CLI{})
			require.Error(t, err)
			assert.True(t, foundationerrors.HasCategory(err, tt.category), "got %v", err)
		})
	}
}

func TestBuildCmd_DuplicateTerms(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, os.WriteFile(env.input, []byte("book\na work\n\nbook\nanother work\n"), 0o600))

	err := (&BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output}}).Run(env.global, &CLI{})
	require.Error(t, err)
	assert.Equal(t, 3, foundationerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	cmd := &BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output, AllowDuplicates: true}}
	require.NoError(t, cmd.Run(env.global, &CLI{}))
	page, err := os.ReadFile(filepath.Join(env.output, "book.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "another work")
}

func TestBuildCmd_MetricsFile(t *testing.T) {
	env := newTestEnv(t, "")
	metricsPath := filepath.Join(env.dir, "glossgen.prom")
	cmd := &BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output}, MetricsFile: metricsPath}

	require.NoError(t, cmd.Run(env.global, &CLI{}))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "glossgen_glossary_terms 3")
	assert.Contains(t, string(data), `glossgen_build_outcomes_total{outcome="success"} 1`)
}

func TestCheckCmd(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, (&BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output}}).Run(env.global, &CLI{}))

	require.NoError(t, (&CheckCmd{Dir: env.output}).Run(env.global, &CLI{}))
	assert.Contains(t, env.stdout.String(), "0 broken")

	require.NoError(t, os.Remove(filepath.Join(env.output, "language.html")))
	err := (&CheckCmd{Dir: env.output}).Run(env.global, &CLI{})
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
	assert.Contains(t, env.stdout.String(), `broken link "language.html"`)

	err = (&CheckCmd{}).Run(env.global, &CLI{})
	require.Error(t, err)
}

func TestWatchCmd_StopsWithContext(t *testing.T) {
	env := newTestEnv(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	env.global.Ctx = ctx

	done := make(chan error, 1)
	go func() {
		done <- (&WatchCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output}, Debounce: 10 * time.Millisecond}).
			Run(env.global, &CLI{})
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(env.output, "index.html"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchedFiles(t *testing.T) {
	env := newTestEnv(t, "")
	cmd := &BuildCmd{SourceFlags: SourceFlags{Input: env.input, Output: env.output, NoPrompt: true}}
	cfg, _, err := cmd.prepare(env.global, &CLI{})
	require.NoError(t, err)
	assert.Equal(t, []string{env.input, ""}, watchedFiles(cfg, &CLI{}))

	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "glossgen.yaml"), []byte("site:\n  title: T\n"), 0o600))
	assert.Equal(t, []string{env.input, "", "glossgen.yaml"}, watchedFiles(cfg, &CLI{}))
}

func TestCLI_Parse(t *testing.T) {
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("glossgen"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"build", "-i", "terms.txt", "-o", "site", "--policy", "global", "--allow-duplicates", "--verify"})
	require.NoError(t, err)
	assert.Equal(t, "build", kctx.Command())
	assert.Equal(t, "terms.txt", cli.Build.Input)
	assert.Equal(t, "site", cli.Build.Output)
	assert.Equal(t, "global", cli.Build.Policy)
	assert.True(t, cli.Build.AllowDuplicates)
	assert.True(t, cli.Build.Verify)

	cli = &CLI{}
	parser, err = kong.New(cli, kong.Name("glossgen"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err = parser.Parse([]string{"watch", "-i", "terms.txt", "--interval", "5m"})
	require.NoError(t, err)
	assert.Equal(t, "watch", kctx.Command())
	assert.Equal(t, 5*time.Minute, cli.Watch.Interval)
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("  answer  \n"), &out)
	got, err := p.ask("Question?", "input.path")
	require.NoError(t, err)
	assert.Equal(t, "answer", got)
	assert.Equal(t, "Question?\n", out.String())

	_, err = newPrompter(nil, nil).ask("Question?", "input.path")
	require.Error(t, err)
}

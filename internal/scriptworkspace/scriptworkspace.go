// Package scriptworkspace materializes and drives the on-disk sandbox
// scripts run in: an npm/pnpm project pinning @datocms/cma-client-node,
// a runner that boots a live client from the process's own credentials,
// and validate/execute steps that spawn tsc and tsx as subprocesses.
package scriptworkspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/davetashner/datocms-mcp/internal/cmaclient"
	"github.com/davetashner/datocms-mcp/internal/schemagen"
)

const (
	defaultExecTimeout    = 60 * time.Second
	defaultMaxOutputBytes = 2048
	lockPollInterval      = 200 * time.Millisecond
	lockTimeout           = 5 * time.Minute
	staleLockAge          = 5 * time.Minute
)

// Config parameterizes a Workspace.
type Config struct {
	Dir              string
	PackageManager   string // "npm" or "pnpm"
	CMAClientVersion string
	ExecTimeout      time.Duration
	MaxOutputBytes   int
	Credentials      cmaclient.Config
}

// Workspace is the on-disk sandbox a script runs in.
type Workspace struct {
	cfg Config

	// schemaMu serializes schema.ts regeneration only; validateScript and
	// executeScript against distinct script files still run concurrently.
	schemaMu sync.Mutex
}

// New builds a Workspace, filling unset Config fields with defaults.
func New(cfg Config) *Workspace {
	if cfg.PackageManager == "" {
		cfg.PackageManager = "npm"
	}
	if cfg.CMAClientVersion == "" {
		cfg.CMAClientVersion = "latest"
	}
	if cfg.ExecTimeout <= 0 {
		cfg.ExecTimeout = defaultExecTimeout
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = defaultMaxOutputBytes
	}
	return &Workspace{cfg: cfg}
}

// Dir returns the workspace's on-disk root.
func (w *Workspace) Dir() string { return w.cfg.Dir }

// Installed reports whether node_modules has been materialized under the
// workspace root, without acquiring the workspace lock.
func (w *Workspace) Installed() bool {
	_, err := os.Stat(filepath.Join(w.cfg.Dir, "node_modules"))
	return err == nil
}

// Reset removes the workspace directory entirely, forcing the next Ensure
// to rematerialize package.json/tsconfig.json/runner.ts and reinstall
// node_modules from scratch.
func (w *Workspace) Reset() error {
	if err := os.RemoveAll(w.cfg.Dir); err != nil {
		return fmt.Errorf("scriptworkspace: reset: %w", err)
	}
	return nil
}

// Ensure idempotently materializes package.json, tsconfig.json, runner.ts
// and installs node_modules if missing, all under a cross-process
// exclusive lock.
func (w *Workspace) Ensure(ctx context.Context) error {
	lockDir := filepath.Join(w.cfg.Dir, ".lock")
	lk, err := acquireLock(ctx, lockDir)
	if err != nil {
		return fmt.Errorf("scriptworkspace: acquire lock: %w", err)
	}
	defer lk.release()

	if err := os.MkdirAll(filepath.Join(w.cfg.Dir, "scripts"), 0o700); err != nil {
		return fmt.Errorf("scriptworkspace: create scripts dir: %w", err)
	}

	if err := w.writeFile("package.json", w.packageJSON()); err != nil {
		return err
	}
	if err := w.writeFile("tsconfig.json", []byte(tsconfigJSON)); err != nil {
		return err
	}
	if err := w.writeFile("runner.ts", []byte(runnerTS)); err != nil {
		return err
	}

	nodeModules := filepath.Join(w.cfg.Dir, "node_modules")
	if _, err := os.Stat(nodeModules); errors.Is(err, os.ErrNotExist) {
		if err := w.install(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workspace) writeFile(name string, content []byte) error {
	if err := os.WriteFile(filepath.Join(w.cfg.Dir, name), content, 0o644); err != nil {
		return fmt.Errorf("scriptworkspace: write %s: %w", name, err)
	}
	return nil
}

func (w *Workspace) install(ctx context.Context) error {
	var cmd *exec.Cmd
	switch w.cfg.PackageManager {
	case "pnpm":
		cmd = exec.CommandContext(ctx, "pnpm", "install")
	default:
		cmd = exec.CommandContext(ctx, "npm", "install", "--no-audit", "--no-fund")
	}
	cmd.Dir = w.cfg.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("scriptworkspace: install dependencies: %w: %s", err, stderr.String())
	}
	return nil
}

func (w *Workspace) packageJSON() []byte {
	version := w.cfg.CMAClientVersion
	if version != "latest" && !semver.IsValid(ensureVPrefix(version)) {
		version = "latest"
	}

	pkg := map[string]any{
		"name":    "datocms-mcp-workspace",
		"private": true,
		"type":    "module",
		"dependencies": map[string]string{
			"@datocms/cma-client-node": version,
		},
		"devDependencies": map[string]string{
			"typescript":  "^5.6.0",
			"tsx":         "^4.19.0",
			"@types/node": "^22.0.0",
		},
	}
	data, _ := json.MarshalIndent(pkg, "", "  ")
	return append(data, '\n')
}

func ensureVPrefix(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

const tsconfigJSON = `{
  "compilerOptions": {
    "target": "ES2020",
    "module": "NodeNext",
    "moduleResolution": "NodeNext",
    "strict": true,
    "esModuleInterop": true,
    "skipLibCheck": true,
    "outDir": "dist"
  },
  "include": ["scripts/**/*.ts"]
}
`

const runnerTS = `import { buildClient } from "@datocms/cma-client-node";
import { pathToFileURL } from "node:url";

async function main() {
  const scriptPath = process.argv[2];
  if (!scriptPath) {
    console.error("usage: tsx runner.ts <script>");
    process.exit(1);
  }

  const client = buildClient({
    apiToken: process.env.DATOCMS_API_TOKEN ?? "",
    environment: process.env.DATOCMS_ENVIRONMENT,
    baseUrl: process.env.DATOCMS_BASE_URL,
  });

  const mod = await import(pathToFileURL(scriptPath).href);
  const run = mod.default;
  if (typeof run !== "function") {
    console.error("script has no default export function");
    process.exit(1);
  }

  await run(client);
}

main().catch((err) => {
  console.error(err);
  process.exit(1);
});
`

// WriteScript writes content to <workspace>/scripts/<name-without-prefix>
// mode 0600 and returns the file's path plus a cleanup func the caller
// must run once done with it.
func (w *Workspace) WriteScript(name, content string) (string, func(), error) {
	rel := strings.TrimPrefix(name, "script://")
	path := filepath.Join(w.cfg.Dir, "scripts", rel)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", nil, fmt.Errorf("scriptworkspace: create script dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", nil, fmt.Errorf("scriptworkspace: write script: %w", err)
	}

	return path, func() { os.Remove(path) }, nil
}

// RegenerateSchema (re)writes scripts/schema.ts with source. Unlike
// per-operation script files, schema.ts is never deleted between calls.
// The file lands at the root of any npm/pnpm/lerna/nx workspace the
// sandbox directory is itself part of, so every package in that layout
// shares one generated schema; ResolveOutputDir returns the sandbox
// directory unchanged when it isn't part of one.
func (w *Workspace) RegenerateSchema(source string) error {
	w.schemaMu.Lock()
	defer w.schemaMu.Unlock()

	outputDir, err := schemagen.ResolveOutputDir(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("scriptworkspace: resolve schema.ts location: %w", err)
	}
	scriptsDir := filepath.Join(outputDir, "scripts")
	if err := os.MkdirAll(scriptsDir, 0o700); err != nil {
		return fmt.Errorf("scriptworkspace: create scripts dir: %w", err)
	}

	path := filepath.Join(scriptsDir, "schema.ts")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		return fmt.Errorf("scriptworkspace: write schema.ts: %w", err)
	}
	return nil
}

// ValidateResult is tsc's verdict on a script.
type ValidateResult struct {
	Passed bool
	Output string
}

// ValidateScript spawns tsc --noEmit against scriptPath.
func (w *Workspace) ValidateScript(ctx context.Context, scriptPath string) (*ValidateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.ExecTimeout)
	defer cancel()

	rel := w.relToDir(scriptPath)
	cmd := exec.CommandContext(ctx, w.binPath("tsc"), "--noEmit", rel, "--pretty", "false")
	cmd.Dir = w.cfg.Dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()
	result := &ValidateResult{Output: out.String(), Passed: runErr == nil}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("scriptworkspace: run tsc: %w", runErr)
		}
	}
	return result, nil
}

// ExecuteOutcome tags how an executed script ended.
type ExecuteOutcome int

const (
	OutcomeSuccess ExecuteOutcome = iota
	OutcomeError
	OutcomeTimeout
	OutcomeSignaled
)

// ExecuteResult is the tagged outcome of running a script through tsx.
type ExecuteResult struct {
	Outcome  ExecuteOutcome
	ExitCode int
	Signal   string
	Stdout   string
	Stderr   string
}

// ExecuteScript spawns tsx runner.ts <scriptPath>, inheriting the current
// environment plus the three client env vars. It enforces the configured
// timeout (SIGKILL on expiry) and per-stream output byte cap.
func (w *Workspace) ExecuteScript(ctx context.Context, scriptPath string) (*ExecuteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.ExecTimeout)
	defer cancel()

	rel := w.relToDir(scriptPath)
	cmd := exec.CommandContext(ctx, w.binPath("tsx"), "runner.ts", rel)
	cmd.Dir = w.cfg.Dir
	cmd.Env = w.execEnv()

	stdout := newCappedBuffer(w.cfg.MaxOutputBytes)
	stderr := newCappedBuffer(w.cfg.MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()

	result := &ExecuteResult{Stdout: stdout.String(), Stderr: stderr.String()}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.Outcome = OutcomeTimeout
	case runErr == nil:
		result.Outcome = OutcomeSuccess
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				result.Outcome = OutcomeSignaled
				result.Signal = status.Signal().String()
			} else {
				result.Outcome = OutcomeError
			}
		} else {
			result.Outcome = OutcomeError
		}
	}
	return result, nil
}

func (w *Workspace) execEnv() []string {
	env := append(os.Environ(), "DATOCMS_API_TOKEN="+w.cfg.Credentials.APIToken)
	if w.cfg.Credentials.Environment != "" {
		env = append(env, "DATOCMS_ENVIRONMENT="+w.cfg.Credentials.Environment)
	}
	if w.cfg.Credentials.BaseURL != "" {
		env = append(env, "DATOCMS_BASE_URL="+w.cfg.Credentials.BaseURL)
	}
	return env
}

func (w *Workspace) relToDir(path string) string {
	rel, err := filepath.Rel(w.cfg.Dir, path)
	if err != nil {
		return path
	}
	return rel
}

func (w *Workspace) binPath(name string) string {
	return filepath.Join(w.cfg.Dir, "node_modules", ".bin", name)
}

// cappedBuffer collects at most limit bytes, appending a truncation
// sentinel once the cap is hit and dropping everything after.
type cappedBuffer struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func newCappedBuffer(limit int) *cappedBuffer {
	return &cappedBuffer{limit: limit}
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.truncated {
		return len(p), nil
	}

	remaining := c.limit - c.buf.Len()
	if remaining <= 0 {
		c.truncated = true
		c.buf.WriteString("\n…[truncated]")
		return len(p), nil
	}
	if len(p) > remaining {
		c.buf.Write(p[:remaining])
		c.truncated = true
		c.buf.WriteString("\n…[truncated]")
		return len(p), nil
	}
	c.buf.Write(p)
	return len(p), nil
}

func (c *cappedBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// lock is a cross-process exclusive lock backed by directory creation.
type lock struct {
	path string
}

func acquireLock(ctx context.Context, path string) (*lock, error) {
	return acquireLockPoll(ctx, path, lockPollInterval, lockTimeout)
}

func acquireLockPoll(ctx context.Context, path string, pollInterval, timeout time.Duration) (*lock, error) {
	deadline := time.Now().Add(timeout)
	for {
		err := os.Mkdir(path, 0o700)
		if err == nil {
			owner := fmt.Sprintf("pid=%d\nid=%s\n", os.Getpid(), uuid.NewString())
			_ = os.WriteFile(filepath.Join(path, "owner"), []byte(owner), 0o600)
			return &lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}

		if isStale(path) {
			os.RemoveAll(path)
			continue
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for lock %s", path)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func isStale(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) > staleLockAge
}

func (l *lock) release() {
	_ = os.RemoveAll(l.path)
}

package fasttext

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// response is a canned shell outcome.
type response struct {
	exitCode int
	stdout   string
	stderr   string
	err      error
}

// mockShell replays responses in order and records invocations.
// Once responses run out the last one repeats.
type mockShell struct {
	mu          sync.Mutex
	responses   []response
	invocations []domain.Invocation
}

func newMockShell(responses ...response) *mockShell {
	return &mockShell{responses: responses}
}

func (m *mockShell) Run(_ context.Context, inv domain.Invocation) (*domain.InvocationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.invocations)
	m.invocations = append(m.invocations, inv)
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	r := m.responses[idx]
	if r.err != nil {
		return nil, r.err
	}
	return &domain.InvocationResult{
		Command:  inv.Command,
		ExitCode: r.exitCode,
		Stdout:   []byte(r.stdout),
		Stderr:   []byte(r.stderr),
	}, nil
}

func (m *mockShell) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.invocations)
}

func (m *mockShell) last() domain.Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invocations[len(m.invocations)-1]
}

// mockInstaller reports presence from a script of Installed answers.
// The last answer repeats. A successful install does not change presence
// unless placeOnInstall is set.
type mockInstaller struct {
	mu             sync.Mutex
	presence       []bool
	checks         int
	installs       int
	installErr     error
	placeOnInstall bool
	placed         bool
}

func (m *mockInstaller) EnsureInstalled(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.installs++
	if m.installErr != nil {
		return m.installErr
	}
	if m.placeOnInstall {
		m.placed = true
	}
	return nil
}

func (m *mockInstaller) Installed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.placed {
		return true
	}
	idx := m.checks
	m.checks++
	if len(m.presence) == 0 {
		return false
	}
	if idx >= len(m.presence) {
		idx = len(m.presence) - 1
	}
	return m.presence[idx]
}

func (m *mockInstaller) Version() string {
	return domain.DefaultToolVersion
}

func (m *mockInstaller) Uninstall() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placed = false
	return nil
}

func (m *mockInstaller) installCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.installs
}

// presentInstaller is an installer whose executable is always on disk.
func presentInstaller() *mockInstaller {
	return &mockInstaller{presence: []bool{true}}
}

// newTestClient returns a Client over a shell replaying responses with
// the executable present.
func newTestClient(responses ...response) (*Client, *mockShell) {
	shell := newMockShell(responses...)
	runner := NewRunner(shell, presentInstaller(), "", nil)
	return NewClient(runner, nil), shell
}

func ok(stdout string) response {
	return response{stdout: stdout}
}

// headed is the pipeline outcome seen by RunHead: head exits 0 and the
// tool's own status is echoed on stderr.
func headed(stdout, stderr string, toolExit int) response {
	return response{stdout: stdout, stderr: fmt.Sprintf("%s%s%d\n", stderr, statusMarker, toolExit)}
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

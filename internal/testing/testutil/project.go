// Package testutil holds fixtures shared by tsui5's package tests.
package testutil

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fernandofps20/tsui5/internal/project"
	"github.com/fernandofps20/tsui5/pkg/input"
	"github.com/fernandofps20/tsui5/pkg/logger"
	"github.com/fernandofps20/tsui5/pkg/output"
	"github.com/spf13/afero"
)

// ScriptedPrompter answers questions from a fixed script, keyed by question
// Name. Each question consumes answers in order until one validates, the
// way a user retries at a prompt. Running out of answers cancels.
type ScriptedPrompter struct {
	mu       sync.Mutex
	answers  map[string][]string
	Asked    []string // Question names in the order they were asked
	Rejected []string // Answers refused by a validator
}

// NewScriptedPrompter creates a prompter with the given answers.
func NewScriptedPrompter(answers map[string][]string) *ScriptedPrompter {
	copied := make(map[string][]string, len(answers))
	for k, v := range answers {
		copied[k] = append([]string(nil), v...)
	}
	return &ScriptedPrompter{answers: copied}
}

// Ask implements input.Asker.
func (p *ScriptedPrompter) Ask(q input.Question) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Asked = append(p.Asked, q.Name)
	for {
		queue := p.answers[q.Name]
		if len(queue) == 0 {
			return "", input.ErrCancelled
		}
		answer := queue[0]
		p.answers[q.Name] = queue[1:]

		if answer == "" {
			answer = q.Default
		}
		if q.Validate != nil {
			if err := q.Validate(answer); err != nil {
				p.Rejected = append(p.Rejected, answer)
				continue
			}
		}
		return answer, nil
	}
}

// TestProject is a project scaffolded on an in-memory filesystem.
type TestProject struct {
	Fs     afero.Fs
	Parent string
	Name   string
	Props  *project.Properties
	Output *bytes.Buffer
}

// Root is the project directory.
func (p *TestProject) Root() string {
	return filepath.Join(p.Parent, p.Name)
}

// ReadFile returns the content of a file relative to the project root.
func (p *TestProject) ReadFile(t *testing.T, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(p.Fs, filepath.Join(p.Root(), filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// NewTestProject scaffolds name with the given namespace and author on a
// fresh MemMapFs and fails the test on any error.
func NewTestProject(t *testing.T, name, namespace, author string) *TestProject {
	t.Helper()

	fsys := afero.NewMemMapFs()
	parent := filepath.Join(string(filepath.Separator), "work")
	var buf bytes.Buffer

	s := project.NewScaffolder(project.Options{
		Fs: fsys,
		Prompter: NewScriptedPrompter(map[string][]string{
			"namespace": {namespace},
			"author":    {author},
		}),
		Printer: output.New(&buf),
		Logger:  logger.NewSilentLogger(),
	})

	props, err := s.Scaffold(context.Background(), parent, name)
	if err != nil {
		t.Fatalf("scaffolding %s: %v", name, err)
	}

	return &TestProject{Fs: fsys, Parent: parent, Name: name, Props: props, Output: &buf}
}

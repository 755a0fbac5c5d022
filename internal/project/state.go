package project

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fernandofps20/tsui5/internal/apperr"
	"github.com/fernandofps20/tsui5/pkg/generator"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
)

// StateFile marks a directory as a tsui5 project.
const StateFile = "tsui5.json"

//go:embed schema/state.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func stateSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling state schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("state.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding state schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("state.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling state schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// LoadState reads the state file of the project rooted at root.
func LoadState(fsys afero.Fs, root string) (*Properties, error) {
	path := filepath.Join(root, StateFile)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.New(apperr.NoProjectFound, "There's no tsui5 project in this folder")
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	schema, err := stateSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.CorruptState, err, "%s is not valid JSON", StateFile)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, apperr.Wrap(apperr.CorruptState, err, "%s does not describe a tsui5 project", StateFile)
	}

	var props Properties
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, apperr.Wrap(apperr.CorruptState, err, "%s does not describe a tsui5 project", StateFile)
	}
	return &props, nil
}

// stateOp returns the operation that writes props as the state file of root.
func stateOp(fsys afero.Fs, root string, props *Properties) (*generator.WriteFileOp, error) {
	data, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", StateFile, err)
	}
	return &generator.WriteFileOp{
		Fs:      fsys,
		Path:    filepath.Join(root, StateFile),
		Content: append(data, '\n'),
		Mode:    0644,
	}, nil
}

// SaveState writes props as the state file of root, replacing any existing
// one. report runs once the file is written; it may be nil.
func SaveState(ctx context.Context, fsys afero.Fs, root string, props *Properties, report func()) error {
	op, err := stateOp(fsys, root, props)
	if err != nil {
		return err
	}
	err = generator.Execute(ctx, []generator.Operation{op}, generator.ExecuteOptions{
		Force: true,
		Report: func(generator.Operation) {
			if report != nil {
				report()
			}
		},
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", StateFile, err)
	}
	return nil
}

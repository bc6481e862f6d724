package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/modgridgo/internal/config"
	"github.com/vk/modgridgo/internal/ctxlog"
	"github.com/vk/modgridgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is a struct used to decode all supported top-level blocks from any file.
type fileRoot struct {
	Modules     []*moduleBlock     `hcl:"module,block"`
	Entrypoints []*entrypointBlock `hcl:"entrypoint,block"`
	Remain      hcl.Body           `hcl:",remain"`
}

// moduleBlock is the raw decoded form of a `module` block.
type moduleBlock struct {
	Name     string         `hcl:"name,label"`
	Requires []string       `hcl:"requires,optional"`
	Factory  string         `hcl:"factory"`
	Params   hcl.Expression `hcl:"params,optional"`
}

// entrypointBlock is the raw decoded form of an `entrypoint` block.
type entrypointBlock struct {
	Name   string `hcl:"name,label"`
	Module string `hcl:"module"`
}

// Load orchestrates the HCL configuration loading process. It is agnostic to
// the origin of the paths and merges any valid block from any file, in file
// order, into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}

	var files []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range found {
			if _, wasSeen := seen[f]; wasSeen {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Modules {
			def, err := translateModule(block)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Modules = append(model.Modules, def)
		}
		for _, block := range root.Entrypoints {
			model.Entrypoints = append(model.Entrypoints, block.Module)
		}
	}

	logger.Debug("HCL loading complete.", "modules", len(model.Modules), "entrypoints", len(model.Entrypoints))
	return model, nil
}

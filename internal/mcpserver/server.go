// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/datocms-mcp/internal/cmaclient"
	"github.com/davetashner/datocms-mcp/internal/cmaschema"
	"github.com/davetashner/datocms-mcp/internal/config"
	"github.com/davetashner/datocms-mcp/internal/hyperschema"
	"github.com/davetashner/datocms-mcp/internal/resourceschema"
	"github.com/davetashner/datocms-mcp/internal/scriptstore"
	"github.com/davetashner/datocms-mcp/internal/scriptworkspace"
	"github.com/davetashner/datocms-mcp/internal/typeprogram"
)

// Deps bundles every loader, store, and client the tool handlers need,
// made explicit and injectable for tests instead of living as package-level
// globals.
type Deps struct {
	Hyperschema *hyperschema.Loader
	Resources   *resourceschema.Loader
	TypeProgram func() (*typeprogram.Program, error)
	Scripts     *scriptstore.Store
	Workspace   *scriptworkspace.Workspace
	Client      cmaclient.Client
	Config      config.Config
}

// NewDeps builds the default Deps for cfg: a hyperschema loader against the
// production endpoint, the embedded resources.json manifest, the live
// typeprogram, an in-memory script store, an on-disk script workspace, and
// (only when an API token is configured) an HTTP-backed CMA client.
func NewDeps(cfg config.Config) *Deps {
	deps := &Deps{
		Hyperschema: hyperschema.New(""),
		Resources:   resourceschema.NewFromBytes(cmaschema.ResourcesJSON),
		TypeProgram: typeprogram.Get,
		Scripts:     scriptstore.New(),
		Config:      cfg,
	}

	clientCfg := cmaclient.Config{APIToken: cfg.APIToken, Environment: cfg.Environment, BaseURL: cfg.BaseURL}
	if cfg.APIToken != "" {
		deps.Client = cmaclient.New(clientCfg)
	}

	workspaceCfg := scriptworkspace.Config{
		Dir:            workspaceDir(),
		PackageManager: cfg.PackageManager,
		MaxOutputBytes: cfg.MaxOutputBytes,
		Credentials:    clientCfg,
	}
	if d, err := time.ParseDuration(cfg.ExecTimeout); err == nil {
		workspaceCfg.ExecTimeout = d
	}
	deps.Workspace = scriptworkspace.New(workspaceCfg)

	return deps
}

// workspaceDir returns the on-disk sandbox root scripts run in, a
// datocms-mcp subdirectory of the user's cache dir.
func workspaceDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "datocms-mcp", "workspace")
}

// New creates an MCP server with the DatoCMS tool set registered. When
// deps.Config.APIToken is empty, only the documentation and script
// create/update/view tools register.
func New(version string, deps *Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "datocms-mcp",
		Version: version,
	}, nil)

	registerTools(server, deps)
	return server
}

// Run creates an MCP server and runs it on the given transport. It blocks
// until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, transport mcp.Transport, deps *Deps) error {
	server := New(version, deps)
	return server.Run(ctx, transport)
}

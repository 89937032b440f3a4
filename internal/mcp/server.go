package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronCycle", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronCycle progressive-overload training server. Query the active mesocycle, computed week targets, workout sets, and exercise history, and log completed sets. Weights are in the unit the plan was configured with."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetActiveMesocycle, Handler: h.getActiveMesocycle},
		server.ServerTool{Tool: toolGetNextTargets, Handler: h.getNextTargets},
		server.ServerTool{Tool: toolGetWorkoutSets, Handler: h.getWorkoutSets},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolLogSet, Handler: h.logSet},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resActiveMesocycle, Handler: h.activeMesocycle},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resActiveMesocycle = mcp.NewResource(
	"ironcycle://active_mesocycle",
	"Active Mesocycle",
	mcp.WithResourceDescription("The single currently active training block, with its duration and start date"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"ironcycle://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All known exercises with their ids, for use as exercise_id in tools"),
	mcp.WithMIMEType("application/json"),
)

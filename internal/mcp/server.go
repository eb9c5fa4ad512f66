package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftlog strength training log. Browse the exercise catalog, read logged sets, personal records, the last session and per-exercise history, and log new sets. Weights are in kilograms."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExerciseSets, Handler: h.getExerciseSets},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetLastSession, Handler: h.getLastSession},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolListFavorites, Handler: h.listFavorites},
		server.ServerTool{Tool: toolLogSet, Handler: h.logSet},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
		server.ServerResource{Resource: resFavorites, Handler: h.favorites},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"liftlog://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All built-in exercises with category and muscle groups"),
	mcp.WithMIMEType("application/json"),
)

var resFavorites = mcp.NewResource(
	"liftlog://favorites",
	"Favorite Exercises",
	mcp.WithResourceDescription("Catalog entries the user starred"),
	mcp.WithMIMEType("application/json"),
)

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerHabitsResource(srv, svc)
	registerHabitTemplate(srv, svc)
}

func registerHabitsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"consistency://habits",
		"Habits",
		mcp.WithResourceDescription("Every tracked habit with its recorded entries."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		habits, err := svc.ListHabits(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"habits": habits,
			"count":  len(habits),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerHabitTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"consistency://habits/{id}",
		"Habit Details",
		mcp.WithTemplateDescription("A single habit and its entries, newest first."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("habit id is required")
		}

		dto, err := svc.HabitByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"habit": dto})
	})
}

// templateArg reads a URI template variable, which may arrive as a string or
// a single element list depending on the matcher.
func templateArg(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		if len(x) > 0 {
			return x[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

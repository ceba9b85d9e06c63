package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/consistency/pkg/app"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListHabitsTool(srv, svc)
	registerAddHabitTool(srv, svc)
	registerEntryTool(srv, "toggle_entry", "Toggle a yes/no habit on a date.", svc.ToggleEntry)
	registerEntryTool(srv, "increment_entry", "Quick completion: toggles yes/no habits, adds one unit (1 or 0.1) to numeric habits.", svc.IncrementEntry)
	registerEntryTool(srv, "decrement_entry", "Remove one unit from a numeric habit, stopping at zero.", svc.DecrementEntry)
	registerEntryTool(srv, "clear_entry", "Remove the entry for a date, returning it to unset.", svc.ClearEntry)
	registerSetEntryTool(srv, svc)
	registerTimelineTool(srv, svc)
}

func registerListHabitsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_habits",
		mcp.WithDescription("List every habit with its recorded entries."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		habits, err := svc.ListHabits(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"habits": habits,
			"count":  len(habits),
		})
	})
}

func registerAddHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_habit",
		mcp.WithDescription("Create a new habit."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name of the habit."),
		),
		mcp.WithString("type",
			mcp.Description("What a day records: yes/no, a whole number count or a decimal measurement."),
			mcp.Enum("boolean", "whole_number", "decimal"),
		),
		mcp.WithString("unit",
			mcp.Description("Unit label for numeric habits, such as pages or miles."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name string `json:"name"`
			Type string `json:"type"`
			Unit string `json:"unit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddHabit(ctx, AddHabitOptions{Name: args.Name, Type: args.Type, Unit: args.Unit})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func withHabitAndDate() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Habit identifier."),
		),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD, 'today', 'yesterday' or -N days. Defaults to today."),
		),
	}
}

func registerEntryTool(srv *server.MCPServer, name, description string,
	fn func(ctx context.Context, id, date string) (*app.HabitView, error)) {
	opts := append([]mcp.ToolOption{mcp.WithDescription(description)}, withHabitAndDate()...)
	tool := mcp.NewTool(name, opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date := request.GetString("date", "")

		dto, err := fn(ctx, id, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetEntryTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Record a value for a numeric habit. Whole number habits drop the fraction, decimal habits keep one digit."),
	}, withHabitAndDate()...)
	opts = append(opts, mcp.WithString("value",
		mcp.Required(),
		mcp.Description("Non-negative number, for example 3 or 2.5."),
	))
	tool := mcp.NewTool("set_entry", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID    string `json:"id"`
			Date  string `json:"date"`
			Value any    `json:"value"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		var value string
		switch v := args.Value.(type) {
		case string:
			value = v
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		case nil:
			return mcp.NewToolResultError("value is required"), nil
		default:
			value = fmt.Sprint(v)
		}

		dto, err := svc.SetEntry(ctx, args.ID, args.Date, value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerTimelineTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"timeline",
		mcp.WithDescription("Grid of every habit over a run of days, most recent first."),
		mcp.WithString("date",
			mcp.Description("Most recent date to include. Defaults to today."),
		),
		mcp.WithNumber("days",
			mcp.Description(fmt.Sprintf("Number of days to include (default %d, max 366).", DefaultTimelineDays)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := request.GetString("date", "")
		days := request.GetInt("days", DefaultTimelineDays)

		grid, err := svc.Timeline(ctx, date, days)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(grid)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/generator"
)

type analyzeInput struct {
	Schema   schemaInput `json:"schema"              jsonschema:"The JSON Schema document to analyze"`
	Name     string      `json:"name,omitempty"      jsonschema:"Name of the top-level declaration"`
	Filter   string      `json:"filter,omitempty"    jsonschema:"Only list declarations whose name matches (supports * glob)"`
	Cyclic   bool        `json:"cyclic,omitempty"    jsonschema:"Only list declarations that are part of a reference cycle"`
	Lift     bool        `json:"lift,omitempty"      jsonschema:"Lift inline object schemas into named declarations"`
	LiftDefs bool        `json:"lift_defs,omitempty" jsonschema:"Also lift inside $defs and definitions declarations"`
	Offset   int         `json:"offset,omitempty"    jsonschema:"Skip the first N declarations"`
	Limit    int         `json:"limit,omitempty"     jsonschema:"Maximum declarations to return (default 100, configurable via JSZ_LIST_LIMIT)"`
}

type declarationInfo struct {
	Name         string   `json:"name"`
	Pointer      string   `json:"pointer"`
	Type         string   `json:"type"`
	Cyclic       bool     `json:"cyclic,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

type analyzeOutput struct {
	Root         string            `json:"root"`
	Total        int               `json:"total"`
	Matched      int               `json:"matched"`
	Returned     int               `json:"returned"`
	Declarations []declarationInfo `json:"declarations,omitempty"`
	Cycles       [][]string        `json:"cycles,omitempty"`
	Lifted       []string          `json:"lifted,omitempty"`
	Issues       []issueInfo       `json:"issues,omitempty"`
}

func handleAnalyze(ctx context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
	if err := validateGlobPattern(input.Filter); err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	doc, err := input.Schema.load(ctx)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	settings := generationOptions{
		Name:     input.Name,
		Lift:     input.Lift,
		LiftDefs: input.LiftDefs,
	}
	result, err := generator.GenerateWithOptions(settings.options(ctx, doc)...)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	var matched []declarationInfo
	for _, d := range result.Declarations {
		if input.Filter != "" && !matchGlobName(d.Name, input.Filter) {
			continue
		}
		if input.Cyclic && !d.Cyclic {
			continue
		}
		matched = append(matched, declarationInfo{
			Name:         d.Name,
			Pointer:      d.Pointer,
			Type:         d.Type,
			Cyclic:       d.Cyclic,
			Dependencies: d.Dependencies,
		})
	}

	output := analyzeOutput{
		Root:    result.Name,
		Total:   len(result.Declarations),
		Matched: len(matched),
		Cycles:  result.Cycles,
		Lifted:  result.Lifted,
		Issues:  issueInfos(result.Issues),
	}
	output.Declarations = paginate(matched, input.Offset, input.Limit)
	output.Returned = len(output.Declarations)
	return nil, output, nil
}

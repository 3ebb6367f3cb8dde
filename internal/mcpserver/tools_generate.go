package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/generator"
)

type generateInput struct {
	Schema      schemaInput `json:"schema"                  jsonschema:"The JSON Schema document to generate validators from"`
	Name        string      `json:"name,omitempty"          jsonschema:"Name of the top-level declaration. Omit to export the schema as the module default."`
	Module      string      `json:"module,omitempty"        jsonschema:"Module convention: esm, cjs or none (default: esm, configurable via JSZ_MODULE)"`
	TypeExport  bool        `json:"type_export,omitempty"   jsonschema:"Also export the inferred TypeScript type. Requires name and esm."`
	NoImports   bool        `json:"no_imports,omitempty"    jsonschema:"Omit the zod import statement"`
	StrictOneOf *bool       `json:"strict_one_of,omitempty" jsonschema:"Require exactly one oneOf member to match"`
	Lift        bool        `json:"lift,omitempty"          jsonschema:"Lift inline object schemas into named declarations"`
	LiftDefs    bool        `json:"lift_defs,omitempty"     jsonschema:"Also lift inside $defs and definitions declarations"`
	Output      string      `json:"output,omitempty"        jsonschema:"File path to write the module to. If omitted the module is returned inline."`
}

type issueInfo struct {
	Severity    string `json:"severity"`
	Pointer     string `json:"pointer"`
	Message     string `json:"message"`
	Keyword     string `json:"keyword,omitempty"`
	Declaration string `json:"declaration,omitempty"`
}

type generateOutput struct {
	Success          bool        `json:"success"`
	Name             string      `json:"name"`
	DeclarationCount int         `json:"declaration_count"`
	Cycles           [][]string  `json:"cycles,omitempty"`
	Lifted           []string    `json:"lifted,omitempty"`
	WarningCount     int         `json:"warning_count"`
	InfoCount        int         `json:"info_count"`
	Issues           []issueInfo `json:"issues,omitempty"`
	Module           string      `json:"module,omitempty"`
	WrittenTo        string      `json:"written_to,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	doc, err := input.Schema.load(ctx)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	settings := generationOptions{
		Name:        input.Name,
		Module:      input.Module,
		TypeExport:  input.TypeExport,
		NoImports:   input.NoImports,
		StrictOneOf: input.StrictOneOf,
		Lift:        input.Lift,
		LiftDefs:    input.LiftDefs,
	}
	result, err := generator.GenerateWithOptions(settings.options(ctx, doc)...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:          result.Success,
		Name:             result.Name,
		DeclarationCount: len(result.Declarations),
		Cycles:           result.Cycles,
		Lifted:           result.Lifted,
		WarningCount:     result.WarningCount,
		InfoCount:        result.InfoCount,
		Issues:           issueInfos(result.Issues),
	}

	if input.Output != "" {
		if err := os.WriteFile(input.Output, []byte(result.Output), 0o644); err != nil { //nolint:gosec // output path is chosen by the MCP client
			return errResult(fmt.Errorf("failed to write output file: %w", err)), generateOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Module = result.Output
	}

	return nil, output, nil
}

func issueInfos(issues []generator.GenerateIssue) []issueInfo {
	out := makeSlice[issueInfo](len(issues))
	for _, issue := range issues {
		out = append(out, issueInfo{
			Severity:    issue.Severity.String(),
			Pointer:     issue.Pointer,
			Message:     issue.Message,
			Keyword:     issue.Keyword,
			Declaration: issue.Declaration,
		})
	}
	return out
}

package analyst

import (
	_ "embed"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/analysis.json
var analysisSchemaJSON []byte

//go:embed schema/mitigation.json
var mitigationSchemaJSON []byte

var (
	analysisSchema   = mustSchema(analysisSchemaJSON)
	mitigationSchema = mustSchema(mitigationSchemaJSON)
)

func mustSchema(data []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(err)
	}
	return s
}

// validateResponse checks an LLM reply against a response schema
func validateResponse(schema *gojsonschema.Schema, text string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return goerr.Wrap(ErrInvalidResponse, "response is not valid JSON",
			goerr.V("cause", err.Error()),
			goerr.V("response", text),
		)
	}

	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			violations = append(violations, e.String())
		}
		return goerr.Wrap(ErrInvalidResponse, "response violates schema",
			goerr.V("violations", strings.Join(violations, "; ")),
			goerr.V("response", text),
		)
	}

	return nil
}

func riskLevelParameter(desc string) *gollem.Parameter {
	return &gollem.Parameter{
		Type:        gollem.TypeString,
		Description: desc,
		Enum:        []string{"LOW", "MODERATE", "HIGH", "CRITICAL"},
	}
}

// analysisResponseSchema is the structured output hint for providers that accept one
func analysisResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "AnalysisResponse",
		Description: "FOCI risk analysis of a company",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"riskScore": {
				Type:        gollem.TypeInteger,
				Description: "Overall FOCI risk score from 0 to 100",
			},
			"riskLevel": riskLevelParameter("Overall FOCI risk level"),
			"risks": {
				Type:        gollem.TypeArray,
				Description: "Identified FOCI risks",
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"type": {
							Type:        gollem.TypeString,
							Description: "FOCI concern area of the risk",
						},
						"severity": {
							Type:        gollem.TypeString,
							Description: "Severity of the risk",
						},
						"description": {
							Type:        gollem.TypeString,
							Description: "Brief plain-English description of the risk",
						},
						"evidence": {
							Type:        gollem.TypeString,
							Description: "Data point supporting the risk",
						},
					},
				},
			},
		},
	}
}

func mitigationResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "MitigationImpactResponse",
		Description: "Updated FOCI risk assessment after proposed changes",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"newRiskScore": {
				Type:        gollem.TypeInteger,
				Description: "Updated risk score from 0 to 100",
			},
			"newRiskLevel": riskLevelParameter("Updated risk level"),
			"impactSummary": {
				Type:        gollem.TypeString,
				Description: "Explanation of improvements",
			},
			"remainingConcerns": {
				Type:        gollem.TypeArray,
				Description: "Concerns that remain after the changes",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
			},
		},
	}
}

package analyst

import (
	_ "embed"
	"strconv"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

const (
	analysisSystemPrompt   = "You are a national security analyst specializing in Foreign Ownership, Control, or Influence (FOCI) assessments. Provide clear, actionable analysis in JSON format."
	mitigationSystemPrompt = "You are a FOCI mitigation specialist. Analyze how proposed changes affect national security risk profiles."
)

//go:embed prompt/analysis.md
var analysisPromptTmpl string

//go:embed prompt/mitigation.md
var mitigationPromptTmpl string

var (
	analysisPrompt   = template.Must(template.New("analysis").Parse(analysisPromptTmpl))
	mitigationPrompt = template.Must(template.New("mitigation").Parse(mitigationPromptTmpl))
)

func buildAnalysisPrompt(dossier *model.Dossier) (string, error) {
	var sb strings.Builder
	if err := analysisPrompt.Execute(&sb, map[string]any{
		"Name":         dossier.Name,
		"ConcernAreas": concernAreaList(),
		"DataPoints":   dossier.DataPoints.Text(),
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render analysis prompt", goerr.V("dossier_id", dossier.ID))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func buildMitigationPrompt(input MitigationInput) (string, error) {
	descs := make([]string, 0, len(input.OriginalRisks))
	for _, r := range input.OriginalRisks {
		descs = append(descs, r.Description)
	}

	changes := make([]string, 0, 4)
	for _, c := range input.Settings.Changes() {
		changes = append(changes, c.Key+": "+c.Value)
	}

	var sb strings.Builder
	if err := mitigationPrompt.Execute(&sb, map[string]any{
		"OriginalScore": strconv.Itoa(input.OriginalScore),
		"OriginalRisks": strings.Join(descs, "; "),
		"Changes":       strings.Join(changes, "\n"),
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render mitigation prompt")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// concernAreaList renders the known areas as "'A,' 'B,' or 'C'"
func concernAreaList() string {
	areas := types.AllConcernAreas()
	quoted := make([]string, 0, len(areas))
	for i, a := range areas {
		if i == len(areas)-1 {
			quoted = append(quoted, "or '"+a.String()+"'")
		} else {
			quoted = append(quoted, "'"+a.String()+",'")
		}
	}
	return strings.Join(quoted, " ")
}

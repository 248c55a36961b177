package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/cli/config"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	domainConfig "github.com/secmon-lab/cipher/pkg/domain/model/config"
	"github.com/secmon-lab/cipher/pkg/domain/types"
	"github.com/secmon-lab/cipher/pkg/usecase"
	"github.com/secmon-lab/cipher/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// scoreResult is what the score command prints
type scoreResult struct {
	Name          string                   `json:"name,omitempty"`
	OriginalScore int                      `json:"originalScore"`
	OriginalLevel types.RiskLevel          `json:"originalLevel,omitempty"`
	Settings      model.MitigationSettings `json:"settings"`
	Assessment    *model.RiskAssessment    `json:"assessment"`
	Impact        *model.MitigationImpact  `json:"impact,omitempty"`
}

func cmdScore() *cli.Command {
	var (
		dossierID    string
		initialScore int
		ownership    float64
		boardSeats   int
		financing    bool
		personnel    bool
		assess       bool
		asJSON       bool
	)
	var repoCfg config.Repository
	var llmCfg config.LLM
	var scoringCfg config.Scoring

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "dossier",
			Aliases:     []string{"d"},
			Usage:       "Dossier whose bundled analysis is the starting point",
			Value:       "red-october",
			Destination: &dossierID,
		},
		&cli.IntFlag{
			Name:        "initial-score",
			Usage:       "Start from this score instead of a dossier (0-100)",
			Value:       -1,
			Destination: &initialScore,
		},
		&cli.FloatFlag{
			Name:        "ownership",
			Usage:       "Foreign ownership percent after mitigation (default: baseline)",
			Value:       -1,
			Category:    "Levers",
			Destination: &ownership,
		},
		&cli.IntFlag{
			Name:        "board-seats",
			Usage:       "Foreign board seats after mitigation (default: baseline)",
			Value:       -1,
			Category:    "Levers",
			Destination: &boardSeats,
		},
		&cli.BoolFlag{
			Name:        "eliminate-financing",
			Usage:       "Eliminate foreign financing",
			Category:    "Levers",
			Destination: &financing,
		},
		&cli.BoolFlag{
			Name:        "address-personnel",
			Usage:       "Address key personnel foreign ties",
			Category:    "Levers",
			Destination: &personnel,
		},
		&cli.BoolFlag{
			Name:        "assess",
			Usage:       "Ask the LLM for an impact assessment",
			Destination: &assess,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Project the risk score under mitigation levers",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var llm *config.LLM
			if assess {
				llm = &llmCfg
			}
			uc, err := buildUseCases(ctx, &repoCfg, llm, &scoringCfg, nil)
			if err != nil {
				return err
			}

			settings := leverSettings(uc.Mitigation.ScoringModel(), ownership, boardSeats, financing, personnel)

			var result *scoreResult
			if c.IsSet("initial-score") {
				result, err = scoreFromInitial(uc.Mitigation.ScoringModel(), initialScore, settings)
			} else {
				result, err = scoreFromDossier(ctx, uc, types.DossierID(dossierID), settings, assess)
			}
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if asJSON {
				safe.WriteJSON(ctx, w, result)
				return nil
			}
			printScore(w, result)
			return nil
		},
	}
}

// leverSettings starts from the baseline levers and applies the ones given on the command line
func leverSettings(m *domainConfig.ScoringModel, ownership float64, boardSeats int, financing, personnel bool) model.MitigationSettings {
	settings := model.BaselineSettings(m)
	if ownership >= 0 {
		settings.ForeignOwnershipPercent = ownership
	}
	if boardSeats >= 0 {
		settings.ForeignBoardSeats = boardSeats
	}
	settings.EliminateForeignFinancing = financing
	settings.AddressPersonnelTies = personnel
	return settings
}

func scoreFromInitial(m *domainConfig.ScoringModel, initialScore int, settings model.MitigationSettings) (*scoreResult, error) {
	if initialScore < 0 || initialScore > 100 {
		return nil, goerr.New("initial score must be between 0 and 100", goerr.V("initial_score", initialScore))
	}
	if err := settings.Validate(m.BaselineBoardSeats); err != nil {
		return nil, err
	}

	return &scoreResult{
		OriginalScore: initialScore,
		Settings:      settings,
		Assessment:    model.ProjectRisk(m, initialScore, settings),
	}, nil
}

func scoreFromDossier(ctx context.Context, uc *usecase.UseCases, id types.DossierID, settings model.MitigationSettings, assess bool) (*scoreResult, error) {
	dossier, err := uc.Dossier.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req := usecase.MitigationRequest{Settings: settings}
	result := &scoreResult{Name: dossier.Name}

	var sim *usecase.MitigationSimulation
	if assess {
		assessment, err := uc.Mitigation.Assess(ctx, id, req)
		if err != nil {
			return nil, err
		}
		sim = assessment.MitigationSimulation
		result.Impact = assessment.Impact
	} else {
		sim, err = uc.Mitigation.Simulate(ctx, id, req)
		if err != nil {
			return nil, err
		}
	}

	result.OriginalScore = sim.OriginalScore
	result.OriginalLevel = sim.OriginalLevel
	result.Settings = sim.Settings
	result.Assessment = sim.Assessment
	return result, nil
}

func levelColor(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskLevelCritical, types.RiskLevelHigh:
		return color.New(color.FgRed, color.Bold)
	case types.RiskLevelModerate:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func printScore(w io.Writer, r *scoreResult) {
	a := r.Assessment
	label := color.New(color.Faint)

	if r.Name != "" {
		_, _ = color.New(color.Bold).Fprintln(w, r.Name)
	}

	_, _ = label.Fprintf(w, "  %-11s", "Original")
	_, _ = fmt.Fprintf(w, "%d", r.OriginalScore)
	if r.OriginalLevel != "" {
		_, _ = levelColor(r.OriginalLevel).Fprintf(w, " %s", r.OriginalLevel)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = label.Fprintf(w, "  %-11s", "Projected")
	_, _ = fmt.Fprintf(w, "%d ", a.RiskScore)
	_, _ = levelColor(a.RiskLevel).Fprint(w, a.RiskLevel)
	_, _ = fmt.Fprintf(w, " (-%d)\n", a.RiskReduction)

	_, _ = label.Fprintf(w, "  %-11s", "Breakdown")
	_, _ = fmt.Fprintf(w, "ownership -%d  board -%d  financing -%d  personnel -%d\n",
		a.ImpactBreakdown.Ownership,
		a.ImpactBreakdown.Board,
		a.ImpactBreakdown.Financing,
		a.ImpactBreakdown.Personnel,
	)

	_, _ = label.Fprintf(w, "  %-11s", "Progress")
	_, _ = fmt.Fprintf(w, "%.1f%% of %d max\n", a.Progress.Total, a.MaxReduction)

	_, _ = label.Fprintf(w, "  %-11s", "Status")
	_, _ = fmt.Fprintln(w, a.Status.Message)
	_, _ = label.Fprintf(w, "  %-11s", "Next steps")
	_, _ = fmt.Fprintln(w, a.Status.NextSteps)

	if r.Impact != nil {
		_, _ = label.Fprintf(w, "  %-11s", "Assessment")
		_, _ = fmt.Fprintf(w, "%d %s (%s)\n", r.Impact.NewRiskScore, r.Impact.NewRiskLevel, r.Impact.Source)
		_, _ = fmt.Fprintf(w, "  %-11s%s\n", "", r.Impact.ImpactSummary)
		for _, concern := range r.Impact.RemainingConcerns {
			_, _ = fmt.Fprintf(w, "  %-11s- %s\n", "", concern)
		}
	}
}

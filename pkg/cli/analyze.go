package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/cli/config"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
	"github.com/secmon-lab/cipher/pkg/utils/safe"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdAnalyze() *cli.Command {
	var dossierIDs []string
	var all bool
	var repoCfg config.Repository
	var llmCfg config.LLM

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "dossier",
			Aliases:     []string{"d"},
			Usage:       "Dossier ID to analyze (repeatable)",
			Destination: &dossierIDs,
		},
		&cli.BoolFlag{
			Name:        "all",
			Usage:       "Analyze every bundled dossier",
			Destination: &all,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Analyze dossiers and print the results as JSON",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if len(dossierIDs) == 0 && !all {
				return goerr.New("either --dossier or --all is required")
			}

			uc, err := buildUseCases(ctx, &repoCfg, &llmCfg, &config.Scoring{}, nil)
			if err != nil {
				return err
			}

			ids := make([]types.DossierID, 0, len(dossierIDs))
			if all {
				summaries, err := uc.Dossier.List(ctx)
				if err != nil {
					return err
				}
				for _, s := range summaries {
					ids = append(ids, s.ID)
				}
			} else {
				for _, id := range dossierIDs {
					ids = append(ids, types.DossierID(id))
				}
			}

			results := make([]*model.Analysis, len(ids))
			eg, egCtx := errgroup.WithContext(ctx)
			for i, id := range ids {
				eg.Go(func() error {
					analysis, err := uc.Analysis.Run(egCtx, id)
					if err != nil {
						return goerr.Wrap(err, "failed to analyze dossier", goerr.V("dossier_id", id))
					}
					results[i] = analysis
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			safe.WriteJSON(ctx, c.Root().Writer, results)
			return nil
		},
	}
}

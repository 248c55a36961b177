package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/secmon-lab/cipher/pkg/cli/config"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/usecase"
	"github.com/secmon-lab/cipher/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdDossiers() *cli.Command {
	var asJSON bool
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "dossiers",
		Usage: "List the bundled dossiers",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure()
			if err != nil {
				return err
			}

			summaries, err := usecase.New(repo).Dossier.List(ctx)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if asJSON {
				safe.WriteJSON(ctx, w, summaries)
				return nil
			}
			printDossiers(w, summaries)
			return nil
		},
	}
}

func printDossiers(w io.Writer, summaries []model.DossierSummary) {
	bold := color.New(color.Bold)
	for _, s := range summaries {
		_, _ = bold.Fprintf(w, "%-20s", s.ID)
		_, _ = fmt.Fprintf(w, " %s\n", s.Name)
		_, _ = fmt.Fprintf(w, "%-20s %s\n", "", s.Description)
	}
}

package cli

import (
	"io"

	"github.com/secmon-lab/cipher/pkg/domain/model"
	domainConfig "github.com/secmon-lab/cipher/pkg/domain/model/config"
)

// RenderScoreForTest prints the projection of initialScore under s with the default model
func RenderScoreForTest(w io.Writer, initialScore int, s model.MitigationSettings) error {
	r, err := scoreFromInitial(domainConfig.DefaultScoringModel(), initialScore, s)
	if err != nil {
		return err
	}
	printScore(w, r)
	return nil
}

var PrintDossiers = printDossiers

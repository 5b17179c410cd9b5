package modules

import (
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/application"
)

var (
	BuiltInModules = []application.Module{
		strategy.NewModule(),
	}
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}

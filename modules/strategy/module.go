package strategy

import (
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/presentation/controllers"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/services"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	objectiveRepo := persistence.NewObjectiveRepository()
	keyResultRepo := persistence.NewKeyResultRepository()
	bigRockRepo := persistence.NewBigRockRepository()
	teamRepo := persistence.NewTeamRepository()
	checkInRepo := persistence.NewCheckInRepository()

	app.RegisterServices(
		services.NewObjectiveService(objectiveRepo, app.EventPublisher()),
		services.NewKeyResultService(keyResultRepo, app.EventPublisher()),
		services.NewBigRockService(bigRockRepo, app.EventPublisher()),
		services.NewTeamService(teamRepo, app.EventPublisher()),
		services.NewCheckInService(checkInRepo, app.EventPublisher()),
		services.NewImportService(
			objectiveRepo,
			keyResultRepo,
			bigRockRepo,
			teamRepo,
			checkInRepo,
			app.EventPublisher(),
		),
	)
	app.RegisterControllers(
		controllers.NewImportController(app),
		controllers.NewObjectiveController(app),
		controllers.NewHealthController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "strategy"
}

package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/services"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/application"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/httpapi"
)

type objectiveViewModel struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Level        int       `json:"level"`
	TeamID       *string   `json:"teamId,omitempty"`
	ParentID     *string   `json:"parentId,omitempty"`
	Quarter      *int      `json:"quarter,omitempty"`
	Year         int       `json:"year"`
	Progress     float64   `json:"progress"`
	ProgressMode string    `json:"progressMode"`
	Status       string    `json:"status"`
	GoalType     string    `json:"goalType"`
	OwnerEmail   string    `json:"ownerEmail,omitempty"`
	Placeholder  bool      `json:"placeholder"`
	KeyResults   int       `json:"keyResults"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toObjectiveViewModel(o *objective.Objective, keyResults int) *objectiveViewModel {
	vm := &objectiveViewModel{
		ID:           o.ID().String(),
		Title:        o.Title(),
		Description:  o.Description(),
		Level:        o.Level(),
		Quarter:      o.Quarter(),
		Year:         o.Year(),
		Progress:     o.Progress(),
		ProgressMode: string(o.ProgressMode()),
		Status:       string(o.Status()),
		GoalType:     string(o.GoalType()),
		OwnerEmail:   o.OwnerEmail(),
		Placeholder:  o.IsPlaceholder(),
		KeyResults:   keyResults,
		UpdatedAt:    o.UpdatedAt(),
	}
	if id := o.TeamID(); id != nil {
		s := id.String()
		vm.TeamID = &s
	}
	if id := o.ParentID(); id != nil {
		s := id.String()
		vm.ParentID = &s
	}
	return vm
}

type ObjectiveController struct {
	app              application.Application
	objectiveService *services.ObjectiveService
	keyResultService *services.KeyResultService
	basePath         string
}

func NewObjectiveController(app application.Application) application.Controller {
	return &ObjectiveController{
		app:              app,
		objectiveService: app.Service(services.ObjectiveService{}).(*services.ObjectiveService),
		keyResultService: app.Service(services.KeyResultService{}).(*services.KeyResultService),
		basePath:         "/strategy/objectives",
	}
}

func (c *ObjectiveController) Key() string {
	return c.basePath
}

func (c *ObjectiveController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
}

func (c *ObjectiveController) List(w http.ResponseWriter, r *http.Request) {
	params := &objective.FindParams{
		Limit:  50,
		Offset: 0,
	}
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("year")); err == nil {
		params.Year = v
	}
	if v, err := strconv.Atoi(q.Get("quarter")); err == nil && v >= 1 && v <= 4 {
		params.Quarter = &v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 500 {
		params.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		params.Offset = v
	}
	if v, err := uuid.Parse(q.Get("teamId")); err == nil {
		params.TeamID = &v
	}

	objectives, err := c.objectiveService.GetPaginated(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "LIST_FAILED", "failed to list objectives")
		return
	}
	out := make([]*objectiveViewModel, 0, len(objectives))
	for _, o := range objectives {
		out = append(out, toObjectiveViewModel(o, 0))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *ObjectiveController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "objective id must be a UUID")
		return
	}
	found, err := c.objectiveService.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "objective not found")
		return
	}
	keyResults, err := c.keyResultService.GetByObjective(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "LOOKUP_FAILED", "failed to load key results")
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toObjectiveViewModel(found, len(keyResults)))
}

package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/goalimport"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/services"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/application"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/configuration"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/httpapi"
)

var validate = validator.New()

// importOptionsDTO carries the multipart form fields accompanying the
// archive upload.
type importOptionsDTO struct {
	UserEmail            string `validate:"omitempty,email"`
	FiscalYearStartMonth int    `validate:"min=0,max=12"`
	DuplicateStrategy    string `validate:"omitempty,oneof=skip merge create"`
	ImportCheckIns       bool
	ImportTeams          bool
}

type ImportController struct {
	app           application.Application
	importService *services.ImportService
	basePath      string
}

func NewImportController(app application.Application) application.Controller {
	return &ImportController{
		app:           app,
		importService: app.Service(services.ImportService{}).(*services.ImportService),
		basePath:      "/strategy/import",
	}
}

func (c *ImportController) Key() string {
	return c.basePath
}

func (c *ImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Import).Methods(http.MethodPost)
}

// Import accepts a multipart upload of a goal-tracking export archive
// and responds with the reconciliation report. Record-level problems
// surface inside the report, not as HTTP errors.
func (c *ImportController) Import(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()

	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "MISSING_TENANT", "tenant id is required")
		return
	}

	if err := r.ParseMultipartForm(conf.GoalImport.MaxArchiveSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_UPLOAD", "failed to parse multipart form")
		return
	}

	file, _, err := r.FormFile("archive")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "MISSING_ARCHIVE", "form field 'archive' is required")
		return
	}
	defer file.Close()

	archive, err := io.ReadAll(io.LimitReader(file, conf.GoalImport.MaxArchiveSize+1))
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNREADABLE_ARCHIVE", "failed to read uploaded archive")
		return
	}
	if int64(len(archive)) > conf.GoalImport.MaxArchiveSize {
		_ = httpapi.WriteError(w, http.StatusRequestEntityTooLarge, "ARCHIVE_TOO_LARGE", "uploaded archive exceeds the size limit")
		return
	}

	dto := importOptionsDTO{
		UserEmail:            r.FormValue("userEmail"),
		FiscalYearStartMonth: formInt(r, "fiscalYearStartMonth"),
		DuplicateStrategy:    r.FormValue("duplicateStrategy"),
		ImportCheckIns:       r.FormValue("importCheckIns") != "false",
		ImportTeams:          r.FormValue("importTeams") != "false",
	}
	if err := validate.Struct(dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_OPTIONS", err.Error())
		return
	}

	opts := goalimport.Options{
		TenantID:             tenantID,
		UserEmail:            dto.UserEmail,
		FiscalYearStartMonth: dto.FiscalYearStartMonth,
		DuplicateStrategy:    goalimport.Strategy(dto.DuplicateStrategy),
		ImportCheckIns:       dto.ImportCheckIns,
		ImportTeams:          dto.ImportTeams,
	}
	if opts.FiscalYearStartMonth == 0 {
		opts.FiscalYearStartMonth = conf.GoalImport.FiscalYearStartMonth
	}
	if opts.DuplicateStrategy == "" {
		opts.DuplicateStrategy = goalimport.Strategy(conf.GoalImport.DefaultStrategy)
	}
	if userID, err := composables.UseUserID(r.Context()); err == nil {
		opts.UserID = userID
	}

	result, err := c.importService.Import(r.Context(), archive, opts)
	if err != nil {
		// Archive-fatal: nothing was imported.
		_ = httpapi.WriteJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, result)
}

func formInt(r *http.Request, field string) int {
	n, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		return 0
	}
	return n
}

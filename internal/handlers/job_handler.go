package handlers

import (
	"net/http"

	"microjob_backend/internal/middleware"
	"microjob_backend/internal/services"
	"microjob_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
	appService services.ApplicationService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, appService services.ApplicationService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
		appService:  appService,
	}
}

// RegisterRoutes регистрирует публичный каталог вакансий, закладки,
// отклик на вакансию и админский CRUD
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	jobs.Use(middleware.OptionalAuthMiddleware())
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
	}

	authed := rg.Group("/jobs")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/:id/apply", h.Apply)
		authed.POST("/:id/save", h.ToggleSave)
	}

	saved := rg.Group("/saved-jobs")
	saved.Use(middleware.AuthMiddleware())
	{
		saved.GET("", h.ListSavedJobs)
	}

	admin := rg.Group("/admin/jobs")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("", h.CreateJob)
		admin.PATCH("/:id", h.UpdateJob)
		admin.DELETE("/:id", h.DeleteJob)
	}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	limit, offset := ParsePagination(c)

	response, err := h.jobService.GetJobs(c.Request.Context(), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	// Маршрут публичный: viewerID пуст для анонимов, тогда флаги
	// hasApplied/isSaved остаются false
	viewerID := middleware.GetUserID(c)

	response, err := h.jobService.GetJob(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.appService.SubmitApplication(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *JobHandler) ToggleSave(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	saved, err := h.jobService.ToggleSaveJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h *JobHandler) ListSavedJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	ids, err := h.jobService.GetSavedJobIDs(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobIds": ids})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.jobService.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	projectdomain "github.com/lancerkit/lancer/internal/project/domain"
	"github.com/lancerkit/lancer/pkg/db/pagination"
)

type createProjectRequest struct {
	ClientID    string  `json:"client_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func (s *Server) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}
	endDate, err := parseOptionalTime(req.EndDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}

	resp, err := s.projectSvc.Create(c.Request.Context(), projectdomain.CreateProjectRequest{
		ClientID:    strings.TrimSpace(req.ClientID),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Budget:      req.Budget,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProjects(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ClientID string `form:"client_id"`
		Status   string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.projectSvc.List(c.Request.Context(), projectdomain.ListProjectRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		ClientID:  strings.TrimSpace(query.ClientID),
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProjectByID(c *gin.Context) {
	resp, err := s.projectSvc.GetByID(c.Request.Context(), projectdomain.GetProjectRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createTaskRequest struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
}

func (s *Server) CreateProjectTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.projectSvc.CreateTask(c.Request.Context(), projectdomain.CreateTaskRequest{
		ProjectID: strings.TrimSpace(c.Param("id")),
		Title:     strings.TrimSpace(req.Title),
		DueDate:   dueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProjectTasks(c *gin.Context) {
	resp, err := s.projectSvc.ListTasks(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateTaskRequest struct {
	Title   *string `json:"title"`
	Status  *string `json:"status"`
	DueDate string  `json:"due_date"`
}

func (s *Server) UpdateProjectTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.projectSvc.UpdateTask(c.Request.Context(), projectdomain.UpdateTaskRequest{
		ProjectID: strings.TrimSpace(c.Param("id")),
		TaskID:    strings.TrimSpace(c.Param("taskId")),
		Title:     req.Title,
		Status:    req.Status,
		DueDate:   dueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProjectTask(c *gin.Context) {
	err := s.projectSvc.DeleteTask(c.Request.Context(), strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("taskId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

type createMilestoneRequest struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
}

func (s *Server) CreateProjectMilestone(c *gin.Context) {
	var req createMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.projectSvc.CreateMilestone(c.Request.Context(), projectdomain.CreateMilestoneRequest{
		ProjectID: strings.TrimSpace(c.Param("id")),
		Title:     strings.TrimSpace(req.Title),
		DueDate:   dueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProjectMilestones(c *gin.Context) {
	resp, err := s.projectSvc.ListMilestones(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateMilestoneRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	DueDate   string  `json:"due_date"`
}

func (s *Server) UpdateProjectMilestone(c *gin.Context) {
	var req updateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.projectSvc.UpdateMilestone(c.Request.Context(), projectdomain.UpdateMilestoneRequest{
		ProjectID:   strings.TrimSpace(c.Param("id")),
		MilestoneID: strings.TrimSpace(c.Param("milestoneId")),
		Title:       req.Title,
		Completed:   req.Completed,
		DueDate:     dueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createNoteRequest struct {
	Body string `json:"body"`
}

func (s *Server) CreateProjectNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.projectSvc.CreateNote(c.Request.Context(), projectdomain.CreateNoteRequest{
		ProjectID: strings.TrimSpace(c.Param("id")),
		Body:      strings.TrimSpace(req.Body),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProjectNotes(c *gin.Context) {
	resp, err := s.projectSvc.ListNotes(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProjectNote(c *gin.Context) {
	err := s.projectSvc.DeleteNote(c.Request.Context(), strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("noteId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

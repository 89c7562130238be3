package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"navix-backend/internal/models"
	"navix-backend/internal/supabase"
)

type ProcessesHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewProcessesHandler(dbClient *supabase.DatabaseClient) *ProcessesHandler {
	return &ProcessesHandler{dbClient: dbClient}
}

func processResponse(p *models.Process) models.ProcessResponse {
	return models.ProcessResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Type:        p.Type,
		Product:     p.Product,
		Origin:      p.Origin,
		Destination: p.Destination,
		Status:      p.Status,
		Progress:    p.Progress,
		CreatedAt:   p.CreatedAt,
	}
}

// List godoc
// @Summary     List the user's processes
// @Description Newest first. Optional type filter (import|export).
// @Tags        processes
// @Produce     json
// @Security    Bearer
// @Param       type query string false "Operation type filter"
// @Success     200 {object} models.ProcessListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /processes [get]
func (h *ProcessesHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	processType := c.Query("type")
	if processType != "" && processType != "import" && processType != "export" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "type must be \"import\" or \"export\""})
		return
	}

	processes, err := h.dbClient.ListProcesses(userID, processType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list processes", Message: err.Error()})
		return
	}

	resp := models.ProcessListResponse{Processes: make([]models.ProcessResponse, 0, len(processes))}
	for i := range processes {
		resp.Processes = append(resp.Processes, processResponse(&processes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary     Get one process
// @Tags        processes
// @Produce     json
// @Security    Bearer
// @Param       process_id path string true "Process ID (UUID)"
// @Success     200 {object} models.ProcessResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /processes/{process_id} [get]
func (h *ProcessesHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	processID, err := uuid.Parse(c.Param("process_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid process id"})
		return
	}

	process, err := h.dbClient.GetProcess(processID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "process not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, processResponse(process))
}

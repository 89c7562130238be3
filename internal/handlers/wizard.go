package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"navix-backend/internal/models"
	"navix-backend/internal/supabase"
	"navix-backend/internal/wizard"
)

// AdvisoryService produces the generative guidance texts. Implementations
// degrade to fallback strings instead of returning errors.
type AdvisoryService interface {
	GenerateAdvisory(product string) string
	SummarizeDocuments(docNames []string) string
}

type WizardHandler struct {
	sessions *wizard.SessionStore
	objects  wizard.ObjectStore
	records  wizard.RecordStore
	realtime *supabase.RealtimeClient
	advisory AdvisoryService
}

func NewWizardHandler(
	sessions *wizard.SessionStore,
	objects wizard.ObjectStore,
	records wizard.RecordStore,
	realtimeClient *supabase.RealtimeClient,
	advisoryService AdvisoryService,
) *WizardHandler {
	return &WizardHandler{
		sessions: sessions,
		objects:  objects,
		records:  records,
		realtime: realtimeClient,
		advisory: advisoryService,
	}
}

func (h *WizardHandler) session(c *gin.Context) (*wizard.Session, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	s, ok := h.sessions.Get(c.Param("session_id"), userID)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "wizard session not found"})
		return nil, false
	}
	return s, true
}

func wizardResponse(s *wizard.Session) models.WizardResponse {
	d := s.Snapshot()
	files := d.Files
	if files == nil {
		files = []models.StagedDocument{}
	}
	return models.WizardResponse{
		SessionID:   s.ID,
		Step:        d.Step(),
		Type:        d.Type,
		Product:     d.Product,
		Origin:      d.Origin,
		Destination: d.Destination,
		NCMCode:     d.NCMCode,
		Advisory:    d.Advisory,
		Files:       files,
	}
}

// Start godoc
// @Summary     Start a registration wizard
// @Description Opens a new wizard session for an import or export operation.
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.StartWizardRequest true "Operation type"
// @Success     201 {object} models.WizardResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /wizard [post]
func (h *WizardHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Type != "import" && req.Type != "export" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "type must be \"import\" or \"export\""})
		return
	}

	s := h.sessions.Create(userID, req.Type)
	c.JSON(http.StatusCreated, wizardResponse(s))
}

// Get godoc
// @Summary     Wizard session snapshot
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Success     200 {object} models.WizardResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /wizard/{session_id} [get]
func (h *WizardHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, wizardResponse(s))
}

// SetDetails godoc
// @Summary     Update operation details
// @Description Sets the step-1 fields. Empty fields keep their current value.
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Param       request body models.WizardDetailsRequest true "Details"
// @Success     200 {object} models.WizardResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /wizard/{session_id} [put]
func (h *WizardHandler) SetDetails(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req models.WizardDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	s.SetDetails(req.Product, req.Origin, req.Destination, req.NCMCode)
	c.JSON(http.StatusOK, wizardResponse(s))
}

// Next godoc
// @Summary     Advance one step
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Success     200 {object} models.StepResponse
// @Router      /wizard/{session_id}/next [post]
func (h *WizardHandler) Next(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.StepResponse{SessionID: s.ID, Step: s.Next()})
}

// Back godoc
// @Summary     Go back one step
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Success     200 {object} models.StepResponse
// @Router      /wizard/{session_id}/back [post]
func (h *WizardHandler) Back(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.StepResponse{SessionID: s.ID, Step: s.Back()})
}

// Estimate godoc
// @Summary     Financial estimate for the operation
// @Description Static preview shown on step 3.
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Success     200 {object} models.EstimateResponse
// @Router      /wizard/{session_id}/estimate [get]
func (h *WizardHandler) Estimate(c *gin.Context) {
	if _, ok := h.session(c); !ok {
		return
	}
	c.JSON(http.StatusOK, models.EstimateResponse{
		CargoValue:           10000,
		InternationalFreight: 1200,
		EstimatedTaxes:       850,
		Total:                12050,
		Currency:             "USD",
	})
}

// AttachDocument godoc
// @Summary     Upload a document for a required slot
// @Description Uploads the file to storage and stages it in the draft,
// @Description replacing any earlier attachment for the same slot.
// @Tags        wizard
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Param       slot formData string true "Slot name (Commercial Invoice, Packing List, Bill of Lading)"
// @Param       file formData file true "Document file"
// @Success     200 {object} models.StagedDocument
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /wizard/{session_id}/documents [post]
func (h *WizardHandler) AttachDocument(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	slot := c.PostForm("slot")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader, err = c.FormFile("document")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no file uploaded", Message: err.Error()})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	doc, err := s.AttachDocument(h.objects, slot, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrUnknownSlot):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown document slot", Message: err.Error()})
		case errors.Is(err, wizard.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
		case supabase.IsPermissionDenied(err):
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "upload rejected by storage policy",
				Message: "the navix bucket is missing its access policies; apply the storage policies from the initial migration",
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "upload failed", Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Advisory godoc
// @Summary     Classification guidance for the draft's product
// @Description Caches the advisory text on the draft. An empty product name
// @Description performs no call and returns the cached text.
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Success     200 {object} models.AdvisoryResponse
// @Router      /wizard/{session_id}/advisory [post]
func (h *WizardHandler) Advisory(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.AdvisoryResponse{Text: s.RequestAdvisory(h.advisory)})
}

// DocumentSummary godoc
// @Summary     Checklist summary of the staged documents
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Success     200 {object} models.AdvisoryResponse
// @Router      /wizard/{session_id}/documents/summary [post]
func (h *WizardHandler) DocumentSummary(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	d := s.Snapshot()
	names := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		names = append(names, f.Name)
	}
	c.JSON(http.StatusOK, models.AdvisoryResponse{Text: h.advisory.SummarizeDocuments(names)})
}

// Finish godoc
// @Summary     Commit the wizard
// @Description Runs the finish sequence from the summary step: process row,
// @Description document rows, completion notification. The session is closed
// @Description on success. Document insert failures after a created process
// @Description are reported as partial success, not rolled back.
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Success     200 {object} models.FinishResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /wizard/{session_id}/finish [post]
func (h *WizardHandler) Finish(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	result, err := s.Finish(h.records)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrCommitInProgress):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "commit already in progress"})
		case errors.Is(err, wizard.ErrNotAtSummary):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "finish is only available on the summary step"})
		case errors.Is(err, wizard.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to register operation", Message: err.Error()})
		}
		return
	}

	resp := models.FinishResponse{
		ProcessID:      result.Process.ID.String(),
		Code:           result.Process.Code,
		DocumentsSaved: result.DocumentsSaved,
		PartialSuccess: result.PartialSuccess(),
	}
	if result.DocumentsErr != nil {
		log.Printf("process %s created but document metadata failed: %v", result.Process.Code, result.DocumentsErr)
		resp.DocumentsError = result.DocumentsErr.Error()
	}
	if result.NotificationErr != nil {
		log.Printf("process %s created but notification insert failed: %v", result.Process.Code, result.NotificationErr)
		resp.NotificationError = result.NotificationErr.Error()
	}

	if h.realtime != nil {
		h.realtime.PublishUserEvent(s.UserID, "process_created",
			supabase.ProcessCreatedPayload(result.Process, result.DocumentsSaved))
	}

	h.sessions.Delete(s.ID)
	c.JSON(http.StatusOK, resp)
}

// Abandon godoc
// @Summary     Abandon the wizard
// @Description Drops the session. Files already uploaded stay in storage.
// @Tags        wizard
// @Security    Bearer
// @Param       session_id path string true "Session ID"
// @Success     204
// @Router      /wizard/{session_id} [delete]
func (h *WizardHandler) Abandon(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.sessions.Delete(s.ID)
	c.Status(http.StatusNoContent)
}

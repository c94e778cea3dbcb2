package handler

import (
	"net/http"
	"strconv"

	"go-hospital-booking/internal/usecase"
	"go-hospital-booking/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	log             *logrus.Logger
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, log *logrus.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		log:             log,
	}
}

// GetAllAuditLogs lists audit entries, newest first
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "", logs, len(logs))
}

// GetAuditLog returns one audit entry
// @Param id path int true "Audit log ID"
// @Router /admin/audit-logs/{id} [get]
func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	log, err := h.auditLogUsecase.GetAuditLog(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "", log)
}

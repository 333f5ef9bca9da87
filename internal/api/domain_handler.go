package api

import (
	"net/http"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/api/shared"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/service"
)

// DomainHandler handles domain and sub-domain API requests.
type DomainHandler struct {
	domainService service.DomainService
}

// NewDomainHandler creates a new DomainHandler with the given dependencies.
func NewDomainHandler(domainService service.DomainService) *DomainHandler {
	return &DomainHandler{
		domainService: domainService,
	}
}

// Create handles POST /domains.
func (h *DomainHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateDomainRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	d, err := h.domainService.CreateDomain(r.Context(), service.CreateDomainInput{
		UserID:     userID,
		Name:       req.Name,
		SubDomains: req.SubDomains,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, d)
}

// List handles GET /domains.
func (h *DomainHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	domains, err := h.domainService.ListDomains(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DomainListResponse{Domains: domains})
}

// Edit handles PUT /domains/{domainID}.
func (h *DomainHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	domainID, ok := requirePathUUID(w, r, "domainID")
	if !ok {
		return
	}

	var req EditDomainRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	changes := make([]service.SubDomainChange, 0, len(req.SubDomains))
	for _, sd := range req.SubDomains {
		changes = append(changes, service.SubDomainChange{ID: sd.ID, Name: sd.Name})
	}

	d, err := h.domainService.EditDomain(r.Context(), service.EditDomainInput{
		UserID:     userID,
		DomainID:   domainID,
		Name:       req.Name,
		SubDomains: changes,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, d)
}

// Delete handles DELETE /domains/{domainID}.
func (h *DomainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	domainID, ok := requirePathUUID(w, r, "domainID")
	if !ok {
		return
	}

	if err := h.domainService.DeleteDomain(r.Context(), userID, domainID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateSubDomain handles POST /domains/{domainID}/sub-domains.
func (h *DomainHandler) CreateSubDomain(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	domainID, ok := requirePathUUID(w, r, "domainID")
	if !ok {
		return
	}

	var req CreateSubDomainRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sd, err := h.domainService.CreateSubDomain(r.Context(), userID, domainID, req.Name)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sd)
}

// UpdateSubDomain handles PUT /sub-domains/{subDomainID}.
func (h *DomainHandler) UpdateSubDomain(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	subDomainID, ok := requirePathUUID(w, r, "subDomainID")
	if !ok {
		return
	}

	var req CreateSubDomainRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sd, err := h.domainService.UpdateSubDomain(r.Context(), userID, subDomainID, req.Name)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sd)
}

// DeleteSubDomain handles DELETE /sub-domains/{subDomainID}.
func (h *DomainHandler) DeleteSubDomain(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	subDomainID, ok := requirePathUUID(w, r, "subDomainID")
	if !ok {
		return
	}

	if err := h.domainService.DeleteSubDomain(r.Context(), userID, subDomainID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

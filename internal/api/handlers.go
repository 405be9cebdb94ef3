package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/sunbonsys/backend/internal/export"
	"github.com/sunbonsys/backend/internal/models"
)

type SubmitRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Product   string `json:"product"`
	Message   string `json:"message"`
}

type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VisitRequest struct {
	Page string `json:"page"`
}

type VisitResponse struct {
	Success bool `json:"success"`
}

// SubmitContactHandler saves a contact-form submission. Public.
func (api *Api) SubmitContactHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ReasonValidation)
		return
	}

	contact := models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Product:   req.Product,
		Message:   req.Message,
	}
	if err := api.store.CreateContact(&contact); err != nil {
		log.Printf("Failed to save contact submission: %v", err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}

	writeJSON(w, http.StatusOK, SubmitResponse{Success: true, Message: "Message saved successfully"})
}

// ListContactsHandler returns all submissions, newest first. Admin only.
func (api *Api) ListContactsHandler(w http.ResponseWriter, r *http.Request) {
	contacts, err := api.store.ListContacts()
	if err != nil {
		log.Printf("Failed to list contacts: %v", err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

// ExportContactsHandler streams the leads spreadsheet as a download. Admin
// only. When an archive bucket is configured a copy is uploaded in the
// background; the download never waits on it.
func (api *Api) ExportContactsHandler(w http.ResponseWriter, r *http.Request) {
	contacts, err := api.store.ListContacts()
	if err != nil {
		log.Printf("Failed to list contacts for export: %v", err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}

	f, err := export.LeadsWorkbook(contacts)
	if err != nil {
		log.Printf("Failed to build export workbook: %v", err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Failed to write export workbook: %v", err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}
	data := buf.Bytes()

	if api.archive != nil {
		archived := make([]byte, len(data))
		copy(archived, data)
		go func() {
			key, err := api.archive.ArchiveExport(context.Background(), archived, export.ContentType)
			if err != nil {
				log.Printf("Failed to archive export: %v", err)
				return
			}
			log.Printf("Archived export as %s", key)
		}()
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to stream export: %v", err)
	}
}

// RecordVisitHandler increments the visit counter for a page. Public.
func (api *Api) RecordVisitHandler(w http.ResponseWriter, r *http.Request) {
	var req VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Page == "" {
		writeError(w, http.StatusBadRequest, ReasonValidation)
		return
	}

	if err := api.store.RecordVisit(req.Page); err != nil {
		log.Printf("Failed to record visit for page %q: %v", req.Page, err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}

	writeJSON(w, http.StatusOK, VisitResponse{Success: true})
}

// ListVisitsHandler returns all page visit counters. Public.
func (api *Api) ListVisitsHandler(w http.ResponseWriter, r *http.Request) {
	visits, err := api.store.ListVisits()
	if err != nil {
		log.Printf("Failed to list visits: %v", err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}

	writeJSON(w, http.StatusOK, visits)
}

package handler

import (
	"time"

	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/snapshot"
	"github.com/trading-journal-backend/internal/domain/statistics"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

// CreateJournalRequest represents a request to create a journal and its initial checklist
type CreateJournalRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	HasSLTPFields      bool     `json:"has_sl_tp_fields"`
	HasCustomField     bool     `json:"has_custom_field"`
	CustomFieldName    string   `json:"custom_field_name"`
	CustomFieldOptions []string `json:"custom_field_options"`
	HasEmotions        bool     `json:"has_emotions"`
	ChecklistTemplates []string `json:"checklist_templates"`
}

func (r CreateJournalRequest) settings() journal.Settings {
	return journal.Settings{
		HasSLTPFields:      r.HasSLTPFields,
		HasCustomField:     r.HasCustomField,
		CustomFieldName:    r.CustomFieldName,
		CustomFieldOptions: r.CustomFieldOptions,
		HasEmotions:        r.HasEmotions,
	}
}

// TemplateRequest carries the text of a checklist item
type TemplateRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateEntryRequest is an entry plus the initial checklist answers keyed by template id
type CreateEntryRequest struct {
	entry.Entry
	ChecklistStatuses map[string]bool `json:"checklist_statuses"`
}

// ChecklistStatusRequest sets one checklist answer
type ChecklistStatusRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// LinkRequest attaches an external link to an entry
type LinkRequest struct {
	URL      string `json:"url" binding:"required"`
	Category string `json:"category"`
}

// StrategyRequest registers a strategy name
type StrategyRequest struct {
	Name string `json:"name" binding:"required"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

// JournalResponse represents a journal in API responses
type JournalResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	HasSLTPFields      bool               `json:"has_sl_tp_fields"`
	HasCustomField     bool               `json:"has_custom_field"`
	CustomFieldName    string             `json:"custom_field_name"`
	CustomFieldOptions []string           `json:"custom_field_options"`
	HasEmotions        bool               `json:"has_emotions"`
	ChecklistTemplates []TemplateResponse `json:"checklist_templates,omitempty"`
	CreatedAt          string             `json:"created_at"`
	UpdatedAt          string             `json:"updated_at"`
}

// TemplateResponse represents a checklist template in API responses
type TemplateResponse struct {
	ID        string `json:"id"`
	JournalID string `json:"journal_id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
}

// EntryResponse is an entry with its checklist and evidence
type EntryResponse struct {
	*entry.Entry
	Checklist []entry.ChecklistItem `json:"checklist"`
	Images    []AttachmentResponse  `json:"images"`
}

// AttachmentResponse represents an image or link in API responses
type AttachmentResponse struct {
	ID         string `json:"id"`
	EntryID    string `json:"entry_id"`
	Kind       string `json:"kind"`
	FilePath   string `json:"file_path,omitempty"`
	LinkURL    string `json:"link_url,omitempty"`
	Category   string `json:"category"`
	UploadedAt string `json:"uploaded_at"`
}

// ChecklistStatusResponse echoes the stored answer
type ChecklistStatusResponse struct {
	TemplateID string `json:"template_id"`
	Checked    bool   `json:"checked"`
}

// StrategyResponse represents a strategy in API responses
type StrategyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SnapshotResponse represents one stored statistics snapshot
type SnapshotResponse struct {
	ID            string             `json:"id"`
	EventID       string             `json:"event_id"`
	Trigger       string             `json:"trigger"`
	CorrelationID string             `json:"correlation_id,omitempty"`
	Report        *statistics.Report `json:"report"`
	CreatedAt     string             `json:"created_at"`
}

func mapJournalToResponse(j *journal.Journal, templates []journal.ChecklistTemplate) JournalResponse {
	options := j.CustomFieldOptions
	if options == nil {
		options = []string{}
	}

	response := JournalResponse{
		ID:                 j.ID.String(),
		Name:               j.Name,
		Description:        j.Description,
		HasSLTPFields:      j.HasSLTPFields,
		HasCustomField:     j.HasCustomField,
		CustomFieldName:    j.CustomFieldName,
		CustomFieldOptions: options,
		HasEmotions:        j.HasEmotions,
		CreatedAt:          j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          j.UpdatedAt.Format(time.RFC3339),
	}
	if templates != nil {
		response.ChecklistTemplates = mapTemplatesToResponse(templates)
	}
	return response
}

func mapJournalDetailsToResponse(details *service.JournalDetails) JournalResponse {
	templates := details.Templates
	if templates == nil {
		templates = []journal.ChecklistTemplate{}
	}
	return mapJournalToResponse(details.Journal, templates)
}

func mapTemplateToResponse(t journal.ChecklistTemplate) TemplateResponse {
	return TemplateResponse{
		ID:        t.ID.String(),
		JournalID: t.JournalID.String(),
		Text:      t.Text,
		Order:     t.Order,
	}
}

func mapTemplatesToResponse(templates []journal.ChecklistTemplate) []TemplateResponse {
	response := make([]TemplateResponse, 0, len(templates))
	for _, t := range journal.SortByOrder(templates) {
		response = append(response, mapTemplateToResponse(t))
	}
	return response
}

func mapAttachmentToResponse(a *entry.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         a.ID.String(),
		EntryID:    a.EntryID.String(),
		Kind:       string(a.Kind),
		FilePath:   a.FilePath,
		LinkURL:    a.LinkURL,
		Category:   string(a.Category),
		UploadedAt: a.UploadedAt.Format(time.RFC3339),
	}
}

func mapEntryDetailsToResponse(details *service.EntryDetails) EntryResponse {
	checklist := details.Checklist
	if checklist == nil {
		checklist = []entry.ChecklistItem{}
	}
	images := make([]AttachmentResponse, 0, len(details.Attachments))
	for _, a := range details.Attachments {
		images = append(images, mapAttachmentToResponse(a))
	}
	return EntryResponse{Entry: details.Entry, Checklist: checklist, Images: images}
}

func mapStrategyToResponse(s *journal.Strategy) StrategyResponse {
	return StrategyResponse{ID: s.ID.String(), Name: s.Name}
}

func mapSnapshotToResponse(s *snapshot.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:            s.ID.String(),
		EventID:       s.EventID.String(),
		Trigger:       string(s.Trigger),
		CorrelationID: s.CorrelationID,
		Report:        s.Report,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tripbuilder/internal/cache"
	"tripbuilder/internal/repositories"

	"github.com/gorilla/mux"
)

// FieldHandler serves custom field definitions and dropdown options
// for the enrollment forms.
type FieldHandler struct {
	Fields *repositories.CustomFieldRepository
}

func NewFieldHandler(fields *repositories.CustomFieldRepository) *FieldHandler {
	return &FieldHandler{Fields: fields}
}

func (h *FieldHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	if model == "" {
		model = "opportunity"
	}

	fields, err := h.Fields.ListByModel(context.Background(), model)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fields)
}

// GetOptions returns dropdown options for a field key. Redis fronts
// the dropdown_cache table; both fall back gracefully.
func (h *FieldHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	fieldKey := mux.Vars(r)["key"]
	ctx := context.Background()

	if options, ok := cache.GetDropdownOptions(ctx, fieldKey); ok {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"field_key": fieldKey, "options": options})
		return
	}

	cached, err := h.Fields.GetDropdownOptions(ctx, fieldKey)
	if err != nil {
		// Not in the dropdown cache; the field definition still has
		// the options from the last sync.
		field, ferr := h.Fields.GetByKey(ctx, fieldKey)
		if ferr != nil {
			http.Error(w, "Field not found", http.StatusNotFound)
			return
		}
		cache.SetDropdownOptions(ctx, fieldKey, field.Options)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"field_key": fieldKey, "options": field.Options})
		return
	}

	cache.SetDropdownOptions(ctx, fieldKey, cached.Options)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"field_key": fieldKey, "options": cached.Options})
}

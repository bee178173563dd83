package api

import (
	"errors"
	"mime"
	"net/http"

	"github.com/okian/phonebook/internal/domain/model"
	"github.com/okian/phonebook/pkg/logger"
	"github.com/okian/phonebook/pkg/metrics"
)

const defaultMaxBodyBytes = 1 << 20

type listResponse struct {
	Phonebook map[string]string `json:"phonebook"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// PhonebookHandler serves GET and POST /phonebook.
type PhonebookHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewPhonebookHandler creates a new phonebook handler.
func NewPhonebookHandler(deps Dependencies, maxBodyBytes int64, l logger.Logger) *PhonebookHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &PhonebookHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: l}
}

// HandleList handles GET /phonebook.
func (h *PhonebookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_contacts"
	contacts, err := h.deps.ListContacts(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "list contacts failed", logger.Error(Wrap(op, err)))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}
	if contacts == nil {
		contacts = map[string]string{}
	}
	writeJSON(w, http.StatusOK, listResponse{Phonebook: contacts})
}

// HandleAdd handles POST /phonebook with form fields name and phone_number.
func (h *PhonebookHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_contact"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	contact, err := h.readContact(r)
	if err != nil {
		metrics.RecordContactRejected()
		h.logger.Debug(r.Context(), "rejected contact", logger.Error(WrapKind(op, ErrBadRequest, err)))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: model.ErrMissingField.Error()})
		return
	}

	if err := h.deps.AddContact(r.Context(), contact); err != nil {
		h.logger.Error(r.Context(), "add contact failed", logger.Error(WrapKind(op, ErrInternal, err)))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// readContact extracts the form fields from an urlencoded or multipart body.
// A body that cannot be parsed yields no fields.
func (h *PhonebookHandler) readContact(r *http.Request) (model.Contact, error) {
	var err error
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(h.maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return model.Contact{}, errors.Join(model.ErrMissingField, err)
	}
	return model.NewContact(formValue(r, "name"), formValue(r, "phone_number"))
}

// formValue returns nil when key is absent from the body, so an empty value
// stays distinguishable from a missing one.
func formValue(r *http.Request, key string) *string {
	vals, ok := r.PostForm[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

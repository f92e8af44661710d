package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	pausa "github.com/projetopausa/Site-Pausa-V1"
	"go.uber.org/zap"
)

// User-facing messages. The front-end shows them verbatim, so they are
// written in Portuguese for a non-technical audience.
const (
	msgThanks       = "Obrigada por se cadastrar! Entraremos em contato em breve."
	msgBadBody      = "Não conseguimos ler os dados enviados. Verifique o formulário e tente novamente."
	msgBadName      = "Por favor, nos diga como gostaria de ser chamada."
	msgBadPhone     = "Parece que esse número não está completo. Verifique o formato: (XX) XXXXX-XXXX."
	msgStoreFailure = "Não foi possível registrar seu contato agora. Por favor, tente novamente em instantes."
)

// ContactResponse is the envelope returned by every exit path of the
// contact endpoint. The front-end only inspects the success field, so
// business failures are encoded here rather than in the HTTP status.
type ContactResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	ContactID *string `json:"contact_id"`
}

type ContactHandler struct {
	store    pausa.ContactStore
	validate *validator.Validate
	log      *zap.SugaredLogger
}

func NewContactHandler(store pausa.ContactStore, log *zap.SugaredLogger) *ContactHandler {
	return &ContactHandler{
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// Submit accepts a contact form submission. Every path answers HTTP 200
// with a ContactResponse; the declined paths carry success=false and a
// null contact_id.
func (ch ContactHandler) Submit(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// A fault anywhere in handling still answers the uniform envelope;
	// nothing crosses the service boundary unformatted.
	defer func() {
		if rec := recover(); rec != nil {
			ch.log.Errorw("Submit", "panic", rec)
			respond(ctx, rw, http.StatusOK, declined(msgStoreFailure))
		}
	}()

	var sub pausa.ContactSubmission
	if err := decode(r, &sub); err != nil {
		ch.log.Errorw("Submit", "error", err.Error())
		respond(ctx, rw, http.StatusOK, declined(msgBadBody))
		return
	}

	if err := ch.validate.Struct(sub); err != nil {
		respond(ctx, rw, http.StatusOK, declined(msgBadName))
		return
	}

	digits := pausa.PhoneDigits(sub.Whatsapp)
	if !pausa.ValidPhone(digits) {
		respond(ctx, rw, http.StatusOK, declined(msgBadPhone))
		return
	}

	contact := pausa.Contact{
		ID:                  uuid.NewString(),
		Name:                sub.Name,
		Whatsapp:            sub.Whatsapp,
		PhoneDigits:         digits,
		AcceptCommunication: sub.AcceptCommunication,
		Timestamp:           time.Now().UTC(),
		Source:              pausa.Source,
	}

	if err := ch.store.SaveContact(ctx, contact); err != nil {
		ch.log.Errorw("Submit", "contact", contact.ID, "error", err.Error())
		respond(ctx, rw, http.StatusOK, declined(msgStoreFailure))
		return
	}

	respond(ctx, rw, http.StatusOK, ContactResponse{
		Success:   true,
		Message:   msgThanks,
		ContactID: &contact.ID,
	})
}

func declined(msg string) ContactResponse {
	return ContactResponse{Success: false, Message: msg}
}

package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/port"
	"github.com/maribelsv/showcase/pkg/form"
)

type ProductsHandler struct {
	finder    port.ProductFinder
	publisher port.ProductPublisher
	voter     port.ProductVoter
	commenter port.ProductCommenter
	remover   port.ProductRemover
	tally     port.VotesTally
}

func RegisterProducts(
	mux *http.ServeMux,
	finder port.ProductFinder,
	publisher port.ProductPublisher,
	voter port.ProductVoter,
	commenter port.ProductCommenter,
	remover port.ProductRemover,
	tally port.VotesTally,
) {
	h := ProductsHandler{finder, publisher, voter, commenter, remover, tally}
	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("POST /v1/products", h.PostProduct)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("DELETE /v1/products/{id}", h.DeleteProduct)
	mux.HandleFunc("POST /v1/products/{id}/votes", h.PostVote)
	mux.HandleFunc("POST /v1/products/{id}/comments", h.PostComment)
	mux.HandleFunc("GET /v1/products/{id}/tally", h.GetTally)
}

func (h ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.ListProducts"
	log := slog.With("op", op)

	orderBy := r.URL.Query().Get("orderBy")
	if orderBy == "" {
		orderBy = "creado"
	}

	ps, err := h.finder.ListProducts(r.Context(), orderBy)
	if err != nil {
		writeServiceErr(w, r, err)
		log.Error("failed to list products", "err", err)
		return
	}

	wirePs := make([]Product, len(ps))
	for i, p := range ps {
		wirePs[i] = toWireProduct(p)
	}
	writeJSON(w, http.StatusOK, wirePs)
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.finder.ProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceErr(w, r, err)
		log.Warn("failed to get product", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toWireProduct(p))
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"
	log := slog.With("op", op)

	sn := sessionFrom(r.Context())
	if !sn.Authenticated() {
		redirectHome(w, r)
		return
	}

	var np NewProduct
	if err := json.NewDecoder(r.Body).Decode(&np); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	var created domain.Product
	f := form.New(form.Values{
		"nombre":      np.Nombre,
		"empresa":     np.Empresa,
		"url":         np.URL,
		"descripcion": np.Descripcion,
	}, form.ProductRules(), func(ctx context.Context, values form.Values) error {
		p, err := h.publisher.PublishProduct(ctx, sn, domain.Product{
			Name:        values["nombre"],
			Company:     values["empresa"],
			URL:         values["url"],
			ImageURL:    np.URLImage,
			Description: values["descripcion"],
		})
		created = p
		return err
	})

	if err := f.Submit(r.Context()); err != nil {
		if errors.Is(err, form.ErrInvalid) {
			writeJSON(w, http.StatusUnprocessableEntity,
				InvalidFormResponse{Errores: f.Errors()})
			return
		}
		writeServiceErr(w, r, err)
		log.Error("failed to publish product", "err", err)
		return
	}

	log.Info("product published", "productID", created.ID)
	writeJSON(w, http.StatusCreated, toWireProduct(created))
}

func (h ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.DeleteProduct"
	log := slog.With("op", op)

	sn := sessionFrom(r.Context())
	id := r.PathValue("id")

	if err := h.remover.RemoveProduct(r.Context(), sn, id); err != nil {
		writeServiceErr(w, r, err)
		log.Warn("failed to remove product", "productID", id, "err", err)
		return
	}

	log.Info("product removed", "productID", id)
	redirectHome(w, r)
}

func (h ProductsHandler) PostVote(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostVote"
	log := slog.With("op", op)

	sn := sessionFrom(r.Context())
	id := r.PathValue("id")

	p, err := h.voter.VoteProduct(r.Context(), sn, id)
	if err != nil {
		writeServiceErr(w, r, err)
		log.Warn("failed to vote product", "productID", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toWireProduct(p))
}

func (h ProductsHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostComment"
	log := slog.With("op", op)

	sn := sessionFrom(r.Context())
	id := r.PathValue("id")

	var nc NewComment
	if err := json.NewDecoder(r.Body).Decode(&nc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.commenter.CommentProduct(r.Context(), sn, id, nc.Mensaje)
	if err != nil {
		writeServiceErr(w, r, err)
		log.Warn("failed to comment product", "productID", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toWireProduct(p))
}

func (h ProductsHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetTally"
	log := slog.With("op", op)

	votes, err := h.tally.ProductTally(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "tally unavailable")
		log.Error("failed to read tally", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, TallyResponse{Votos: votes})
}

func toWireProduct(p domain.Product) Product {
	wire := Product{
		ID:          p.ID,
		Nombre:      p.Name,
		Empresa:     p.Company,
		URL:         p.URL,
		URLImage:    p.ImageURL,
		Descripcion: p.Description,
		Creado:      p.Created.UnixMilli(),
		Creador:     Creador{ID: p.Creator.ID, Nombre: p.Creator.Name},
		Votos:       p.Votes,
		HaVotado:    p.VotedBy,
		Comentarios: make([]Comentario, len(p.Comments)),
	}
	if wire.HaVotado == nil {
		wire.HaVotado = []string{}
	}
	for i, c := range p.Comments {
		wire.Comentarios[i] = Comentario{
			Mensaje:       c.Message,
			UsuarioID:     c.AuthorID,
			UsuarioNombre: c.AuthorName,
		}
	}
	return wire
}

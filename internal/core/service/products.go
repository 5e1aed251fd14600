package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/port"
)

var _ port.ProductPublisher = (*ProductService)(nil)
var _ port.ProductFinder = (*ProductService)(nil)
var _ port.ProductVoter = (*ProductService)(nil)
var _ port.ProductCommenter = (*ProductService)(nil)
var _ port.ProductRemover = (*ProductService)(nil)

type ProductService struct {
	storage port.ProductsStorage
	events  port.EventsProducer
}

func NewProductService(
	storage port.ProductsStorage, events port.EventsProducer,
) ProductService {
	return ProductService{storage, events}
}

func (s ProductService) PublishProduct(
	ctx context.Context, sn domain.Session, p domain.Product,
) (domain.Product, error) {
	const op = "ProductService.PublishProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if !sn.Authenticated() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	}

	creator := domain.Creator{ID: sn.User.ID, Name: sn.User.Name}
	p = domain.NewProduct(
		p.Name, p.Company, p.URL, p.ImageURL, p.Description, creator,
	)

	id, err := s.storage.CreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	p.ID = id

	s.emit(ctx, domain.ProductEvent{
		Type:      domain.EventProductCreated,
		ProductID: id,
		UserID:    sn.User.ID,
		At:        p.Created,
	})
	return p, nil
}

func (s ProductService) ProductByID(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductService.ProductByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.storage.ProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s ProductService) ListProducts(
	ctx context.Context, orderBy string,
) ([]domain.Product, error) {
	const op = "ProductService.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.storage.ListProductsOrderedBy(ctx, orderBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// VoteProduct runs the read-modify-write vote sequence. The membership
// check happens against the product state read here, so concurrent
// voters in different sessions are not serialized: the store applies
// whatever values arrive last.
func (s ProductService) VoteProduct(
	ctx context.Context, sn domain.Session, id string,
) (domain.Product, error) {
	const op = "ProductService.VoteProduct"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if !sn.Authenticated() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	}

	p, err := s.storage.ProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	totalVotes := p.Votes + 1

	if p.HasVoted(sn.User.ID) {
		log.Debug("vote skipped, user already voted", "productID", id)
		return p, nil
	}

	votedBy := append(append([]string(nil), p.VotedBy...), sn.User.ID)

	patch := domain.ProductPatch{Votes: &totalVotes, VotedBy: &votedBy}
	err = s.storage.UpdateProduct(ctx, id, patch)

	// Optimistic merge: the caller sees the new count immediately,
	// a failed write surfaces as a message without rolling it back.
	p.Votes = totalVotes
	p.VotedBy = votedBy

	if err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	s.emit(ctx, domain.ProductEvent{
		Type:      domain.EventProductVoted,
		ProductID: id,
		UserID:    sn.User.ID,
		Votes:     totalVotes,
	})
	return p, nil
}

func (s ProductService) CommentProduct(
	ctx context.Context, sn domain.Session, id, message string,
) (domain.Product, error) {
	const op = "ProductService.CommentProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if !sn.Authenticated() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	}

	p, err := s.storage.ProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	c := domain.NewComment(message, sn.User.ID, sn.User.Name)
	comments := append(append([]domain.Comment(nil), p.Comments...), c)

	patch := domain.ProductPatch{Comments: &comments}
	err = s.storage.UpdateProduct(ctx, id, patch)

	p.Comments = comments

	if err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	s.emit(ctx, domain.ProductEvent{
		Type:      domain.EventProductCommented,
		ProductID: id,
		UserID:    sn.User.ID,
		Votes:     p.Votes,
	})
	return p, nil
}

func (s ProductService) RemoveProduct(
	ctx context.Context, sn domain.Session, id string,
) error {
	const op = "ProductService.RemoveProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !sn.Authenticated() {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	}

	p, err := s.storage.ProductByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !p.IsCreator(sn.User.ID) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotCreator)
	}

	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// emit publishes fire-and-forget: a failed produce is logged, never
// surfaced to the caller.
func (s ProductService) emit(ctx context.Context, e domain.ProductEvent) {
	const op = "ProductService.emit"

	if s.events == nil {
		return
	}

	if e.At.IsZero() {
		e.At = time.Now()
	}

	if err := s.events.ProduceEvent(ctx, e); err != nil {
		slog.Error("failed to produce product event",
			"op", op, "type", e.Type, "productID", e.ProductID, "err", err)
	}
}

package port

import (
	"context"
	"io"
	"time"

	"github.com/maribelsv/showcase/internal/core/domain"
)

// Inbound ports consumed by the transport layer.

type ProductPublisher interface {
	PublishProduct(context.Context, domain.Session, domain.Product) (domain.Product, error)
}

type ProductFinder interface {
	ProductByID(context.Context, string) (domain.Product, error)
	ListProducts(ctx context.Context, orderBy string) ([]domain.Product, error)
}

type ProductVoter interface {
	VoteProduct(context.Context, domain.Session, string) (domain.Product, error)
}

type ProductCommenter interface {
	CommentProduct(
		ctx context.Context, s domain.Session, productID, message string,
	) (domain.Product, error)
}

type ProductRemover interface {
	RemoveProduct(context.Context, domain.Session, string) error
}

type AccountRegistrar interface {
	Register(ctx context.Context, name, email, password string) (domain.User, string, error)
}

type SessionOpener interface {
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Logout(ctx context.Context, token string) error
}

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.Session, error)
}

type SessionWatcher interface {
	Watch(func(domain.Session))
}

type ImageSaver interface {
	SaveImage(
		ctx context.Context, filename, contentType string, data io.Reader,
	) (url string, err error)
}

type VotesTally interface {
	ProductTally(productID string) (int64, error)
}

// Outbound ports implemented by adapters.

type ProductsStorage interface {
	CreateProduct(context.Context, domain.Product) (string, error)
	ProductByID(context.Context, string) (domain.Product, error)
	ListProductsOrderedBy(ctx context.Context, field string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) error
	DeleteProduct(context.Context, string) error
}

type UsersStorage interface {
	CreateUser(ctx context.Context, u domain.User, passwordHash []byte) error
	UserByEmail(ctx context.Context, email string) (u domain.User, hash []byte, ok bool, err error)
}

type SessionsStorage interface {
	CreateSession(ctx context.Context, token, userID string, expires time.Time) error
	SessionUser(ctx context.Context, token string) (u domain.User, ok bool, err error)
	DeleteSession(ctx context.Context, token string) error
}

type EventsProducer interface {
	ProduceEvent(context.Context, domain.ProductEvent) error
}
